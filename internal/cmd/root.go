package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/filterlines/internal/config"
	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/host"
	"github.com/Iron-Ham/filterlines/internal/logging"
	"github.com/Iron-Ham/filterlines/internal/terminal"
)

var rootCmd = &cobra.Command{
	Use:   "filterlines [file]",
	Short: "Filter a document down to the lines matching a regular expression",
	Long: `filterlines keeps the lines (or custom-separated segments) of a document
that match a regular expression and writes them to stdout or a file.

The document is read from the file argument, or from stdin when no file is
given or the file is "-". When no --regex is given the pattern is prompted
for, pre-filled with the previous search.

Search preferences (case sensitivity, inversion, custom separators) are read
from ~/.config/filterlines/config.yaml and FILTERLINES_* environment
variables. Flags override them for a single run.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFilter,
}

// newPrompter picks how missing input is asked for. Tests replace it.
var newPrompter = func() host.Prompter {
	if terminal.Interactive() {
		return terminal.NewPrompter()
	}
	return terminal.NoPrompter{}
}

// stdinIsTerminal reports whether stdin is attached to a terminal. Tests
// replace it.
var stdinIsTerminal = func() bool {
	return terminal.IsTerminal(os.Stdin)
}

// shutdownSignals cancel the context of a running command.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Execute runs the root command and prints any error to stderr
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// Dismissing a prompt is not worth a message.
	if err != nil && errors.GetSeverity(err) > errors.SeverityInfo {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errors.ErrPromptCanceled):
		return 130
	case errors.Is(err, errors.ErrInvalidPattern), errors.Is(err, errors.ErrInvalidInput):
		return 2
	default:
		return 1
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/filterlines/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	flags := rootCmd.Flags()
	flags.StringP("regex", "e", "", "pattern to filter by (prompted for when omitted)")
	flags.StringP("separator", "s", "", "regex that separates segments instead of line breaks")
	flags.BoolP("ignore-case", "i", false, "match case-insensitively")
	flags.Bool("case-sensitive", false, "match case-sensitively")
	flags.BoolP("invert", "v", false, "keep segments that do not match")
	flags.StringP("output", "o", "", "write results to this file instead of stdout")
	flags.String("log-level", "", "enable logging at this level: debug, info, warn, error")
	rootCmd.MarkFlagsMutuallyExclusive("ignore-case", "case-sensitive")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/filterlines")
	}

	// A .env file in the working directory may carry FILTERLINES_* settings.
	// Variables already in the environment win.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FILTERLINES")
	// e.g., FILTERLINES_LOGGING_LEVEL for logging.level
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	logger, err := newLogger(cmd, cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Close()

	req := buildRequest(cmd)

	doc, err := openDocument(cmd, args)
	if err != nil {
		return err
	}

	ws := newWorkspace(cmd, doc)
	store := config.NewStore(viper.GetViper(), config.ConfigFile())
	command := host.NewCommand(
		ws,
		newPrompter(),
		terminal.NewStatusLine(cmd.ErrOrStderr()),
		store,
		logger,
	)

	outcome, runErr := command.Run(runContext(cmd), req)
	if err := ws.Close(); err != nil && runErr == nil {
		runErr = errors.Wrap(err, "close output")
	}
	if runErr != nil {
		return runErr
	}
	if outcome.Canceled {
		return errors.ErrPromptCanceled
	}

	if outcome.Result.Report {
		logger.Info("no segments matched", "pattern", outcome.Pattern)
	}
	return nil
}

func buildRequest(cmd *cobra.Command) host.Request {
	flags := cmd.Flags()
	var req host.Request

	if flags.Changed("regex") {
		pattern, _ := flags.GetString("regex")
		req.Pattern = &pattern
	}
	if flags.Changed("separator") {
		separator, _ := flags.GetString("separator")
		req.Separator = &separator
	}
	if flags.Changed("invert") {
		invert, _ := flags.GetBool("invert")
		req.Invert = &invert
	}
	switch {
	case flags.Changed("ignore-case"):
		ignore, _ := flags.GetBool("ignore-case")
		caseSensitive := !ignore
		req.CaseSensitive = &caseSensitive
	case flags.Changed("case-sensitive"):
		caseSensitive, _ := flags.GetBool("case-sensitive")
		req.CaseSensitive = &caseSensitive
	}
	return req
}

// openDocument returns the document named by args, or stdin when no file or
// "-" is given. With no file and an interactive stdin there is no document.
func openDocument(cmd *cobra.Command, args []string) (host.Document, error) {
	if len(args) == 1 && args[0] != "-" {
		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		if info.IsDir() {
			return nil, errors.NewValidationError("document must be a file").
				WithField("file").WithValue(path)
		}
		return terminal.NewFileDocument(path, false), nil
	}

	in := cmd.InOrStdin()
	if in == os.Stdin && stdinIsTerminal() {
		return nil, nil
	}
	return terminal.NewReaderDocument(terminal.StdinName, in, false), nil
}

// newWorkspace writes results to stdout, or to the --output file once there
// are results to write.
func newWorkspace(cmd *cobra.Command, doc host.Document) *terminal.Workspace {
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		return terminal.NewFileWorkspace(doc, path)
	}
	return terminal.NewWorkspace(doc, cmd.OutOrStdout())
}

// newLogger builds the invocation logger. --log-level turns logging on for a
// single run even when it is disabled in the config.
func newLogger(cmd *cobra.Command, cfg config.LoggingConfig) (*logging.Logger, error) {
	level := cfg.Level
	enabled := cfg.Enabled
	if cmd.Flags().Changed("log-level") {
		level, _ = cmd.Flags().GetString("log-level")
		if !isValidLevel(level) {
			return nil, errors.NewValidationError("invalid log level").
				WithField("log-level").WithValue(level)
		}
		enabled = true
	}
	if !enabled {
		return logging.NopLogger(), nil
	}
	level = logging.ParseLevel(level)
	if cfg.Dir == "" {
		return logging.NewWriterLogger(cmd.ErrOrStderr(), level), nil
	}
	return logging.NewLogger(cfg.Dir, level)
}

func isValidLevel(level string) bool {
	return slices.ContainsFunc(logging.ValidLevels(), func(valid string) bool {
		return strings.EqualFold(valid, level)
	})
}

// runContext is the context for a command, never nil.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
