package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/filterlines/internal/config"
	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/segment"
	tuiconfig "github.com/Iron-Ham/filterlines/internal/tui/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify filterlines configuration",
	Long: `View or modify filterlines configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  filterlines config set case_sensitive_search false
  filterlines config set default_custom_separator ';'
  filterlines config set logging.level debug

Valid keys:
  preserve_search           - Remember the last pattern (true/false)
  latest_search             - The remembered pattern
  invert_search             - Keep segments that do not match (true/false)
  case_sensitive_search     - Match case-sensitively (true/false)
  custom_separator          - Prompt for a separator regex (true/false)
  default_custom_separator  - Initial text of the separator prompt
  logging.enabled           - Write debug logs (true/false)
  logging.level             - Options: debug, info, warn, error
  logging.dir               - Directory for filterlines.log (empty for stderr)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/filterlines/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration interactively",
	Long:  `Open a terminal editor for the search preferences and logging settings. Changes are saved as they are made.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

// configKeyTypes lists the keys accepted by 'config set' with their types.
var configKeyTypes = map[string]string{
	config.KeyPreserveSearch:         "bool",
	config.KeyLatestSearch:           "string",
	config.KeyInvertSearch:           "bool",
	config.KeyCaseSensitiveSearch:    "bool",
	config.KeyCustomSeparator:        "bool",
	config.KeyDefaultCustomSeparator: "string",
	config.KeyLoggingEnabled:         "bool",
	config.KeyLoggingLevel:           "string",
	config.KeyLoggingDir:             "string",
}

// configTarget is the file that 'config set' and 'config init' write to.
func configTarget() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.ConfigFile()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode configuration")
	}
	_, err = out.Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeyTypes[key]
	if !ok {
		return errors.NewValidationError(
			fmt.Sprintf("unknown configuration key: %s\nRun 'filterlines config set --help' to see valid keys", key)).
			WithField(key)
	}

	var typedValue any
	switch keyType {
	case "bool":
		if value != "true" && value != "false" {
			return errors.NewValidationError(fmt.Sprintf("invalid value for %s: expected true or false", key)).
				WithField(key).WithValue(value)
		}
		typedValue = value == "true"
	default:
		if err := validateStringSetting(key, value); err != nil {
			return err
		}
		typedValue = value
	}

	target := configTarget()
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	if err := viper.WriteConfigAs(target); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", target)

	return nil
}

func validateStringSetting(key, value string) error {
	switch key {
	case config.KeyLoggingLevel:
		if !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return errors.NewValidationError(fmt.Sprintf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))).
				WithField(key).WithValue(value)
		}
	case config.KeyDefaultCustomSeparator:
		if _, err := segment.New(value); err != nil {
			return err
		}
	}
	return nil
}

// defaultConfigContent is written by 'config init'.
const defaultConfigContent = `# filterlines configuration

# Offer the previous pattern as the initial prompt text
preserve_search: true
# The previous pattern (updated automatically when preserve_search is on)
latest_search: ""

# Keep segments that do NOT match the pattern
invert_search: false
# Match case-sensitively; false folds case
case_sensitive_search: true

# Ask for a separator regex after the pattern instead of splitting on lines
custom_separator: false
# Initial text of the separator prompt
default_custom_separator: '(\n|\r\n|\r)'

# Debug logging
logging:
  enabled: false
  # Options: debug, info, warn, error
  level: info
  # Directory for filterlines.log; empty writes to stderr
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		configFile = cfgFile
	}

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'filterlines config set' to modify values", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize filterlines' behavior.")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	return tuiconfig.Run(viper.GetViper(), configTarget())
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", configFile)
	fmt.Fprintf(out, "  2. $HOME/.config/filterlines/config.yaml\n")
	fmt.Fprintln(out, "\nEnvironment variables: FILTERLINES_* (e.g., FILTERLINES_CASE_SENSITIVE_SEARCH)")
	fmt.Fprintln(out, "A .env file in the working directory is loaded as well.")

	return nil
}
