package host

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/linefilter"
	"github.com/Iron-Ham/filterlines/internal/logging"
	"github.com/Iron-Ham/filterlines/internal/util"
)

// ResultsName is the name given to every results surface.
const ResultsName = "Filter Results"

// SeparatorPrompt is the label of the separator prompt.
const SeparatorPrompt = "Custom regex separator"

const (
	statusFiltering = "Filtering..."
	maxStatusLen    = 120
)

// Request carries values that skip the corresponding prompt or override a
// stored preference. Nil fields fall back to prompting or preferences.
type Request struct {
	Pattern       *string
	Separator     *string
	Invert        *bool
	CaseSensitive *bool
}

// Outcome describes a finished invocation.
type Outcome struct {
	Pattern   string
	Separator string
	Result    linefilter.Result
	// Canceled is true when the user dismissed a prompt. Nothing was written.
	Canceled bool
}

// Command runs one filter invocation against a workspace.
type Command struct {
	workspace Workspace
	prompter  Prompter
	status    StatusReporter
	prefs     Preferences
	logger    *logging.Logger
}

// NewCommand wires a Command to its collaborators. A nil logger disables
// logging.
func NewCommand(ws Workspace, prompter Prompter, status StatusReporter, prefs Preferences, logger *logging.Logger) *Command {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Command{
		workspace: ws,
		prompter:  prompter,
		status:    status,
		prefs:     prefs,
		logger:    logger,
	}
}

// Run asks for a pattern (and a separator when custom separators are
// enabled), filters the active document and writes the result to a new
// scratch surface. An invalid pattern is reported through the status line
// and returned; no surface is created for it.
func (c *Command) Run(ctx context.Context, req Request) (Outcome, error) {
	logger := c.logger.WithInvocation(logging.NewInvocationID())

	doc, ok := c.workspace.ActiveDocument()
	if !ok {
		return Outcome{}, errors.ErrNoActiveDocument
	}
	logger = logger.WithDocument(doc.Name())

	prefs := c.prefs.Load()
	invert := prefs.InvertSearch
	if req.Invert != nil {
		invert = *req.Invert
	}
	caseSensitive := prefs.CaseSensitiveSearch
	if req.CaseSensitive != nil {
		caseSensitive = *req.CaseSensitive
	}

	pattern, ok, err := c.pattern(req, prefs.PreserveSearch, prefs.LatestSearch, invert)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		logger.Debug("pattern prompt dismissed")
		return Outcome{Canceled: true}, nil
	}

	if prefs.PreserveSearch {
		if err := c.prefs.SaveLatestSearch(pattern); err != nil {
			logger.Warn("failed to persist latest search", "error", err.Error())
		}
	}

	separator, ok, err := c.separator(req, prefs.CustomSeparator, prefs.DefaultCustomSeparator)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		logger.Debug("separator prompt dismissed")
		return Outcome{Pattern: pattern, Canceled: true}, nil
	}

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	c.status.Status(statusFiltering)
	logger.Info("filtering document", "pattern", pattern, "separator", separator,
		"invert", invert, "case_sensitive", caseSensitive)

	text, err := doc.Text()
	if err != nil {
		c.status.Status("")
		return Outcome{}, errors.Wrapf(err, "read %s", doc.Name())
	}

	res, err := linefilter.Run(text, linefilter.Options{
		Pattern:       pattern,
		CaseSensitive: caseSensitive,
		Invert:        invert,
		Separator:     separator,
		Logger:        logger,
	})
	if err != nil {
		c.status.Status(util.TruncateString(util.OneLine(fmt.Sprintf("Filter failed: %v", err)), maxStatusLen))
		return Outcome{}, err
	}

	if err := c.write(doc, res); err != nil {
		logger.Error("failed to write results", "error", err.Error())
		c.status.Status("")
		return Outcome{}, err
	}

	c.status.Status("")
	logger.Info("filter finished", "matches", res.MatchCount, "segments", res.Segments)

	return Outcome{Pattern: pattern, Separator: separator, Result: res}, nil
}

func (c *Command) pattern(req Request, preserve bool, latest string, invert bool) (string, bool, error) {
	if req.Pattern != nil {
		return *req.Pattern, true, nil
	}

	initial := ""
	if preserve {
		initial = latest
	}
	value, ok, err := c.prompter.Prompt(linefilter.Prompt(invert), initial)
	if err != nil {
		return "", false, errors.Wrap(err, "pattern prompt")
	}
	return value, ok, nil
}

func (c *Command) separator(req Request, custom bool, initial string) (string, bool, error) {
	if req.Separator != nil {
		return *req.Separator, true, nil
	}
	if !custom {
		return "", true, nil
	}

	value, ok, err := c.prompter.Prompt(SeparatorPrompt, initial)
	if err != nil {
		return "", false, errors.Wrap(err, "separator prompt")
	}
	return value, ok, nil
}

// write creates the results surface. The source syntax is carried over only
// when there are matches; the no-match report is plain text.
func (c *Command) write(doc Document, res linefilter.Result) error {
	surface, err := c.workspace.NewSurface()
	if err != nil {
		return errors.Wrap(err, "create results surface")
	}
	surface.SetName(ResultsName)
	surface.SetScratch(true)
	surface.SetWordWrap(doc.WordWrap())

	if err := surface.Append(res.Text); err != nil {
		return errors.Wrap(err, "write results")
	}
	if !res.Report {
		surface.SetSyntax(doc.Syntax())
	}
	return nil
}
