package terminal

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/tui/prompt"
)

// Prompter asks for input with the bubbletea prompt. The prompt is drawn on
// stderr so stdout can carry the results. When stdin is not a terminal, for
// example because the document is piped in, the controlling tty is used for
// input instead.
type Prompter struct {
	opts []tea.ProgramOption
}

// NewPrompter returns a prompter for the current process.
func NewPrompter() *Prompter {
	opts := []tea.ProgramOption{tea.WithOutput(os.Stderr)}
	if !IsTerminal(os.Stdin) {
		opts = append(opts, tea.WithInputTTY())
	}
	return &Prompter{opts: opts}
}

func (p *Prompter) Prompt(label, initial string) (string, bool, error) {
	return prompt.Run(label, initial, p.opts...)
}

// NoPrompter refuses every prompt. It is used when no terminal is attached.
type NoPrompter struct{}

func (NoPrompter) Prompt(label, _ string) (string, bool, error) {
	return "", false, errors.Wrapf(errors.ErrNoTerminal, "%q", label)
}

// Interactive reports whether a prompt can be shown in this process.
func Interactive() bool {
	return IsTerminal(os.Stderr)
}
