// Package prompt is a single-line bubbletea input used to ask for a search
// pattern or a separator.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/tui/styles"
)

// Model is the prompt state.
type Model struct {
	label     string
	textInput textinput.Model
	submitted bool
	canceled  bool
	width     int
}

// New creates a prompt showing label with initial as editable text. The
// cursor starts at the end of initial.
func New(label, initial string) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Width = 60
	ti.TextStyle = styles.PromptText
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return Model{label: label, textInput: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - len(m.label) - 1; w > 10 {
			m.textInput.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.submitted || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.PromptLabel.Render(m.label))
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(styles.HelpBar.Render(
		styles.HelpKey.Render("enter") + " filter  " + styles.HelpKey.Render("esc") + " cancel"))
	return b.String()
}

// Value is the current input text.
func (m Model) Value() string { return m.textInput.Value() }

// Submitted reports whether the user confirmed the input.
func (m Model) Submitted() bool { return m.submitted }

// Canceled reports whether the user dismissed the prompt.
func (m Model) Canceled() bool { return m.canceled }

// Run shows the prompt and blocks until it is confirmed or dismissed. ok is
// false when the prompt was dismissed.
func Run(label, initial string, opts ...tea.ProgramOption) (value string, ok bool, err error) {
	final, err := tea.NewProgram(New(label, initial), opts...).Run()
	if err != nil {
		return "", false, errors.Wrap(err, "run prompt")
	}
	m, isModel := final.(Model)
	if !isModel || !m.Submitted() {
		return "", false, nil
	}
	return m.Value(), true, nil
}
