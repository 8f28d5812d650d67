package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestNew_InitialValue(t *testing.T) {
	m := New("Filter: ", "previous")
	if m.Value() != "previous" {
		t.Errorf("Value() = %q, want %q", m.Value(), "previous")
	}
	if m.Submitted() || m.Canceled() {
		t.Error("new prompt should be neither submitted nor canceled")
	}
}

func TestUpdate_TypingAppendsToInitial(t *testing.T) {
	m := typeRunes(New("Filter: ", "ab"), "c")
	if m.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", m.Value(), "abc")
	}
}

func TestUpdate_Enter(t *testing.T) {
	m := typeRunes(New("Filter: ", ""), "an")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.Submitted() {
		t.Error("enter should submit")
	}
	if m.Canceled() {
		t.Error("enter should not cancel")
	}
	if cmd == nil {
		t.Fatal("enter should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter should quit the program")
	}
	if m.Value() != "an" {
		t.Errorf("Value() = %q, want %q", m.Value(), "an")
	}
}

func TestUpdate_Cancel(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, cmd := New("Filter: ", "x").Update(tt.key)
			m := next.(Model)
			if !m.Canceled() {
				t.Error("key should cancel the prompt")
			}
			if m.Submitted() {
				t.Error("key should not submit the prompt")
			}
			if cmd == nil {
				t.Fatal("cancel should return a quit command")
			}
		})
	}
}

func TestView(t *testing.T) {
	m := New("Custom regex separator", ";")
	view := m.View()
	if !strings.Contains(view, "Custom regex separator") {
		t.Errorf("View() should contain the label, got %q", view)
	}
	if !strings.Contains(view, "esc") {
		t.Errorf("View() should contain help, got %q", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(Model).View(); got != "" {
		t.Errorf("View() after submit = %q, want empty", got)
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	next, _ := New("Filter: ", "").Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	m := next.(Model)
	if m.width != 100 {
		t.Errorf("width = %d, want 100", m.width)
	}
	if m.textInput.Width != 100-len("Filter: ")-1 {
		t.Errorf("input width = %d, want %d", m.textInput.Width, 100-len("Filter: ")-1)
	}
}
