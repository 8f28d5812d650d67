package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/filterlines/internal/config"
)

func newTestModel(t *testing.T) (Model, *viper.Viper, string) {
	t.Helper()
	v := viper.New()
	config.SetDefaultsOn(v)
	path := filepath.Join(t.TempDir(), "filterlines", "config.yaml")
	m := New(v, path)
	m.width = 80
	m.height = 40
	return m, v, path
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// selectKey moves the cursor to the item with the given key.
func selectKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	for range 20 {
		if m.currentItem().Key == key {
			return m
		}
		m = press(m, keyDown)
	}
	t.Fatalf("item %q not reachable", key)
	return m
}

func TestNavigationWraps(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, keyUp)
	last := m.categories[len(m.categories)-1]
	if m.categoryIndex != len(m.categories)-1 || m.itemIndex != len(last.Items)-1 {
		t.Errorf("up from the first item should wrap to the last, got %d/%d", m.categoryIndex, m.itemIndex)
	}

	m = press(m, keyDown)
	if m.categoryIndex != 0 || m.itemIndex != 0 {
		t.Errorf("down from the last item should wrap to the first, got %d/%d", m.categoryIndex, m.itemIndex)
	}

	m = press(m, keyTab)
	if m.categoryIndex != 1 || m.itemIndex != 0 {
		t.Errorf("tab should move to the next category, got %d/%d", m.categoryIndex, m.itemIndex)
	}
}

func TestToggleBoolSaves(t *testing.T) {
	m, v, path := newTestModel(t)
	m = selectKey(t, m, config.KeyCaseSensitiveSearch)

	m = press(m, keyEnter)
	if v.GetBool(config.KeyCaseSensitiveSearch) {
		t.Error("enter should toggle case_sensitive_search off")
	}
	if m.infoMsg != "Saved!" {
		t.Errorf("infoMsg = %q, errorMsg = %q", m.infoMsg, m.errorMsg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "case_sensitive_search: false") {
		t.Errorf("config file = %s", data)
	}
}

func TestEditSeparator(t *testing.T) {
	m, v, _ := newTestModel(t)
	m = selectKey(t, m, config.KeyDefaultCustomSeparator)

	m = press(m, keyEnter)
	if !m.editing {
		t.Fatal("enter on a string item should start editing")
	}
	if m.textInput.Value() != config.DefaultSeparator {
		t.Errorf("edit value = %q, want current value", m.textInput.Value())
	}

	m.textInput.SetValue(";")
	m = press(m, keyEnter)
	if m.editing {
		t.Error("enter should finish editing")
	}
	if got := v.GetString(config.KeyDefaultCustomSeparator); got != ";" {
		t.Errorf("default_custom_separator = %q, want %q", got, ";")
	}
}

func TestEditSeparator_Invalid(t *testing.T) {
	m, v, path := newTestModel(t)
	m = selectKey(t, m, config.KeyDefaultCustomSeparator)

	m = press(m, keyEnter)
	m.textInput.SetValue("[")
	m = press(m, keyEnter)

	if !m.editing {
		t.Error("an invalid separator should keep the editor open")
	}
	if m.errorMsg == "" {
		t.Error("an invalid separator should show an error")
	}
	if got := v.GetString(config.KeyDefaultCustomSeparator); got != config.DefaultSeparator {
		t.Errorf("default_custom_separator = %q, should be unchanged", got)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("nothing should be saved for an invalid separator")
	}
}

func TestEditCancel(t *testing.T) {
	m, v, _ := newTestModel(t)
	m = selectKey(t, m, config.KeyLatestSearch)

	m = press(m, keyEnter, runes("x"), keyEsc)
	if m.editing {
		t.Error("esc should stop editing")
	}
	if got := v.GetString(config.KeyLatestSearch); got != "" {
		t.Errorf("latest_search = %q, esc should discard the edit", got)
	}
}

func TestSelectLogLevel(t *testing.T) {
	m, v, _ := newTestModel(t)
	m = selectKey(t, m, config.KeyLoggingLevel)

	m = press(m, keyEnter)
	if m.selectIndex != 1 {
		t.Fatalf("selectIndex = %d, want the current level (info)", m.selectIndex)
	}
	m = press(m, keyDown, keyEnter)
	if got := v.GetString(config.KeyLoggingLevel); got != "warn" {
		t.Errorf("logging.level = %q, want %q", got, "warn")
	}
}

func TestResetToDefault(t *testing.T) {
	m, v, _ := newTestModel(t)
	v.Set(config.KeyInvertSearch, true)
	m = selectKey(t, m, config.KeyInvertSearch)

	m = press(m, runes("r"))
	if v.GetBool(config.KeyInvertSearch) {
		t.Error("r should reset invert_search to false")
	}
	if !strings.Contains(m.infoMsg, "Reset Invert") {
		t.Errorf("infoMsg = %q", m.infoMsg)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	if !next.(Model).quitting {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("q should return a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestView(t *testing.T) {
	m, _, path := newTestModel(t)
	view := m.View()

	for _, want := range []string{"[ Search ]", "[ Separator ]", "[ Logging ]", "Case Sensitive", path + " (not created)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = selectKey(t, m, config.KeyLoggingLevel)
	m = press(m, keyEnter)
	if !strings.Contains(m.View(), "Select Level") {
		t.Error("select overlay should be rendered while editing")
	}
}
