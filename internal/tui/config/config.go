// Package config is the interactive settings editor behind
// 'filterlines config edit'.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/filterlines/internal/config"
	"github.com/Iron-Ham/filterlines/internal/segment"
	"github.com/Iron-Ham/filterlines/internal/tui/styles"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string   // "string", "bool", "select"
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Model is the Bubbletea model for the interactive settings editor
type Model struct {
	v    *viper.Viper
	path string

	categories    []Category
	categoryIndex int
	itemIndex     int
	width         int
	height        int
	editing       bool
	textInput     textinput.Model
	selectIndex   int // For select-type options
	errorMsg      string
	infoMsg       string
	quitting      bool
}

// New creates a settings editor reading and writing v. Changes are saved to
// the file v was loaded from, or to path when v has no config file.
func New(v *viper.Viper, path string) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	categories := []Category{
		{
			Name: "Search",
			Items: []ConfigItem{
				{
					Key:         config.KeyCaseSensitiveSearch,
					Label:       "Case Sensitive",
					Description: "Match the pattern case-sensitively",
					Type:        "bool",
				},
				{
					Key:         config.KeyInvertSearch,
					Label:       "Invert",
					Description: "Keep the segments that do NOT match",
					Type:        "bool",
				},
				{
					Key:         config.KeyPreserveSearch,
					Label:       "Preserve Search",
					Description: "Offer the previous pattern as the initial prompt text",
					Type:        "bool",
				},
				{
					Key:         config.KeyLatestSearch,
					Label:       "Latest Search",
					Description: "The remembered pattern",
					Type:        "string",
				},
			},
		},
		{
			Name: "Separator",
			Items: []ConfigItem{
				{
					Key:         config.KeyCustomSeparator,
					Label:       "Custom Separator",
					Description: "Ask for a separator regex instead of splitting on line breaks",
					Type:        "bool",
				},
				{
					Key:         config.KeyDefaultCustomSeparator,
					Label:       "Default Separator",
					Description: "Initial text of the separator prompt",
					Type:        "string",
				},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{
					Key:         config.KeyLoggingEnabled,
					Label:       "Enabled",
					Description: "Write JSON debug logs",
					Type:        "bool",
				},
				{
					Key:         config.KeyLoggingLevel,
					Label:       "Level",
					Description: "Minimum level of logged entries",
					Type:        "select",
					Options:     config.ValidLogLevels(),
				},
				{
					Key:         config.KeyLoggingDir,
					Label:       "Directory",
					Description: "Directory for filterlines.log (empty writes to stderr)",
					Type:        "string",
				},
			},
		},
	}

	return Model{
		v:          v,
		path:       path,
		categories: categories,
		textInput:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear messages on any key
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.itemIndex--
			if m.itemIndex < 0 {
				m.categoryIndex--
				if m.categoryIndex < 0 {
					m.categoryIndex = len(m.categories) - 1
				}
				m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
			}

		case "down", "j":
			m.itemIndex++
			if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
				m.categoryIndex++
				if m.categoryIndex >= len(m.categories) {
					m.categoryIndex = 0
				}
				m.itemIndex = 0
			}

		case "tab":
			m.categoryIndex++
			if m.categoryIndex >= len(m.categories) {
				m.categoryIndex = 0
			}
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex--
			if m.categoryIndex < 0 {
				m.categoryIndex = len(m.categories) - 1
			}
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case "bool":
				// Toggle boolean directly
				m.v.Set(item.Key, !m.v.GetBool(item.Key))
				m.saveConfig()
			case "select":
				m.editing = true
				m.selectIndex = m.getCurrentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.v.GetString(item.Key))
				m.textInput.CursorEnd()
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
	}

	return m, nil
}

func (m *Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return *m, nil

	case "enter":
		if item.Type == "select" {
			m.v.Set(item.Key, item.Options[m.selectIndex])
			m.saveConfig()
			m.editing = false
			return *m, nil
		}
		value := m.textInput.Value()
		if err := m.validateAndSet(item, value); err != nil {
			m.errorMsg = err.Error()
			return *m, nil
		}
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return *m, nil

	case "up", "k":
		if item.Type == "select" {
			m.selectIndex--
			if m.selectIndex < 0 {
				m.selectIndex = len(item.Options) - 1
			}
			return *m, nil
		}

	case "down", "j":
		if item.Type == "select" {
			m.selectIndex++
			if m.selectIndex >= len(item.Options) {
				m.selectIndex = 0
			}
			return *m, nil
		}
	}

	if item.Type == "select" {
		return *m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return *m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.Header.Render("filterlines settings"))
	b.WriteString("\n")

	b.WriteString(styles.Muted.Render(fmt.Sprintf("Config file: %s", m.targetDescription())))
	b.WriteString("\n\n")

	for ci, cat := range m.categories {
		isActiveCategory := ci == m.categoryIndex

		catStyle := styles.Muted.Bold(true)
		if isActiveCategory {
			catStyle = styles.Primary.Bold(true)
		}
		b.WriteString(catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		b.WriteString("\n")

		for ii, item := range cat.Items {
			b.WriteString(m.renderItem(item, isActiveCategory && ii == m.itemIndex))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(styles.Muted.Render(m.currentItem().Description))
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessMsg.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	paddedLabel := fmt.Sprintf("%-20s", item.Label)
	value := m.getDisplayValue(item)

	if selected {
		cursor := styles.Secondary.Render(">")
		return fmt.Sprintf("  %s %s  %s", cursor, styles.Text.Bold(true).Render(paddedLabel), styles.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", styles.Muted.Render(paddedLabel), styles.Text.Render(value))
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.PrimaryColor).
		Padding(1, 2).
		Width(50)

	var content strings.Builder
	if item.Type == "select" {
		fmt.Fprintf(&content, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(styles.DropdownItemSelected.Render(fmt.Sprintf(" > %s ", opt)) + "\n")
			} else {
				content.WriteString(styles.DropdownItem.Render(fmt.Sprintf("   %s ", opt)) + "\n")
			}
		}
		content.WriteString("\n" + styles.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel"))
	} else {
		fmt.Fprintf(&content, "Edit %s:\n\n", item.Label)
		content.WriteString(m.textInput.View())
		content.WriteString("\n\n" + styles.Muted.Render("enter to save, esc to cancel"))
	}

	return "\n" + borderStyle.Render(content.String())
}

func (m Model) renderHelp() string {
	keyStyle := styles.HelpKey

	if m.editing {
		return styles.HelpBar.Render(
			keyStyle.Render("enter") + " save  " +
				keyStyle.Render("esc") + " cancel",
		)
	}

	return styles.HelpBar.Render(
		keyStyle.Render("j/k") + " navigate  " +
			keyStyle.Render("tab") + " next category  " +
			keyStyle.Render("enter/space") + " edit  " +
			keyStyle.Render("r") + " reset  " +
			keyStyle.Render("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getDisplayValue(item ConfigItem) string {
	if item.Type == "bool" {
		return fmt.Sprintf("%v", m.v.GetBool(item.Key))
	}
	value := m.v.GetString(item.Key)
	if value == "" {
		return `""`
	}
	return value
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	current := strings.ToLower(m.v.GetString(item.Key))
	if i := slices.Index(item.Options, current); i >= 0 {
		return i
	}
	return 0
}

func (m *Model) validateAndSet(item ConfigItem, value string) error {
	switch item.Type {
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("expected true or false")
		}
		m.v.Set(item.Key, value == "true")
		return nil
	case "select":
		if !slices.Contains(item.Options, value) {
			return fmt.Errorf("invalid option: %s", value)
		}
	}

	if item.Key == config.KeyDefaultCustomSeparator {
		if _, err := segment.New(value); err != nil {
			return err
		}
	}
	m.v.Set(item.Key, value)
	return nil
}

// target is the file that receives saved settings.
func (m Model) target() string {
	if used := m.v.ConfigFileUsed(); used != "" {
		return used
	}
	return m.path
}

func (m Model) targetDescription() string {
	target := m.target()
	if _, err := os.Stat(target); err != nil {
		return target + " (not created)"
	}
	return target
}

func (m *Model) saveConfig() {
	target := m.target()
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return
	}

	if err := m.v.WriteConfigAs(target); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return
	}

	m.infoMsg = "Saved!"
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	defaults := config.Default()

	defaultValues := map[string]any{
		config.KeyPreserveSearch:         defaults.PreserveSearch,
		config.KeyLatestSearch:           defaults.LatestSearch,
		config.KeyInvertSearch:           defaults.InvertSearch,
		config.KeyCaseSensitiveSearch:    defaults.CaseSensitiveSearch,
		config.KeyCustomSeparator:        defaults.CustomSeparator,
		config.KeyDefaultCustomSeparator: defaults.DefaultCustomSeparator,
		config.KeyLoggingEnabled:         defaults.Logging.Enabled,
		config.KeyLoggingLevel:           defaults.Logging.Level,
		config.KeyLoggingDir:             defaults.Logging.Dir,
	}

	if defaultVal, ok := defaultValues[item.Key]; ok {
		m.v.Set(item.Key, defaultVal)
		m.saveConfig()
		if m.errorMsg == "" {
			m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
		}
	}
}

// Run starts the interactive settings editor
func Run(v *viper.Viper, path string) error {
	p := tea.NewProgram(New(v, path), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
