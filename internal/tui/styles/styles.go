// Package styles holds the lipgloss styles shared by the prompt, the settings
// editor and the terminal status line.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text

	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Prompt
	PromptLabel = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	PromptText  = lipgloss.NewStyle().Foreground(TextColor)

	// Help bar
	HelpBar = lipgloss.NewStyle().Foreground(MutedColor).MarginTop(1)
	HelpKey = lipgloss.NewStyle().Bold(true).Foreground(SecondaryColor)

	// Settings editor
	Header               = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	ErrorMsg             = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	SuccessMsg           = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	DropdownItem         = lipgloss.NewStyle().Foreground(TextColor).Padding(0, 1)
	DropdownItemSelected = lipgloss.NewStyle().Foreground(TextColor).Background(PrimaryColor).Bold(true).Padding(0, 1)
)

// StatusKind classifies a status message for styling.
type StatusKind int

const (
	StatusKindInfo StatusKind = iota
	StatusKindBusy
	StatusKindFailed
)

// StatusStyle returns the style used for a status message of the given kind.
// Failures are bold.
func StatusStyle(kind StatusKind) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(StatusColor(kind))
	if kind == StatusKindFailed {
		style = style.Bold(true)
	}
	return style
}

// StatusColor returns the foreground color for a status kind.
func StatusColor(kind StatusKind) lipgloss.Color {
	switch kind {
	case StatusKindBusy:
		return WarningColor
	case StatusKindFailed:
		return ErrorColor
	default:
		return MutedColor
	}
}
