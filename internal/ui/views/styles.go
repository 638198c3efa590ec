package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Chip        lipgloss.Style
	ChipRemove  lipgloss.Style
	Clear       lipgloss.Style
	Group       lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Selected    lipgloss.Style
	Disabled    lipgloss.Style

	MessageError    lipgloss.Style
	MessageWarning  lipgloss.Style
	MessageLoading  lipgloss.Style
	MessageRequired lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("61")).
			Padding(0, 1),
		ChipRemove: lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Background(lipgloss.Color("61")),
		Clear:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Group:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Help:       lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true),

		MessageError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		MessageWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		MessageLoading:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		MessageRequired: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}
