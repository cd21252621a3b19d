// Package themes holds the terminal UI color schemes.
package themes

import (
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is derived from.
type Palette struct {
	Primary    lipgloss.Color
	Income     lipgloss.Color
	Expense    lipgloss.Color
	Warning    lipgloss.Color
	Info       lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Highlight  lipgloss.Color
}

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Muted         lipgloss.Style
	Selected      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	BorderedBox   lipgloss.Style
	Palette       Palette
}

// New derives every style from p.
func New(p Palette) Theme {
	return Theme{
		Palette: p,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted),
		Normal: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),
		Selected: lipgloss.NewStyle().
			Background(p.Primary).
			Foreground(p.Highlight).
			Bold(true),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Underline(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		Income: lipgloss.NewStyle().
			Foreground(p.Income),
		Expense: lipgloss.NewStyle().
			Foreground(p.Expense),
		StatusError: lipgloss.NewStyle().
			Foreground(p.Expense).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}

// Dark is the default theme.
var Dark = New(Palette{
	Primary:    lipgloss.Color("#7c3aed"),
	Income:     lipgloss.Color("#10b981"),
	Expense:    lipgloss.Color("#ef4444"),
	Warning:    lipgloss.Color("#f59e0b"),
	Info:       lipgloss.Color("#3b82f6"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
	Highlight:  lipgloss.Color("#fafafa"),
})

// Light suits terminals with a light background.
var Light = New(Palette{
	Primary:    lipgloss.Color("#6d28d9"),
	Income:     lipgloss.Color("#047857"),
	Expense:    lipgloss.Color("#b91c1c"),
	Warning:    lipgloss.Color("#b45309"),
	Info:       lipgloss.Color("#1d4ed8"),
	Foreground: lipgloss.Color("#171717"),
	Border:     lipgloss.Color("#d4d4d4"),
	Muted:      lipgloss.Color("#737373"),
	Highlight:  lipgloss.Color("#ffffff"),
})

// ForDisplay picks the theme named by the user's display settings.
// "system" follows the terminal background.
func ForDisplay(d model.DisplaySettings) Theme {
	switch d.Theme {
	case model.ThemeLight:
		return Light
	case model.ThemeDark:
		return Dark
	default:
		if lipgloss.HasDarkBackground() {
			return Dark
		}
		return Light
	}
}
