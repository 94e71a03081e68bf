package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	On        lipgloss.Style
	Off       lipgloss.Style
	Input     lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(22),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		On:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Off:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                                                   // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center), // Cyan
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Width(22),                        // White
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		On:        lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true), // Green
		Off:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),             // Comment
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // Red
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")), // Cyan
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

// SetTheme switches the palette; unknown names are ignored.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if ok {
		CurrentTheme = t
	}
	return ok
}
