package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/models"
)

type Theme struct {
	Mode      string
	Accent    string
	Border    lipgloss.Color
	Base      lipgloss.Style
	Header    lipgloss.Style
	Text      lipgloss.Style
	Dim       lipgloss.Style
	Focused   lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Input     lipgloss.Style
	Dialog    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
}

type palette struct {
	text, dim, surface, selectedBg lipgloss.Color
}

var modePalettes = map[string]palette{
	config.ThemeDark:  {text: "252", dim: "243", surface: "236", selectedBg: "238"},
	config.ThemeLight: {text: "235", dim: "245", surface: "255", selectedBg: "254"},
}

var accentColors = map[string]lipgloss.Color{
	config.AccentGreen:  "#22C55E",
	config.AccentBlue:   "#3B82F6",
	config.AccentPurple: "#A855F7",
}

// ThemeModes and AccentNames list the choices offered in settings.
var (
	ThemeModes  = []string{config.ThemeLight, config.ThemeDark}
	AccentNames = []string{config.AccentGreen, config.AccentBlue, config.AccentPurple}
)

// ResolveTheme builds the theme for a mode and accent, falling back to
// dark and green for unknown names.
func ResolveTheme(mode, accent string) Theme {
	p, ok := modePalettes[mode]
	if !ok {
		mode = config.ThemeDark
		p = modePalettes[mode]
	}
	a, ok := accentColors[accent]
	if !ok {
		accent = config.AccentGreen
		a = accentColors[accent]
	}
	return Theme{
		Mode:      mode,
		Accent:    accent,
		Border:    a,
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Header:    lipgloss.NewStyle().Foreground(a).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(p.text),
		Dim:       lipgloss.NewStyle().Foreground(p.dim),
		Focused:   lipgloss.NewStyle().Foreground(a).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(a),
		Selected:  lipgloss.NewStyle().Foreground(p.text).Background(p.selectedBg).Bold(true),
		Tab:       lipgloss.NewStyle().Foreground(p.dim).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(p.surface).Background(a).Bold(true).Padding(0, 1),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(a).Padding(0, 1),
		Dialog:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(a).Padding(1, 2),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
	}
}

// StatusBadge renders a project status in its own color.
func StatusBadge(status models.ProjectStatus) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(status.Color())).
		Bold(true).
		Render(status.Label())
}
