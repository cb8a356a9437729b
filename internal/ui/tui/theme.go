package tui

import "github.com/charmbracelet/lipgloss"

// Colors follow the SAMMI browser: teal accents, magenta for notices.
var (
	colorAccent = lipgloss.Color("37")
	colorNotice = lipgloss.Color("170")
)

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Toast    lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent),
		Toast: lipgloss.NewStyle().Foreground(colorNotice).Bold(true),
	}
}
