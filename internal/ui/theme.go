package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles shared by every screen.
type Theme struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Danger   lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

func defaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("24")).
			Bold(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
