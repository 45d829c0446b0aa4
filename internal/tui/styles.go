package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Outer frame
	App = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// The animated line itself
	TextStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E6E6E6"))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7B61FF"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9"))
)
