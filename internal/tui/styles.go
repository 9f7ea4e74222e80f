package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	sourceColor  = lipgloss.Color("42")
	summerColor  = lipgloss.Color("214")
	mutedColor   = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	sourceStyle = lipgloss.NewStyle().Foreground(sourceColor)
	summerStyle = lipgloss.NewStyle().Foreground(summerColor)

	footerStyle = lipgloss.NewStyle().MarginTop(1)
)

func kindStyle(kind string) lipgloss.Style {
	switch kind {
	case "source":
		return sourceStyle
	case "aggregate":
		return summerStyle
	default:
		return mutedStyle
	}
}
