package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header    lipgloss.Style
	timestamp lipgloss.Style
	account   lipgloss.Style
	steps     lipgloss.Style
	message   lipgloss.Style
	failure   lipgloss.Style
	empty     lipgloss.Style
	summary   lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		account:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		steps:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		message:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		failure:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:     lipgloss.NewStyle().Faint(true),
		summary:   lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("245")),
	}
}
