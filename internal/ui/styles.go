package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	captionStyle = lipgloss.NewStyle().Faint(true)
	waitingStyle = lipgloss.NewStyle().Faint(true)
	staleStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)

	normalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	cautionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// bandStyle returns the lipgloss style for a classification band.
func bandStyle(b Band) lipgloss.Style {
	switch b {
	case BandCaution:
		return cautionStyle
	case BandAlert:
		return alertStyle
	default:
		return normalStyle
	}
}
