package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorPeach    lipgloss.Color = "#fab387"
	colorRed      lipgloss.Color = "#f38ba8"
	colorOverlay1 lipgloss.Color = "#7f849c"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(colorText)
	busyStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(colorRed)
	footerStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
)
