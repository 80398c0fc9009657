package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorEntry = lipgloss.Color("#EF4444") // red
	colorExit  = lipgloss.Color("#10B981") // green
	colorCar   = lipgloss.Color("#3B82F6") // blue
	colorMuted = lipgloss.Color("#6B7280") // gray
	colorTitle = lipgloss.Color("#7C3AED") // purple

	entryStyle = lipgloss.NewStyle().Foreground(colorEntry).Bold(true)
	exitStyle  = lipgloss.NewStyle().Foreground(colorExit).Bold(true)
	carStyle   = lipgloss.NewStyle().Foreground(colorCar).Bold(true)
	ringStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle).MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
