package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#00D7AF")
	colorText   = lipgloss.Color("#C0C0C0")
	colorDim    = lipgloss.Color("#5F5F5F")
	colorWarn   = lipgloss.Color("#FFAF00")
)

var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	StyleCursorRow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(colorAccent).
			Bold(true)

	StyleDeviceLabel = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true)

	StyleDeviceMAC = lipgloss.NewStyle().
			Foreground(colorDim)

	StyleDeviceRSSI = lipgloss.NewStyle().
			Foreground(colorAccent)

	StyleAnnotation = lipgloss.NewStyle().
			Foreground(colorWarn)

	StyleHelp = lipgloss.NewStyle().
			Foreground(colorDim)
)
