package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
const (
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorPeach    lipgloss.Color = "#fab387"
	colorSky      lipgloss.Color = "#89dceb"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
)

const (
	colorBrand = colorPink
	colorError = colorRed
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	promptStyle  = lipgloss.NewStyle().Foreground(colorText)
	statusStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	captionStyle = lipgloss.NewStyle().Foreground(colorOverlay0).Italic(true)

	treeStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	lemonStyle = lipgloss.NewStyle().Foreground(colorYellow)
	drinkStyle = lipgloss.NewStyle().Foreground(colorPeach)
	glassStyle = lipgloss.NewStyle().Foreground(colorSky)
)
