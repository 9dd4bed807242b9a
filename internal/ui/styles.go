package ui

import "github.com/charmbracelet/lipgloss"

// Matrix color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBlack        = lipgloss.Color("#000000")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorOpen         = lipgloss.Color("#FFCC00")
	ColorNoise        = lipgloss.Color("#FF6633")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleTabActive = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorMatrixGreen).
			Bold(true)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusUp = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleStatusDown = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleDemo = lipgloss.NewStyle().
			Foreground(ColorOpen).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleESSID = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleHidden = lipgloss.NewStyle().
			Foreground(ColorDimGreen).
			Italic(true)

	StyleMAC = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleOpen = lipgloss.NewStyle().
			Foreground(ColorOpen)

	StyleAssociated = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleAxis = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleExtrema = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleMessage = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)
)

// SignalColor maps a dBm level to a color, strongest brightest.
func SignalColor(dbm float64) lipgloss.Color {
	switch {
	case dbm == 0:
		return ColorDimGreen
	case dbm >= -55:
		return ColorMatrixGreen
	case dbm >= -67:
		return ColorGreen
	case dbm >= -75:
		return ColorWarning
	default:
		return ColorError
	}
}
