package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wlan-meter.klederson.com/internal/config"
)

// Screen is one of the dashboard views.
type Screen int

const (
	ScreenInfo Screen = iota
	ScreenHistory
	ScreenScan
)

func (s Screen) String() string {
	switch s {
	case ScreenHistory:
		return "History"
	case ScreenScan:
		return "Scan"
	default:
		return "Info"
	}
}

// RenderMenuBar renders the top menu bar with screen tabs.
func RenderMenuBar(width int, iface string, active Screen, demo bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	var menu strings.Builder
	for i, s := range []Screen{ScreenInfo, ScreenHistory, ScreenScan} {
		tab := fmt.Sprintf("[%d]%s", i+1, s)
		menu.WriteString("  ")
		if s == active {
			menu.WriteString(StyleTabActive.Render(tab))
		} else {
			menu.WriteString(StyleMenuKey.Render(fmt.Sprintf("[%d]", i+1)) + StyleMenuLabel.Render(s.String()))
		}
	}
	menu.WriteString("  " + StyleMenuKey.Render("[Q]") + StyleMenuLabel.Render("uit"))

	right := StyleMenuLabel.Render("Interface: ") + StyleMenuKey.Render(iface) + " "
	if demo {
		right = StyleDemo.Render("DEMO") + "  " + right
	}

	left := StyleMenuKey.Render(title) + menu.String()
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
