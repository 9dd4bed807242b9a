package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: a state badge, screen
// specific info on the left and key hints on the right.
func RenderStatusBar(width int, up bool, info, hints string) string {
	status := StyleStatusUp.Render("[UP]")
	if !up {
		status = StyleStatusDown.Render("[DOWN]")
	}

	left := status + " " + StyleMenuLabel.Render(info)
	right := StyleHelp.Render(hints)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return StyleStatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
