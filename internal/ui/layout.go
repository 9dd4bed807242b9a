package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout stacks the menu bar, body and status bar.
func ComposeLayout(menuBar, body, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// RenderPanel draws lines inside a bordered panel of exactly width x height,
// truncating overflow. lipgloss Height() only sets a minimum.
func RenderPanel(title string, lines []string, width, height int, active bool) string {
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	all := make([]string, 0, innerH)
	if title != "" {
		all = append(all, StylePanelTitle.Render(title))
	}
	all = append(all, lines...)
	if len(all) > innerH {
		all = all[:innerH]
	}

	style := StylePanelBorder
	if active {
		style = StylePanelActive
	}
	rendered := style.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))

	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// RenderCentered renders msg centered in a width x height area.
func RenderCentered(msg string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, StyleMessage.Render(msg))
}

// separator returns a horizontal rule of width w.
func separator(w int) string {
	if w < 1 {
		w = 1
	}
	return StyleSeparator.Render(strings.Repeat("-", w))
}
