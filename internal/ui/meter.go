package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"wlan-meter.klederson.com/internal/config"
)

// levelRatio maps a dBm level onto 0..1 across the display range.
func levelRatio(dbm float64) float64 {
	if dbm == 0 {
		return 0
	}
	r := (dbm - config.SignalFloor) / (config.SignalCeil - config.SignalFloor)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// RenderMeter renders one labelled horizontal bar. ratio is clamped to 0..1.
func RenderMeter(label string, ratio float64, text string, width int, color lipgloss.Color) string {
	barW := width - 12 - len(text) - 1
	if barW < 5 {
		barW = 5
	}
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(barW),
	)
	bar.EmptyColor = string(ColorDimGreen)

	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return StyleLabel.Render(fmt.Sprintf("  %-10s", label)) + bar.ViewAs(ratio) + " " + StyleValue.Render(text)
}

// RenderLevelMeter renders a dBm level bar colored by strength.
func RenderLevelMeter(label string, dbm float64, width int) string {
	return RenderMeter(label, levelRatio(dbm), formatDBM(dbm), width, SignalColor(dbm))
}
