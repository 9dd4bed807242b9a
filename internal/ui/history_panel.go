package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/history"
)

// HistoryView is everything the history screen shows.
type HistoryView struct {
	Samples  []history.Sample // oldest first
	Extrema  history.Extrema
	Dist     history.DistributionStats
	SlotSize int
	Interval float64 // seconds per sample
}

const axisW = 6 // "-100 |"

// columnHeights maps samples onto bar heights in 0..rows. Invalid samples
// get -1 and are drawn as gaps.
func columnHeights(samples []history.Sample, rows int) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		if !s.Valid {
			out[i] = -1
			continue
		}
		out[i] = int(math.Round(levelRatio(s.Signal) * float64(rows)))
	}
	return out
}

// RenderHistoryPanel renders the signal graph over the sample cache.
func RenderHistoryPanel(v HistoryView, width, height int) string {
	innerW := width - 4
	if innerW < axisW+10 {
		innerW = axisW + 10
	}
	graphW := innerW - axisW
	rows := height - 2 - 1 - 4 // border, title, footer
	if rows < 3 {
		rows = 3
	}

	samples := v.Samples
	if len(samples) > graphW {
		samples = samples[len(samples)-graphW:]
	}
	heights := columnHeights(samples, rows)
	pad := graphW - len(heights)

	dbmAt := func(row int) float64 {
		return config.SignalFloor + (config.SignalCeil-config.SignalFloor)*float64(row)/float64(rows)
	}
	extremaRow := func(dbm float64) int {
		return int(math.Round(levelRatio(dbm) * float64(rows)))
	}
	minRow, maxRow := -1, -1
	if v.Extrema.Initialized {
		minRow, maxRow = extremaRow(v.Extrema.Min), extremaRow(v.Extrema.Max)
	}

	lines := make([]string, 0, rows+4)
	for row := rows; row >= 1; row-- {
		label := "     |"
		if row == rows || row%5 == 0 {
			label = fmt.Sprintf("%4.0f |", dbmAt(row))
		}

		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", pad))
		for _, h := range heights {
			switch {
			case h >= row:
				sb.WriteString(lipgloss.NewStyle().Foreground(SignalColor(dbmAt(h))).Render("|"))
			case row == minRow || row == maxRow:
				sb.WriteString(StyleExtrema.Render("."))
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, StyleAxis.Render(label)+sb.String())
	}
	lines = append(lines, StyleAxis.Render("     +"+strings.Repeat("-", graphW)))

	span := float64(len(samples)*v.SlotSize) * v.Interval
	lines = append(lines, StyleHelp.Render(fmt.Sprintf("      %d samples, %d ticks/slot, %.0fs shown", len(samples), v.SlotSize, span)))

	summary := "no valid readings yet"
	if v.Extrema.Initialized {
		summary = fmt.Sprintf("min %.0f  max %.0f dBm", v.Extrema.Min, v.Extrema.Max)
	}
	if v.Dist.Count > 0 {
		summary += fmt.Sprintf("   p50 %.0f  p90 %.0f  mean %.1f dBm  (%d readings)",
			v.Dist.P50, v.Dist.P90, v.Dist.Mean, v.Dist.Count)
	}
	lines = append(lines, StyleExtrema.Render("      "+summary))

	return RenderPanel("SIGNAL HISTORY", lines, width, height, true)
}
