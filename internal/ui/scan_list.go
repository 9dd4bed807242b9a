package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"wlan-meter.klederson.com/internal/scan"
)

// Column widths of the scan table.
const (
	colESSID  = 24
	colMAC    = 17
	colChan   = 4
	colSignal = 8
	colSta    = 4
	colUtil   = 5
	colEnc    = 4
)

// ScanHeader returns the column header line of the scan table.
func ScanHeader() string {
	return fmt.Sprintf("%-*s %-*s %*s %*s %*s %*s %-*s %s",
		colESSID, "ESSID", colMAC, "BSSID", colChan, "CH", colSignal, "SIGNAL",
		colSta, "STA", colUtil, "UTIL", colEnc, "ENC", "VENDOR")
}

// ScanRow formats one entry as a plain table row.
func ScanRow(e *scan.Entry) string {
	essid := e.ESSID
	if e.Hidden() {
		essid = "<hidden>"
	}
	if len(essid) > colESSID {
		essid = essid[:colESSID-1] + "~"
	}

	signal := fmt.Sprintf("%.0fdBm", e.SignalDBM)
	if !e.HasDBM() {
		signal = fmt.Sprintf("%d/100", e.Quality)
	}
	sta, util := "-", "-"
	if e.Stations >= 0 {
		sta = fmt.Sprint(e.Stations)
		util = fmt.Sprintf("%.0f%%", e.ChanUtil)
	}
	enc := "WPA"
	if !e.HasKey {
		enc = "open"
	}

	return fmt.Sprintf("%-*s %-*s %*d %*s %*s %*s %-*s %s",
		colESSID, essid, colMAC, e.MAC.String(), colChan, e.Channel, colSignal, signal,
		colSta, sta, colUtil, util, colEnc, enc, e.Vendor)
}

// SortLabel describes the active order and direction.
func SortLabel(v *scan.View) string {
	dir := "desc"
	if v.Ascending {
		dir = "asc"
	}
	return fmt.Sprintf("%s %s", v.Order, dir)
}

// ChannelSummary formats the channel occupancy histogram.
func ChannelSummary(stats []scan.ChannelCount) string {
	if len(stats) == 0 {
		return "n/a"
	}
	parts := make([]string, len(stats))
	for i, c := range stats {
		parts[i] = fmt.Sprintf("ch%d: %d", c.Channel, c.Count)
	}
	return strings.Join(parts, ", ")
}

// RenderScanList renders the scan table with a fixed header and summary and
// a scrollable body starting at scroll.
func RenderScanList(v scan.View, width, height, scroll int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	innerH := height - 2

	header := []string{
		StyleLabel.Render(truncRaw(ScanHeader(), innerW)),
		separator(innerW),
	}
	c := v.Counts
	footer := []string{
		separator(innerW),
		StyleMenuLabel.Render(truncRaw(fmt.Sprintf(" %d networks  %d open  %d hidden  2.4GHz: %d  5GHz: %d",
			c.Total, c.Open, c.Hidden, c.TwoGHz, c.FiveGHz), innerW)),
		StyleMenuLabel.Render(truncRaw(fmt.Sprintf(" Top channels: %s   Sort: %s", ChannelSummary(v.ChannelStats), SortLabel(&v)), innerW)),
	}
	bodyH := innerH - 1 - len(header) - len(footer) // title line
	if bodyH < 1 {
		bodyH = 1
	}

	var body []string
	if len(v.Entries) == 0 {
		msg := v.Message
		if msg == "" {
			msg = scan.MsgWaiting
		}
		body = strings.Split(lipgloss.Place(innerW, bodyH, lipgloss.Center, lipgloss.Center, StyleMessage.Render(msg)), "\n")
	} else {
		if scroll > len(v.Entries)-1 {
			scroll = len(v.Entries) - 1
		}
		if scroll < 0 {
			scroll = 0
		}
		for i := scroll; i < len(v.Entries) && len(body) < bodyH; i++ {
			body = append(body, renderScanRow(&v.Entries[i], innerW))
		}
	}
	for len(body) < bodyH {
		body = append(body, "")
	}
	if len(body) > bodyH {
		body = body[:bodyH]
	}

	title := fmt.Sprintf("SCAN [%d]", len(v.Entries))
	if !v.Updated.IsZero() {
		if age := time.Since(v.Updated); age >= time.Second {
			title += fmt.Sprintf("  updated %s ago", formatDuration(age))
		} else {
			title += "  updated now"
		}
	}
	if v.Message != "" && len(v.Entries) > 0 {
		title += "  " + v.Message
	}

	lines := append(append(header, body...), footer...)
	return RenderPanel(title, lines, width, height, true)
}

func renderScanRow(e *scan.Entry, w int) string {
	raw := truncRaw(ScanRow(e), w)
	style := lipgloss.NewStyle().Foreground(SignalColor(e.SignalDBM))
	switch {
	case e.Associated:
		style = StyleAssociated
	case e.Hidden():
		style = StyleHidden
	case !e.HasKey:
		style = StyleOpen
	}
	return style.Render(raw)
}
