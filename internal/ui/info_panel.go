package ui

import (
	"fmt"
	"strings"

	"wlan-meter.klederson.com/internal/history"
	"wlan-meter.klederson.com/internal/wireless"
)

// InfoView is everything the info screen shows.
type InfoView struct {
	Iface   wireless.Interface
	Stats   wireless.LinkStats
	Extrema history.Extrema
	Dist    history.DistributionStats
}

// RenderInfoPanel renders link state, level meters and counters.
func RenderInfoPanel(v InfoView, width, height int) string {
	innerW := width - 4
	if innerW < 30 {
		innerW = 30
	}
	ls := &v.Stats

	field := func(label, value string) string {
		return StyleLabel.Render(fmt.Sprintf("  %-12s", label)) + StyleValue.Render(value)
	}
	pair := func(l1, v1, l2, v2 string) string {
		left := fillLine(field(l1, v1), innerW/2)
		return left + field(l2, v2)
	}

	lines := []string{separator(innerW)}

	// Interface
	mac := "n/a"
	if len(v.Iface.MAC) > 0 {
		mac = v.Iface.MAC.String()
	}
	lines = append(lines,
		pair("Interface", v.Iface.Name, "MAC", mac),
		pair("Type", orNA(v.Iface.Type), "PHY", fmt.Sprintf("phy%d", v.Iface.PHY)),
	)
	if ls.RfkillHard || ls.RfkillSoft {
		lines = append(lines, StyleError.Render(fmt.Sprintf("  rfkill: hard=%v soft=%v", ls.RfkillHard, ls.RfkillSoft)))
	}
	lines = append(lines, "")

	// Association
	ssid := ls.SSID
	if ssid == "" {
		ssid = "not associated"
	}
	bssid := "n/a"
	if len(ls.BSSID) > 0 {
		bssid = ls.BSSID.String()
		if vendor := wireless.LookupVendor(ls.BSSID); vendor != "" {
			bssid += " (" + vendor + ")"
		}
	}
	freq := "n/a"
	if ls.Frequency > 0 {
		freq = fmt.Sprintf("%d MHz  ch %d  %s", ls.Frequency, ls.Channel, wireless.BandLabel(ls.Frequency))
	}
	lines = append(lines,
		field("ESSID", ssid),
		field("Access point", bssid),
		field("Frequency", freq),
		pair("Connected", formatDuration(ls.Connected), "Beacon", formatDuration(ls.BeaconInterval)),
		"",
	)

	// Levels
	reading := float64(ls.Reading())
	lines = append(lines,
		RenderLevelMeter("Signal", reading, innerW),
		RenderMeter("Noise", levelRatio(float64(ls.Noise)), formatDBM(float64(ls.Noise)), innerW, ColorNoise),
	)
	if snr := ls.SNR(); snr > 0 {
		lines = append(lines, RenderMeter("SNR", float64(snr)/60, fmt.Sprintf("%d dB", snr), innerW, ColorGreen))
	}
	if ls.LinkQuality > 0 {
		lines = append(lines, RenderMeter("Quality", ls.LinkQuality/70, fmt.Sprintf("%.0f/70", ls.LinkQuality), innerW, ColorGreen))
	}
	if busy := ls.SurveyBusyPercent(); busy > 0 {
		lines = append(lines, RenderMeter("Chan busy", busy/100, fmt.Sprintf("%.0f%%", busy), innerW, ColorWarning))
	}

	extrema := "n/a"
	if v.Extrema.Initialized {
		extrema = fmt.Sprintf("min %.0f  max %.0f dBm", v.Extrema.Min, v.Extrema.Max)
	}
	dist := "n/a"
	if v.Dist.Count > 0 {
		dist = fmt.Sprintf("p50 %.0f  p90 %.0f  mean %.1f dBm", v.Dist.P50, v.Dist.P90, v.Dist.Mean)
	}
	lines = append(lines, field("Extrema", extrema), field("Distribution", dist), "")

	// Counters
	lines = append(lines,
		pair("RX", fmt.Sprintf("%s (%d pkts)", formatBytes(ls.RxBytes), ls.RxPackets),
			"TX", fmt.Sprintf("%s (%d pkts)", formatBytes(ls.TxBytes), ls.TxPackets)),
		pair("RX rate", formatBitrate(ls.RxBitrate), "TX rate", formatBitrate(ls.TxBitrate)),
		pair("Retries", fmt.Sprint(ls.TxRetries), "Failed", fmt.Sprint(ls.TxFailed)),
		pair("Errors", fmt.Sprintf("rx %d tx %d", ls.RxErrors, ls.TxErrors),
			"Dropped", fmt.Sprintf("rx %d tx %d", ls.RxDropped, ls.TxDropped)),
		pair("Beacon loss", fmt.Sprint(ls.BeaconLoss), "Inactive", formatDuration(ls.Inactive)),
	)

	return RenderPanel("LINK INFO", lines, width, height, true)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "n/a"
	}
	return s
}
