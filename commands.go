package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/logging"
	"wlan-meter.klederson.com/internal/scan"
	"wlan-meter.klederson.com/internal/ui"
	"wlan-meter.klederson.com/internal/wireless"
)

const (
	scanTimeout  = 30 * time.Second
	scanAttempts = 5
)

func newInterfacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List wireless interfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ifaces []wireless.Interface
			if flagDemo {
				ifaces = []wireless.Interface{wireless.NewMockSource(1).Interface()}
			} else {
				var err error
				if ifaces, err = wireless.Interfaces(); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %5s  %-17s  %-5s  %s\n", "NAME", "INDEX", "MAC", "PHY", "TYPE")
			for _, ifc := range ifaces {
				fmt.Fprintf(out, "%-12s %5d  %-17s  phy%-2d  %s\n", ifc.Name, ifc.Index, ifc.MAC, ifc.PHY, ifc.Type)
			}
			return nil
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one scan and print the sorted results",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	log, err := setupLogging()
	if err != nil {
		return err
	}
	defer logging.Close()

	src, _, _, err := openWireless(cfg)
	if err != nil {
		printOpenHelp(err)
		return err
	}
	defer src.Close()

	result := scan.NewResult(cfg.SortOrder, cfg.SortAscending)
	agg := scan.NewAggregator(src, config.NewStore(cfg), result, log)
	defer agg.Stop()

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	for attempt := 0; attempt < scanAttempts; attempt++ {
		retrigger, err := agg.Cycle(ctx, cfg)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return fmt.Errorf("scan %s: %w", src.Interface().Name, ctx.Err())
		}
		if retrigger {
			continue
		}
		msg := result.View().Message
		if msg != scan.MsgNotReady && msg != scan.MsgBringingUp {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
		}
	}

	v := result.View()
	if len(v.Entries) == 0 && v.Message != "" && v.Message != scan.MsgNoResult {
		return fmt.Errorf("scan %s: %s", src.Interface().Name, v.Message)
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		if err != nil {
			width = 120
		}
		printScanTable(out, v, width)
	} else {
		printScanPlain(out, v)
	}
	return nil
}

// printScanPlain writes fixed-width rows for pipes and files.
func printScanPlain(w io.Writer, v scan.View) {
	fmt.Fprintln(w, ui.ScanHeader())
	for i := range v.Entries {
		fmt.Fprintln(w, strings.TrimRight(ui.ScanRow(&v.Entries[i]), " "))
	}
	printScanSummary(w, v)
}

// printScanTable writes a styled table for terminals.
func printScanTable(w io.Writer, v scan.View, width int) {
	rows := make([][]string, 0, len(v.Entries))
	for i := range v.Entries {
		e := &v.Entries[i]
		essid := e.ESSID
		if e.Hidden() {
			essid = "<hidden>"
		}
		signal := fmt.Sprintf("%.0f dBm", e.SignalDBM)
		if !e.HasDBM() {
			signal = fmt.Sprintf("%d/100", e.Quality)
		}
		enc := "WPA"
		if !e.HasKey {
			enc = "open"
		}
		rows = append(rows, []string{essid, e.MAC.String(), fmt.Sprint(e.Channel), signal, enc, e.CapabilityString(), e.Vendor})
	}

	headerStyle := ui.StyleValue.Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorBorderNorm)).
		Headers("ESSID", "BSSID", "CH", "SIGNAL", "ENC", "CAPABILITIES", "VENDOR").
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(v.Entries) && col == 3 {
				return cellStyle.Foreground(ui.SignalColor(v.Entries[row].SignalDBM))
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
	printScanSummary(w, v)
}

func printScanSummary(w io.Writer, v scan.View) {
	c := v.Counts
	fmt.Fprintf(w, "\n%d networks, %d open, %d hidden (2.4GHz: %d, 5GHz: %d)\n",
		c.Total, c.Open, c.Hidden, c.TwoGHz, c.FiveGHz)
	fmt.Fprintf(w, "Top channels: %s\n", ui.ChannelSummary(v.ChannelStats))
	fmt.Fprintf(w, "Sorted by %s\n", ui.SortLabel(&v))
}
