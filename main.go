package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"wlan-meter.klederson.com/internal/app"
	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/logging"
	"wlan-meter.klederson.com/internal/wireless"
)

var (
	flagInterface    string
	flagDemo         bool
	flagInterval     time.Duration
	flagSlot         int
	flagScanInterval time.Duration
	flagSort         string
	flagDesc         bool
	flagBand         string
	flagLog          string
	flagLogLevel     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wlan-meter",
		Short: "WLAN Meter - Terminal wireless link and spectrum monitor",
		Long: `WLAN Meter shows live link statistics for a wireless interface, a graph
of its signal level history and a sorted list of nearby access points.

Scanning requires sudo or the CAP_NET_ADMIN capability.
Use --demo flag for demonstration mode without wireless hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagInterface, "interface", "i", "", "Wireless interface to monitor (default: first found)")
	pf.BoolVar(&flagDemo, "demo", false, "Run in demo mode with a simulated interface (no hardware required)")
	pf.StringVar(&flagSort, "sort", config.SortBySignal.String(), "Scan sort order: channel, signal, mac, essid, open, chan/sig, open/sig")
	pf.BoolVar(&flagDesc, "desc", true, "Sort scan results in descending order")
	pf.StringVar(&flagBand, "band", config.BandAll.String(), "Show only networks in band: all, 2.4, 5")
	pf.StringVar(&flagLog, "log", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.Flags().DurationVar(&flagInterval, "interval", config.DefaultSampleInterval, "Link statistics sampling interval")
	rootCmd.Flags().IntVar(&flagSlot, "slot", config.DefaultSlot, "Samples averaged into one history point")
	rootCmd.Flags().DurationVar(&flagScanInterval, "scan-interval", config.DefaultScanInterval, "Pause between scans")

	rootCmd.AddCommand(newInterfacesCmd(), newScanCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// buildConfig turns the command line into a normalized Config.
func buildConfig() (config.Config, error) {
	cfg := config.Default()
	cfg.Interface = flagInterface
	cfg.Demo = flagDemo
	cfg.SampleInterval = flagInterval
	cfg.SlotSize = flagSlot
	cfg.ScanInterval = flagScanInterval
	cfg.SortAscending = !flagDesc

	order, err := config.ParseSortOrder(flagSort)
	if err != nil {
		return cfg, err
	}
	cfg.SortOrder = order

	band, err := config.ParseBand(flagBand)
	if err != nil {
		return cfg, err
	}
	cfg.Band = band

	return cfg.Normalize(), nil
}

func setupLogging() (*slog.Logger, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return logging.Setup(flagLog, level)
}

// openWireless opens the configured interface, or a simulated one in demo
// mode. The returned opener is nil when switching interfaces is impossible.
func openWireless(cfg config.Config) (wireless.Source, []wireless.Interface, app.Opener, error) {
	if cfg.Demo {
		src := wireless.NewMockSource(config.DemoAccessPoints)
		return src, []wireless.Interface{src.Interface()}, nil, nil
	}

	ifaces, err := wireless.Interfaces()
	if err != nil {
		return nil, nil, nil, err
	}
	open := func(name string) (wireless.Source, error) {
		s, err := wireless.Open(name)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	src, err := open(cfg.Interface)
	if err != nil {
		return nil, nil, nil, err
	}
	return src, ifaces, open, nil
}

func printOpenHelp(err error) {
	fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		fmt.Fprintln(os.Stderr, "Wireless scanning requires elevated permissions.")
	}
	fmt.Fprintln(os.Stderr, "Try one of:")
	fmt.Fprintln(os.Stderr, "  sudo ./wlan-meter")
	fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./wlan-meter")
	fmt.Fprintln(os.Stderr, "  ./wlan-meter interfaces   (list wireless interfaces)")
	fmt.Fprintln(os.Stderr, "  ./wlan-meter --demo       (demo mode, no hardware needed)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	log, err := setupLogging()
	if err != nil {
		return err
	}
	defer logging.Close()

	src, ifaces, open, err := openWireless(cfg)
	if err != nil {
		printOpenHelp(err)
		return err
	}
	cfg.Interface = src.Interface().Name
	log.Info("starting", "iface", cfg.Interface, "demo", cfg.Demo)

	model := app.New(config.NewStore(cfg), src, ifaces, open, log)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	model.Start(p)

	final, runErr := p.Run()
	if err := model.Close(); err != nil {
		log.Warn("close source", "err", err)
	}
	if errors.Is(runErr, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
		runErr = nil
	}
	if runErr != nil {
		return runErr
	}
	if fm, ok := final.(app.AppModel); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
