package app

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/history"
	"wlan-meter.klederson.com/internal/scan"
	"wlan-meter.klederson.com/internal/ui"
	"wlan-meter.klederson.com/internal/wireless"
)

// Opener opens a source for the named interface.
type Opener func(name string) (wireless.Source, error)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	cfg    *config.Store
	log    *slog.Logger
	open   Opener
	ifaces []wireless.Interface

	src     wireless.Source
	agg     *history.Aggregator
	sampler *history.Sampler
	result  *scan.Result
	scanner *scan.Aggregator
	program *tea.Program
}

// AppModel is the root Bubble Tea model for the dashboard.
type AppModel struct {
	width  int
	height int

	screen ui.Screen
	scroll int
	notice string
	err    error

	shared *shared

	// Cached snapshots
	link wireless.LinkStats
	view scan.View
}

// New creates the model. ifaces and open enable switching interfaces; open
// may be nil.
func New(cfg *config.Store, src wireless.Source, ifaces []wireless.Interface, open Opener, log *slog.Logger) AppModel {
	if log == nil {
		log = slog.Default()
	}
	c := cfg.Load()
	sh := &shared{
		cfg:    cfg,
		log:    log,
		open:   open,
		ifaces: ifaces,
		agg:    history.NewAggregator(history.NewSampleCache()),
		result: scan.NewResult(c.SortOrder, c.SortAscending),
	}
	sh.bind(src)

	m := AppModel{
		screen: ui.ScreenInfo,
		shared: sh,
	}
	m.view = sh.result.View()
	return m
}

func (s *shared) bind(src wireless.Source) {
	s.src = src
	s.sampler = history.NewSampler(src, s.cfg, s.agg, s.log)
	s.scanner = scan.NewAggregator(src, s.cfg, s.result, s.log)
}

// startFor runs the workers each screen needs. Scanning disturbs the link,
// so it only runs while the scan screen is shown.
func (s *shared) startFor(screen ui.Screen) {
	switch screen {
	case ui.ScreenScan:
		s.sampler.Start(history.ModeHistogramOnly)
		s.scanner.Start(s.onFatal)
	case ui.ScreenHistory:
		s.scanner.Stop()
		s.sampler.Start(history.ModeHistogramOnly)
	default:
		s.scanner.Stop()
		s.sampler.Start(history.ModeFull)
	}
}

func (s *shared) stop() {
	s.scanner.Stop()
	s.sampler.Stop()
}

// onFatal runs on the scan goroutine. Send blocks until the event loop takes
// the message, and the event loop may be waiting in Stop for that goroutine.
func (s *shared) onFatal(err error) {
	if s.program == nil {
		return
	}
	go s.program.Send(FatalMsg{Err: err})
}

// Start launches the background workers. Must be called before p.Run().
func (m *AppModel) Start(p *tea.Program) {
	m.shared.program = p
	m.shared.startFor(m.screen)
}

// Close stops the workers, restores the interface and releases the source.
func (m AppModel) Close() error {
	m.shared.stop()
	return m.shared.src.Close()
}

// Err returns the fatal error that ended the program, if any.
func (m AppModel) Err() error {
	return m.err
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if ls, ok := m.shared.sampler.TryConsume(); ok {
			m.link = ls
		}
		if m.screen == ui.ScreenScan {
			m.view = m.shared.result.View()
		}
		return m, tickCmd()

	case NoticeMsg:
		m.notice = msg.Text
		return m, nil

	case FatalMsg:
		m.err = msg.Err
		m.shared.log.Error("fatal", "err", msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	sh := m.shared

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "1", "i", "f1":
		m = m.setScreen(ui.ScreenInfo)
	case "2", "h", "f2":
		m = m.setScreen(ui.ScreenHistory)
	case "3", "s", "f3":
		m = m.setScreen(ui.ScreenScan)

	case "o", "O":
		c := sh.cfg.Update(func(c *config.Config) { c.SortOrder = c.SortOrder.Next() })
		sh.result.Resort(c.SortOrder, c.SortAscending)
		m.view = sh.result.View()
		m.notice = "sort: " + ui.SortLabel(&m.view)

	case "r", "R":
		c := sh.cfg.Update(func(c *config.Config) { c.SortAscending = !c.SortAscending })
		sh.result.Resort(c.SortOrder, c.SortAscending)
		m.view = sh.result.View()
		m.notice = "sort: " + ui.SortLabel(&m.view)

	case "b", "B":
		c := sh.cfg.Update(func(c *config.Config) { c.Band = c.Band.Next() })
		m.notice = fmt.Sprintf("band filter: %s (next scan)", c.Band)

	case "n", "N":
		m = m.nextInterface()

	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < len(m.view.Entries)-1 {
			m.scroll++
		}
	case "home":
		m.scroll = 0
	case "end":
		if len(m.view.Entries) > 0 {
			m.scroll = len(m.view.Entries) - 1
		}
	}

	return m, nil
}

func (m AppModel) setScreen(s ui.Screen) AppModel {
	if s == m.screen {
		return m
	}
	m.screen = s
	m.scroll = 0
	m.shared.startFor(s)
	m.view = m.shared.result.View()
	return m
}

// nextInterface moves sampling and scanning to the next wireless interface,
// starting its history from scratch.
func (m AppModel) nextInterface() AppModel {
	sh := m.shared
	if sh.open == nil || len(sh.ifaces) < 2 {
		m.notice = "no other wireless interface"
		return m
	}

	cur := sh.src.Interface().Name
	idx := 0
	for i, ifc := range sh.ifaces {
		if ifc.Name == cur {
			idx = i
		}
	}
	next := sh.ifaces[(idx+1)%len(sh.ifaces)]

	src, err := sh.open(next.Name)
	if err != nil {
		sh.log.Warn("open interface failed", "iface", next.Name, "err", err)
		m.notice = fmt.Sprintf("cannot open %s: %v", next.Name, err)
		return m
	}

	sh.stop()
	if err := sh.src.Close(); err != nil {
		sh.log.Warn("close interface failed", "iface", cur, "err", err)
	}
	sh.agg.Reset()
	sh.result.Clear()
	sh.result.SetMessage(scan.MsgWaiting)
	sh.cfg.Update(func(c *config.Config) { c.Interface = next.Name })
	sh.bind(src)
	sh.startFor(m.screen)
	sh.log.Info("interface switched", "from", cur, "to", next.Name)

	m.link = wireless.LinkStats{}
	m.view = sh.result.View()
	m.scroll = 0
	m.notice = "switched to " + next.Name
	return m
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}
	sh := m.shared
	cfg := sh.cfg.Load()
	iface := sh.src.Interface()

	bodyH := m.height - 2
	if bodyH < 8 {
		bodyH = 8
	}

	var body, info, hints string
	switch m.screen {
	case ui.ScreenHistory:
		body = ui.RenderHistoryPanel(ui.HistoryView{
			Samples:  sh.agg.Cache().Recent(m.width),
			Extrema:  sh.agg.Extrema(),
			Dist:     sh.agg.Distribution(),
			SlotSize: cfg.SlotSize,
			Interval: cfg.SampleInterval.Seconds(),
		}, m.width, bodyH)
		info = fmt.Sprintf("sample %v  slot %d", cfg.SampleInterval, cfg.SlotSize)
		hints = "n:iface"

	case ui.ScreenScan:
		body = ui.RenderScanList(m.view, m.width, bodyH, m.scroll)
		info = fmt.Sprintf("sort %s  band %s  every %v", ui.SortLabel(&m.view), cfg.Band, cfg.ScanInterval)
		hints = "o:order r:dir b:band n:iface"

	default:
		body = ui.RenderInfoPanel(ui.InfoView{
			Iface:   iface,
			Stats:   m.link,
			Extrema: sh.agg.Extrema(),
			Dist:    sh.agg.Distribution(),
		}, m.width, bodyH)
		if m.link.SSID != "" {
			info = fmt.Sprintf("%s  ch %d  %s", m.link.SSID, m.link.Channel, wireless.BandLabel(m.link.Frequency))
		} else {
			info = "not associated"
		}
		hints = "n:iface"
	}
	if m.notice != "" {
		info = m.notice
	}

	up := m.link.Time.IsZero() || m.link.Up
	menuBar := ui.RenderMenuBar(m.width, iface.Name, m.screen, cfg.Demo)
	statusBar := ui.RenderStatusBar(m.width, up, info, hints)
	return ui.ComposeLayout(menuBar, body, statusBar)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
