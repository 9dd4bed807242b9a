package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/wireless"
)

// Mode selects whether polls are published to the display.
type Mode int

const (
	// ModeFull samples into the history cache and publishes every poll.
	ModeFull Mode = iota
	// ModeHistogramOnly samples into the history cache only.
	ModeHistogramOnly
)

func (m Mode) String() string {
	if m == ModeHistogramOnly {
		return "histogram"
	}
	return "full"
}

// Sampler polls link statistics on its own goroutine, independent of the
// render cadence, and hands finished polls to the display.
type Sampler struct {
	src     wireless.LinkSource
	cfg     *config.Store
	agg     *Aggregator
	handoff *Handoff[wireless.LinkStats]
	log     *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler creates a stopped sampler.
func NewSampler(src wireless.LinkSource, cfg *config.Store, agg *Aggregator, log *slog.Logger) *Sampler {
	if log == nil {
		log = slog.Default()
	}
	return &Sampler{
		src:     src,
		cfg:     cfg,
		agg:     agg,
		handoff: NewHandoff[wireless.LinkStats](),
		log:     log.With("component", "sampler"),
	}
}

// Start launches the polling goroutine. Starting a running sampler restarts
// it in the new mode.
func (s *Sampler) Start(mode Mode) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	s.log.Debug("sampler started", "mode", mode.String())
	go s.loop(ctx, mode, s.done)
}

// Stop cancels the goroutine and waits for it to exit. It is safe to call on
// a stopped sampler.
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Debug("sampler stopped")
}

// TryConsume returns the newest complete poll if one is ready. It never
// blocks the caller.
func (s *Sampler) TryConsume() (wireless.LinkStats, bool) {
	return s.handoff.TryConsume()
}

// Current returns the last consumed poll.
func (s *Sampler) Current() wireless.LinkStats {
	return s.handoff.Current()
}

func (s *Sampler) loop(ctx context.Context, mode Mode, done chan struct{}) {
	defer close(done)
	for {
		cfg := s.cfg.Load()
		s.tick(ctx, mode, cfg)

		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.SampleInterval):
		}
	}
}

func (s *Sampler) tick(ctx context.Context, mode Mode, cfg config.Config) {
	buf := s.handoff.Acquire()
	if buf == nil {
		return // display has not taken the last poll yet
	}
	if err := s.src.PollLinkStats(ctx, buf); err != nil {
		if ctx.Err() == nil {
			s.log.Debug("poll failed", "err", err)
		}
		return
	}
	s.agg.Update(buf.Reading(), cfg.SlotSize)

	if mode == ModeFull {
		s.handoff.Publish()
	}
}
