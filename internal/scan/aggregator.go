package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/wireless"
)

// ErrBringUp is reported when a downed interface cannot be brought back up.
var ErrBringUp = errors.New("cannot bring interface up")

// Aggregator runs periodic scans on its own goroutine and keeps a Result
// current. Fatal conditions stop the loop and are passed to the callback
// given to Start.
type Aggregator struct {
	src    wireless.ScanSource
	cfg    *config.Store
	result *Result
	log    *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	restore bool // interface was brought up by us and goes down on Stop
}

// NewAggregator creates a stopped aggregator writing into result.
func NewAggregator(src wireless.ScanSource, cfg *config.Store, result *Result, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{
		src:    src,
		cfg:    cfg,
		result: result,
		log:    log.With("component", "scan"),
	}
}

// Result returns the result the aggregator writes to.
func (a *Aggregator) Result() *Result {
	return a.result
}

// Start launches the scan loop. onFatal is called at most once, from the
// scan goroutine, when scanning cannot continue.
func (a *Aggregator) Start(onFatal func(error)) {
	a.Stop()

	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})

	a.log.Debug("scan loop started")
	go a.loop(ctx, onFatal, a.done)
}

// Stop cancels the scan loop, waits for it to exit and restores the
// interface state if a cycle changed it. It is safe to call on a stopped
// aggregator.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		a.log.Debug("scan loop stopped")
	}

	if a.restore {
		a.restore = false
		if err := a.src.SetInterfaceDown(); err != nil {
			a.log.Warn("restore interface state failed", "err", err)
		} else {
			a.log.Info("interface restored to down")
		}
	}
}

func (a *Aggregator) loop(ctx context.Context, onFatal func(error), done chan struct{}) {
	defer close(done)
	for {
		cfg := a.cfg.Load()
		retrigger, err := a.Cycle(ctx, cfg)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			a.log.Error("scan stopped", "err", err)
			if onFatal != nil {
				onFatal(err)
			}
			return
		}
		if retrigger {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.ScanInterval):
		}
	}
}

// Cycle runs one trigger, wait and merge round. It reports whether the scan
// should be retriggered immediately. A non-nil error is fatal.
func (a *Aggregator) Cycle(ctx context.Context, cfg config.Config) (retrigger bool, err error) {
	trigErr := a.src.TriggerScan(ctx)
	a.result.Clear()
	if ctx.Err() != nil {
		return false, nil
	}

	switch class := Classify(trigErr); class {
	case ClassOK, ClassBusy:
		// A busy device is already scanning; its results are as good as ours.
		return a.collect(ctx, cfg)

	case ClassPermissionDenied:
		if a.src.HasAdminCapability() {
			a.result.SetMessage("Scan permission denied by the driver")
		} else {
			a.result.SetMessage("No permission to scan: CAP_NET_ADMIN required (try sudo)")
		}
		a.log.Debug("scan trigger denied", "err", trigErr)

	case ClassRetryable:
		a.result.SetMessage(MsgNotReady)
		a.log.Debug("scan trigger retry", "err", trigErr)

	case ClassInterfaceDown:
		if err := a.bringUp(); err != nil {
			return false, err
		}

	default:
		a.result.SetMessage(fmt.Sprintf("Scan failed: %v", trigErr))
		a.log.Warn("scan trigger failed", "err", trigErr, "class", class.String())
	}
	return false, nil
}

func (a *Aggregator) collect(ctx context.Context, cfg config.Config) (bool, error) {
	ev, err := a.src.WaitForScanEvent(ctx)
	if err != nil {
		if ctx.Err() == nil {
			a.result.SetMessage(fmt.Sprintf("Scan wait failed: %v", err))
			a.log.Warn("wait for scan event failed", "err", err)
		}
		return false, nil
	}
	if ev == wireless.ScanAborted {
		a.result.SetMessage(MsgWaiting)
		a.log.Debug("scan aborted, retriggering")
		return true, nil
	}

	records, err := a.src.FetchScanDump(ctx)
	if err != nil {
		if ctx.Err() == nil {
			a.result.SetMessage(fmt.Sprintf("Scan dump failed: %v", err))
			a.log.Warn("fetch scan dump failed", "err", err)
		}
		return false, nil
	}
	if err := a.result.Merge(records, cfg); err != nil {
		return false, err
	}
	a.log.Debug("scan merged", "records", len(records))
	return false, nil
}

func (a *Aggregator) bringUp() error {
	if up, err := a.src.IsInterfaceUp(); err == nil && up {
		a.result.SetMessage(MsgNotReady)
		return nil
	}

	a.result.SetMessage(MsgBringingUp)
	if err := a.src.SetInterfaceUp(); err != nil {
		if !a.src.HasAdminCapability() {
			return fmt.Errorf("%w: CAP_NET_ADMIN required: %w", ErrBringUp, err)
		}
		return fmt.Errorf("%w: %w", ErrBringUp, err)
	}
	a.restore = true
	a.log.Info("interface brought up for scanning")
	return nil
}
