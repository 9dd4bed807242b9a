package scan

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/wireless"
)

// ErrUnsupportedBand is returned when a record reports a frequency above
// every band the display can classify.
var ErrUnsupportedBand = errors.New("unsupported frequency band")

// Messages shown in place of the result list.
const (
	MsgWaiting    = "Waiting for scan data..."
	MsgNotReady   = "Device not ready, retrying..."
	MsgBringingUp = "Interface down, bringing it up..."
	MsgNoResult   = "No networks found"
)

// maxFrequency is the first frequency (MHz) outside the supported bands.
const maxFrequency = 45000

// Counts summarizes a scan.
type Counts struct {
	Total   int
	Open    int
	Hidden  int
	TwoGHz  int
	FiveGHz int
}

// ChannelCount is one bucket of the channel occupancy histogram.
type ChannelCount struct {
	Channel int
	Count   int
}

// View is an immutable copy of a Result for rendering.
type View struct {
	Entries      []Entry
	Order        config.SortOrder
	Ascending    bool
	Counts       Counts
	ChannelStats []ChannelCount
	Message      string
	Updated      time.Time
}

// Result holds the most recent scan. The aggregator writes it and the
// renderer reads it, both under mu.
type Result struct {
	mu        sync.Mutex
	entries   []Entry
	order     config.SortOrder
	ascending bool
	counts    Counts
	chanStats []ChannelCount
	message   string
	updated   time.Time
}

// NewResult creates an empty result waiting for the first scan.
func NewResult(order config.SortOrder, ascending bool) *Result {
	return &Result{
		order:     order,
		ascending: ascending,
		message:   MsgWaiting,
	}
}

// View returns a copy of the current state.
func (r *Result) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return View{
		Entries:      slices.Clone(r.entries),
		Order:        r.order,
		Ascending:    r.ascending,
		Counts:       r.counts,
		ChannelStats: slices.Clone(r.chanStats),
		Message:      r.message,
		Updated:      r.updated,
	}
}

// SetMessage replaces the status message.
func (r *Result) SetMessage(msg string) {
	r.mu.Lock()
	r.message = msg
	r.mu.Unlock()
}

// Clear drops all entries and statistics.
func (r *Result) Clear() {
	r.mu.Lock()
	r.clear()
	r.mu.Unlock()
}

func (r *Result) clear() {
	r.entries = nil
	r.counts = Counts{}
	r.chanStats = nil
}

// Resort reorders the current entries and recomputes the channel summary.
func (r *Result) Resort(order config.SortOrder, ascending bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = order
	r.ascending = ascending
	Sort(r.entries, order, ascending)
	r.chanStats = channelStats(r.entries, order, ascending)
}

// Merge replaces the contents with records, applying the band filter from
// cfg. Entries are sorted by the order last set with NewResult or Resort. A
// record beyond the supported bands aborts the merge with ErrUnsupportedBand
// and leaves the result empty.
func (r *Result) Merge(records []wireless.BSS, cfg config.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.merge(records, cfg)
}

func (r *Result) merge(records []wireless.BSS, cfg config.Config) error {
	r.clear()

	for _, rec := range records {
		if len(rec.BSSID) == 0 {
			continue
		}
		if rec.Frequency >= maxFrequency {
			r.clear()
			return fmt.Errorf("%w: %d MHz from %s", ErrUnsupportedBand, rec.Frequency, rec.BSSID)
		}
		if !inBand(rec.Frequency, cfg.Band) {
			continue
		}

		e := newEntry(rec)
		r.entries = append(r.entries, e)
		r.count(&e)
	}

	Sort(r.entries, r.order, r.ascending)
	r.chanStats = channelStats(r.entries, r.order, r.ascending)
	r.updated = time.Now()
	if len(r.entries) == 0 {
		r.message = MsgNoResult
	} else {
		r.message = ""
	}
	return nil
}

func (r *Result) count(e *Entry) {
	r.counts.Total++
	if !e.HasKey {
		r.counts.Open++
	}
	if e.Hidden() {
		r.counts.Hidden++
	}
	switch {
	case e.Frequency >= 5000:
		r.counts.FiveGHz++
	case e.Frequency >= 2000:
		r.counts.TwoGHz++
	}
}

func inBand(freq int, band config.Band) bool {
	switch band {
	case config.Band2GHz:
		return freq >= 2000 && freq < 5000
	case config.Band5GHz:
		return freq >= 5000
	default:
		return true
	}
}

// channelStats returns the busiest channels, most crowded first. Sorting by
// channel ascending flips the order to least crowded first. Ties keep the
// order in which channels first appear in entries.
func channelStats(entries []Entry, order config.SortOrder, ascending bool) []ChannelCount {
	var stats []ChannelCount
	for i := range entries {
		ch := entries[i].Channel
		if ch == 0 {
			continue
		}
		idx := slices.IndexFunc(stats, func(c ChannelCount) bool { return c.Channel == ch })
		if idx < 0 {
			stats = append(stats, ChannelCount{Channel: ch})
			idx = len(stats) - 1
		}
		stats[idx].Count++
	}

	least := order == config.SortByChannel && ascending
	slices.SortStableFunc(stats, func(a, b ChannelCount) int {
		if least {
			return a.Count - b.Count
		}
		return b.Count - a.Count
	})
	if len(stats) > config.MaxChanStats {
		stats = stats[:config.MaxChanStats]
	}
	return stats
}
