package config

import (
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// History cache
	CacheSize     = 1024 // Number of slot-averaged samples kept for the graph
	MaxChanStats  = 3    // Channels shown in the scan occupancy summary
	MinSlotSize   = 1
	MaxSlotSize   = 64
	DefaultSlot   = 4
	MinSampleTick = 10 * time.Millisecond

	// Signal display range (dBm)
	SignalFloor = -100.0
	SignalCeil  = -10.0

	// Timers
	DefaultSampleInterval = 250 * time.Millisecond
	DefaultScanInterval   = 5 * time.Second
	TargetFPS             = 10 // Display refresh rate

	// Demo mode
	DemoAccessPoints = 14

	// App
	AppName    = "WLAN-METER"
	AppVersion = "1.0"
)

// SortOrder selects how scan results are ordered.
type SortOrder int

const (
	SortByChannel SortOrder = iota
	SortBySignal
	SortByMAC
	SortByESSID
	SortByOpen
	SortByChannelSignal
	SortByOpenSignal
	numSortOrders
)

func (o SortOrder) String() string {
	switch o {
	case SortByChannel:
		return "channel"
	case SortBySignal:
		return "signal"
	case SortByMAC:
		return "mac"
	case SortByESSID:
		return "essid"
	case SortByOpen:
		return "open"
	case SortByChannelSignal:
		return "chan/sig"
	case SortByOpenSignal:
		return "open/sig"
	default:
		return "unknown"
	}
}

// Next cycles to the following sort order.
func (o SortOrder) Next() SortOrder {
	return (o + 1) % numSortOrders
}

// ParseSortOrder maps a name as printed by String back to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	for o := SortOrder(0); o < numSortOrders; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// Band restricts scan results to a frequency band.
type Band int

const (
	BandAll Band = iota
	Band2GHz
	Band5GHz
	numBands
)

func (b Band) String() string {
	switch b {
	case Band2GHz:
		return "2.4"
	case Band5GHz:
		return "5"
	default:
		return "all"
	}
}

// Next cycles to the following band filter.
func (b Band) Next() Band {
	return (b + 1) % numBands
}

// ParseBand maps "all", "2.4" or "5" to a Band.
func ParseBand(s string) (Band, error) {
	for b := Band(0); b < numBands; b++ {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown band %q", s)
}

// Config is an immutable settings snapshot. Workers load it at the start of
// every tick; the UI replaces it through Store.Update.
type Config struct {
	Interface      string
	SampleInterval time.Duration
	SlotSize       int
	ScanInterval   time.Duration
	SortOrder      SortOrder
	SortAscending  bool
	Band           Band
	Demo           bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SampleInterval: DefaultSampleInterval,
		SlotSize:       DefaultSlot,
		ScanInterval:   DefaultScanInterval,
		SortOrder:      SortBySignal,
		SortAscending:  false,
		Band:           BandAll,
	}
}

// Normalize clamps out-of-range values to usable ones.
func (c Config) Normalize() Config {
	if c.SampleInterval < MinSampleTick {
		c.SampleInterval = DefaultSampleInterval
	}
	if c.SlotSize < MinSlotSize {
		c.SlotSize = MinSlotSize
	}
	if c.SlotSize > MaxSlotSize {
		c.SlotSize = MaxSlotSize
	}
	if c.ScanInterval <= 0 {
		c.ScanInterval = DefaultScanInterval
	}
	if c.SortOrder < 0 || c.SortOrder >= numSortOrders {
		c.SortOrder = SortBySignal
	}
	if c.Band < 0 || c.Band >= numBands {
		c.Band = BandAll
	}
	return c
}

// Store publishes the current Config to concurrent readers.
type Store struct {
	cur atomic.Pointer[Config]
}

// NewStore creates a store holding a normalized copy of c.
func NewStore(c Config) *Store {
	s := &Store{}
	s.Set(c)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() Config {
	return *s.cur.Load()
}

// Set replaces the snapshot.
func (s *Store) Set(c Config) {
	n := c.Normalize()
	s.cur.Store(&n)
}

// Update applies fn to a copy of the current snapshot and publishes the result.
func (s *Store) Update(fn func(*Config)) Config {
	for {
		old := s.cur.Load()
		n := *old
		fn(&n)
		n = n.Normalize()
		if s.cur.CompareAndSwap(old, &n) {
			return n
		}
	}
}
