package scan

import (
	"bytes"
	"cmp"
	"slices"

	"wlan-meter.klederson.com/internal/config"
)

// Sort orders entries in place. The sort is stable, so entries that compare
// equal keep their relative order and sorting a sorted list is a no-op.
//
// SortByOpenSignal ignores ascending: open networks always come first, each
// group strongest first.
func Sort(entries []Entry, order config.SortOrder, ascending bool) {
	slices.SortStableFunc(entries, Comparator(order, ascending))
}

// Comparator returns the three-way comparison used by Sort.
func Comparator(order config.SortOrder, ascending bool) func(a, b Entry) int {
	if order == config.SortByOpenSignal {
		return func(a, b Entry) int {
			if c := cmpOpen(&a, &b); c != 0 {
				return c
			}
			return -cmpSignal(&a, &b)
		}
	}

	base := baseComparator(order)
	if ascending {
		return func(a, b Entry) int { return base(&a, &b) }
	}
	return func(a, b Entry) int { return -base(&a, &b) }
}

func baseComparator(order config.SortOrder) func(a, b *Entry) int {
	switch order {
	case config.SortByChannel:
		return func(a, b *Entry) int {
			if c := cmpFreq(a, b); c != 0 {
				return c
			}
			return cmpESSIDComposite(a, b)
		}
	case config.SortByMAC:
		return cmpMAC
	case config.SortByESSID:
		return cmpESSIDComposite
	case config.SortByOpen:
		return func(a, b *Entry) int {
			if c := cmpOpen(a, b); c != 0 {
				return c
			}
			return cmpSignal(a, b)
		}
	case config.SortByChannelSignal:
		return func(a, b *Entry) int {
			if c := cmpFreq(a, b); c != 0 {
				return c
			}
			return cmpSignal(a, b)
		}
	default:
		return cmpSignal
	}
}

func cmpFreq(a, b *Entry) int {
	return cmp.Compare(a.Frequency, b.Frequency)
}

// cmpSignal compares absolute dBm when either side has it and falls back to
// link quality otherwise.
func cmpSignal(a, b *Entry) int {
	if a.HasDBM() || b.HasDBM() {
		return cmp.Compare(a.SignalDBM, b.SignalDBM)
	}
	return cmp.Compare(a.Quality, b.Quality)
}

// cmpOpen places open networks before encrypted ones.
func cmpOpen(a, b *Entry) int {
	switch {
	case a.HasKey == b.HasKey:
		return 0
	case !a.HasKey:
		return -1
	default:
		return 1
	}
}

func cmpMAC(a, b *Entry) int {
	return bytes.Compare(a.MAC, b.MAC)
}

func cmpESSID(a, b *Entry) int {
	x, y := a.ESSID, b.ESSID
	if len(x) > maxESSID {
		x = x[:maxESSID]
	}
	if len(y) > maxESSID {
		y = y[:maxESSID]
	}
	return cmp.Compare(x, y)
}

func cmpESSIDComposite(a, b *Entry) int {
	if c := cmpESSID(a, b); c != 0 {
		return c
	}
	if c := cmpFreq(a, b); c != 0 {
		return c
	}
	return cmpSignal(a, b)
}
