package scan

import (
	"net"
	"reflect"
	"testing"

	"wlan-meter.klederson.com/internal/config"
)

func entry(id byte, essid string, freq int, sig float64, key bool) Entry {
	return Entry{
		MAC:       net.HardwareAddr{0, 0, 0, 0, 0, id},
		ESSID:     essid,
		Frequency: freq,
		SignalDBM: sig,
		HasKey:    key,
	}
}

func ids(entries []Entry) []byte {
	out := make([]byte, len(entries))
	for i, e := range entries {
		out[i] = e.MAC[5]
	}
	return out
}

func sampleEntries() []Entry {
	return []Entry{
		entry(1, "bravo", 2437, -70, true),
		entry(2, "alpha", 5180, -50, false),
		entry(3, "charlie", 2412, -60, true),
		entry(4, "alpha", 2412, -80, false),
		entry(5, "delta", 2437, -60, true),
	}
}

func TestSortOrders(t *testing.T) {
	tests := []struct {
		order     config.SortOrder
		ascending bool
		want      []byte
	}{
		{config.SortBySignal, false, []byte{2, 3, 5, 1, 4}},
		{config.SortBySignal, true, []byte{4, 1, 3, 5, 2}},
		{config.SortByMAC, true, []byte{1, 2, 3, 4, 5}},
		{config.SortByMAC, false, []byte{5, 4, 3, 2, 1}},
		{config.SortByESSID, true, []byte{4, 2, 1, 3, 5}},
		{config.SortByChannel, true, []byte{4, 3, 1, 5, 2}},
		{config.SortByChannelSignal, true, []byte{4, 3, 1, 5, 2}},
		{config.SortByChannelSignal, false, []byte{2, 5, 1, 3, 4}},
		{config.SortByOpen, true, []byte{4, 2, 1, 3, 5}},
		{config.SortByOpenSignal, true, []byte{2, 4, 3, 5, 1}},
		{config.SortByOpenSignal, false, []byte{2, 4, 3, 5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			e := sampleEntries()
			Sort(e, tt.order, tt.ascending)
			if got := ids(e); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("asc=%v: got %v, want %v", tt.ascending, got, tt.want)
			}
		})
	}
}

func TestSortIdempotent(t *testing.T) {
	for o := config.SortByChannel; o <= config.SortByOpenSignal; o++ {
		for _, asc := range []bool{true, false} {
			e := sampleEntries()
			Sort(e, o, asc)
			first := ids(e)
			Sort(e, o, asc)
			if got := ids(e); !reflect.DeepEqual(got, first) {
				t.Errorf("%s asc=%v: resort changed order %v -> %v", o, asc, first, got)
			}
		}
	}
}

func TestSortStable(t *testing.T) {
	e := []Entry{
		entry(1, "x", 2412, -60, true),
		entry(2, "y", 2437, -60, true),
		entry(3, "z", 5180, -60, true),
	}
	Sort(e, config.SortBySignal, false)
	if got := ids(e); !reflect.DeepEqual(got, []byte{1, 2, 3}) {
		t.Errorf("equal signals reordered: %v", got)
	}
}

func TestSortQualityFallback(t *testing.T) {
	e := []Entry{
		{MAC: net.HardwareAddr{0, 0, 0, 0, 0, 1}, Quality: 30},
		{MAC: net.HardwareAddr{0, 0, 0, 0, 0, 2}, Quality: 90},
	}
	Sort(e, config.SortBySignal, false)
	if got := ids(e); !reflect.DeepEqual(got, []byte{2, 1}) {
		t.Errorf("quality sort = %v, want [2 1]", got)
	}
}
