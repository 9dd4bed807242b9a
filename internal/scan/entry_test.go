package scan

import (
	"net"
	"testing"

	"wlan-meter.klederson.com/internal/wireless"
)

func TestEscapeESSID(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("HomeNet"), "HomeNet"},
		{"interior space", []byte("Coffee Shop"), "Coffee Shop"},
		{"trailing nul", []byte{0x41, 0x20, 0x00}, `A \x00`},
		{"leading space", []byte(" A"), `\x20A`},
		{"trailing space", []byte("A "), `A\x20`},
		{"backslash", []byte(`a\b`), `a\x5cb`},
		{"high byte", []byte{0x41, 0xff}, `A\xff`},
		{"all zero", []byte{0, 0, 0, 0}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeESSID(tt.in); got != tt.want {
				t.Errorf("EscapeESSID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewEntry(t *testing.T) {
	mac := net.HardwareAddr{0x00, 0x17, 0xf2, 0x01, 0x02, 0x03}
	ies := []byte{0, 4, 'T', 'e', 's', 't'}
	ies = append(ies, 11, 5, 0x2c, 0x01, 255, 0, 0) // 300 stations, full utilization
	ies = append(ies, 45, 2, 0, 0)
	ies = append(ies, 127, 3, 0, 0, 0x08)

	e := newEntry(wireless.BSS{
		BSSID:      mac,
		Frequency:  2437,
		SignalMBM:  -5550,
		Capability: CapESS | CapPrivacy,
		IEs:        ies,
	})

	if e.ESSID != "Test" {
		t.Errorf("ESSID = %q", e.ESSID)
	}
	if e.Channel != 6 {
		t.Errorf("Channel = %d, want 6", e.Channel)
	}
	if !e.HasDBM() || e.SignalDBM != -55.5 {
		t.Errorf("SignalDBM = %v, want -55.5", e.SignalDBM)
	}
	if !e.HasKey {
		t.Error("privacy bit should mark the entry encrypted")
	}
	if e.Stations != 300 || e.ChanUtil != 100 {
		t.Errorf("BSS load = %d stations %.1f%%", e.Stations, e.ChanUtil)
	}
	if !e.HT || !e.SupportsBSSTransition() {
		t.Errorf("HT=%v BSS-TM=%v, want both set", e.HT, e.SupportsBSSTransition())
	}
	if e.Vendor != "Apple" {
		t.Errorf("Vendor = %q, want Apple", e.Vendor)
	}
	if got, want := e.CapabilityString(), "ESS Privacy HT BSS-TM"; got != want {
		t.Errorf("CapabilityString() = %q, want %q", got, want)
	}
}

func TestNewEntryQualityOnly(t *testing.T) {
	e := newEntry(wireless.BSS{
		BSSID:      net.HardwareAddr{1, 2, 3, 4, 5, 6},
		Frequency:  5180,
		SignalQual: 70,
	})
	if e.HasDBM() || e.Quality != 70 {
		t.Errorf("signal = %v dBm quality %d, want quality 70 only", e.SignalDBM, e.Quality)
	}
	if !e.Hidden() {
		t.Error("entry without SSID element should be hidden")
	}
	if e.Stations != -1 || e.ChanUtil != -1 {
		t.Error("missing BSS load should be reported as unknown")
	}
}

func TestParseIEsTruncated(t *testing.T) {
	var e Entry
	e.parseIEs([]byte{0, 3, 'a', 'b', 'c', 45, 10, 1})
	if e.ESSID != "abc" {
		t.Errorf("ESSID = %q, want abc", e.ESSID)
	}
	if e.HT {
		t.Error("truncated element must be ignored")
	}
}
