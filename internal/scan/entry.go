package scan

import (
	"fmt"
	"net"
	"strings"
	"time"

	"wlan-meter.klederson.com/internal/wireless"
)

// 802.11 capability information bits.
const (
	CapESS          = 1 << 0
	CapIBSS         = 1 << 1
	CapPrivacy      = 1 << 4
	CapShortPreamb  = 1 << 5
	CapSpectrumMgmt = 1 << 8
	CapQoS          = 1 << 9
	CapShortSlot    = 1 << 10
	CapRadioMeasure = 1 << 12
)

// Information element IDs understood by the parser.
const (
	ieSSID      = 0
	ieBSSLoad   = 11
	ieHTCap     = 45
	ieRMEnabled = 70
	ieMeshID    = 114
	ieExtCap    = 127
)

// maxESSID is the longest SSID 802.11 allows.
const maxESSID = 32

// Entry is one discovered access point or peer.
type Entry struct {
	MAC        net.HardwareAddr
	ESSID      string // escaped to printable form; empty when hidden
	Frequency  int    // MHz
	Channel    int
	SignalDBM  float64 // zero when the driver reports no dBm value
	Quality    uint8   // unitless 0..100, used when SignalDBM is zero
	Capability uint16
	HasKey     bool

	Stations int     // -1 without a BSS Load element
	ChanUtil float64 // percent, -1 without a BSS Load element

	Mesh   bool
	HT     bool
	RM     bool
	ExtCap []byte

	LastSeen   time.Duration
	Associated bool
	Vendor     string
}

// newEntry builds an Entry from a raw scan dump record.
func newEntry(r wireless.BSS) Entry {
	e := Entry{
		MAC:        r.BSSID,
		Frequency:  r.Frequency,
		Channel:    wireless.FreqToChannel(r.Frequency),
		Capability: r.Capability,
		HasKey:     r.Capability&CapPrivacy != 0,
		Stations:   -1,
		ChanUtil:   -1,
		RM:         r.Capability&CapRadioMeasure != 0,
		LastSeen:   r.SeenAgo,
		Associated: r.Associated,
		Vendor:     wireless.LookupVendor(r.BSSID),
	}
	if r.SignalMBM != 0 {
		e.SignalDBM = float64(r.SignalMBM) / 100
	} else {
		e.Quality = r.SignalQual
	}
	e.parseIEs(r.IEs)
	return e
}

// parseIEs extracts SSID, BSS load, extended capabilities and a few flags.
// Truncated trailing elements are ignored.
func (e *Entry) parseIEs(ies []byte) {
	for len(ies) >= 2 {
		id, l := ies[0], int(ies[1])
		if 2+l > len(ies) {
			return
		}
		data := ies[2 : 2+l]

		switch id {
		case ieSSID:
			if l <= maxESSID {
				e.ESSID = EscapeESSID(data)
			}
		case ieBSSLoad:
			if l >= 5 {
				e.Stations = int(data[0]) | int(data[1])<<8
				e.ChanUtil = float64(data[2]) * 100 / 255
			}
		case ieHTCap:
			e.HT = true
		case ieRMEnabled:
			e.RM = true
		case ieMeshID:
			e.Mesh = true
		case ieExtCap:
			e.ExtCap = append([]byte(nil), data...)
		}
		ies = ies[2+l:]
	}
}

// EscapeESSID renders raw SSID bytes printable. Printable bytes other than
// space and backslash pass through, spaces pass through unless leading or
// trailing, and everything else becomes \xNN. An all-zero SSID is hidden and
// renders empty.
func EscapeESSID(data []byte) string {
	allZero := true
	for _, b := range data {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return ""
	}

	var sb strings.Builder
	for i, b := range data {
		switch {
		case b > ' ' && b <= '~' && b != '\\':
			sb.WriteByte(b)
		case b == ' ' && i != 0 && i != len(data)-1:
			sb.WriteByte(' ')
		default:
			fmt.Fprintf(&sb, `\x%.2x`, b)
		}
	}
	return sb.String()
}

// Hidden reports whether the network does not broadcast its name.
func (e *Entry) Hidden() bool {
	return e.ESSID == ""
}

// HasDBM reports whether the signal is an absolute dBm value.
func (e *Entry) HasDBM() bool {
	return e.SignalDBM != 0
}

// SupportsBSSTransition reports the 802.11v BSS transition bit of the
// extended capabilities element.
func (e *Entry) SupportsBSSTransition() bool {
	return extCapBit(e.ExtCap, 19)
}

func extCapBit(ext []byte, bit int) bool {
	if bit/8 >= len(ext) {
		return false
	}
	return ext[bit/8]&(1<<(bit%8)) != 0
}

// CapabilityString returns a compact description of the capability bits.
func (e *Entry) CapabilityString() string {
	var parts []string
	switch {
	case e.Mesh:
		parts = append(parts, "MESH")
	case e.Capability&CapIBSS != 0:
		parts = append(parts, "IBSS")
	case e.Capability&CapESS != 0:
		parts = append(parts, "ESS")
	}
	if e.HasKey {
		parts = append(parts, "Privacy")
	}
	if e.HT {
		parts = append(parts, "HT")
	}
	if e.RM {
		parts = append(parts, "RM")
	}
	if e.Capability&CapQoS != 0 {
		parts = append(parts, "QoS")
	}
	if e.Capability&CapSpectrumMgmt != 0 {
		parts = append(parts, "SpectrumMgmt")
	}
	if e.SupportsBSSTransition() {
		parts = append(parts, "BSS-TM")
	}
	return strings.Join(parts, " ")
}
