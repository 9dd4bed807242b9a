package wireless

import (
	"bytes"
	"testing"
	"time"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

func encode(t *testing.T, fn func(ae *netlink.AttributeEncoder)) []byte {
	t.Helper()
	ae := netlink.NewAttributeEncoder()
	fn(ae)
	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return b
}

func TestParseBSSMessage(t *testing.T) {
	mac := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	ies := []byte{0, 3, 'f', 'o', 'o'}
	signal := int32(-6100)
	b := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Uint32(unix.NL80211_ATTR_IFINDEX, 3)
		ae.Nested(unix.NL80211_ATTR_BSS, func(nae *netlink.AttributeEncoder) error {
			nae.Bytes(unix.NL80211_BSS_BSSID, mac)
			nae.Uint32(unix.NL80211_BSS_FREQUENCY, 2437)
			nae.Uint32(unix.NL80211_BSS_SIGNAL_MBM, uint32(signal))
			nae.Uint16(unix.NL80211_BSS_CAPABILITY, 0x0411)
			nae.Bytes(unix.NL80211_BSS_INFORMATION_ELEMENTS, ies)
			nae.Uint32(unix.NL80211_BSS_SEEN_MS_AGO, 1500)
			nae.Uint32(unix.NL80211_BSS_STATUS, unix.NL80211_BSS_STATUS_ASSOCIATED)
			return nil
		})
	})

	bss, ok, err := parseBSSMessage(b)
	if err != nil {
		t.Fatalf("parseBSSMessage: %v", err)
	}
	if !ok {
		t.Fatal("expected a BSS")
	}
	if !bytes.Equal(bss.BSSID, mac) {
		t.Errorf("BSSID = %v", bss.BSSID)
	}
	if bss.Frequency != 2437 || bss.SignalMBM != -6100 || bss.Capability != 0x0411 {
		t.Errorf("unexpected fields: %+v", bss)
	}
	if !bytes.Equal(bss.IEs, ies) {
		t.Errorf("IEs = %v", bss.IEs)
	}
	if bss.SeenAgo != 1500*time.Millisecond || !bss.Associated {
		t.Errorf("SeenAgo=%v Associated=%v", bss.SeenAgo, bss.Associated)
	}
}

func TestParseBSSMessageWithoutBSSID(t *testing.T) {
	b := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Nested(unix.NL80211_ATTR_BSS, func(nae *netlink.AttributeEncoder) error {
			nae.Uint32(unix.NL80211_BSS_FREQUENCY, 5180)
			return nil
		})
	})
	if _, ok, err := parseBSSMessage(b); err != nil || ok {
		t.Errorf("ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestParseStationMessage(t *testing.T) {
	b := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Nested(unix.NL80211_ATTR_STA_INFO, func(nae *netlink.AttributeEncoder) error {
			nae.Uint8(unix.NL80211_STA_INFO_SIGNAL, uint8(0xc4))     // -60
			nae.Uint8(unix.NL80211_STA_INFO_SIGNAL_AVG, uint8(0xc2)) // -62
			return nil
		})
	})
	ss, err := parseStationMessage(b)
	if err != nil {
		t.Fatalf("parseStationMessage: %v", err)
	}
	if ss.signal != -60 || ss.signalAvg != -62 {
		t.Errorf("got %+v", ss)
	}
}

func TestParseSurveyMessage(t *testing.T) {
	b := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Nested(unix.NL80211_ATTR_SURVEY_INFO, func(nae *netlink.AttributeEncoder) error {
			nae.Uint32(unix.NL80211_SURVEY_INFO_FREQUENCY, 5180)
			nae.Uint8(unix.NL80211_SURVEY_INFO_NOISE, uint8(0xa1)) // -95
			nae.Flag(unix.NL80211_SURVEY_INFO_IN_USE, true)
			nae.Uint64(unix.NL80211_SURVEY_INFO_TIME, 1000)
			nae.Uint64(unix.NL80211_SURVEY_INFO_TIME_BUSY, 300)
			return nil
		})
	})
	si, err := parseSurveyMessage(b)
	if err != nil {
		t.Fatalf("parseSurveyMessage: %v", err)
	}
	if si.frequency != 5180 || si.noise != -95 || !si.inUse {
		t.Errorf("got %+v", si)
	}
	if si.active != time.Second || si.busy != 300*time.Millisecond {
		t.Errorf("times: active=%v busy=%v", si.active, si.busy)
	}
}

func TestScanEventIfindex(t *testing.T) {
	b := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Uint32(unix.NL80211_ATTR_WIPHY, 0)
		ae.Uint32(unix.NL80211_ATTR_IFINDEX, 7)
	})
	if got := scanEventIfindex(b); got != 7 {
		t.Errorf("scanEventIfindex = %d, want 7", got)
	}
}
