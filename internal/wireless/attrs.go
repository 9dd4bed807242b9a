package wireless

import (
	"net"
	"time"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// parseBSSMessage decodes one NL80211_CMD_NEW_SCAN_RESULTS dump message.
// ok is false for messages without a BSS or without a BSSID.
func parseBSSMessage(b []byte) (bss BSS, ok bool, err error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return BSS{}, false, err
	}
	for ad.Next() {
		if ad.Type() != unix.NL80211_ATTR_BSS {
			continue
		}
		ad.Nested(func(nad *netlink.AttributeDecoder) error {
			for nad.Next() {
				switch nad.Type() {
				case unix.NL80211_BSS_BSSID:
					bss.BSSID = net.HardwareAddr(append([]byte(nil), nad.Bytes()...))
				case unix.NL80211_BSS_FREQUENCY:
					bss.Frequency = int(nad.Uint32())
				case unix.NL80211_BSS_SIGNAL_MBM:
					bss.SignalMBM = int32(nad.Uint32())
				case unix.NL80211_BSS_SIGNAL_UNSPEC:
					bss.SignalQual = nad.Uint8()
				case unix.NL80211_BSS_CAPABILITY:
					bss.Capability = nad.Uint16()
				case unix.NL80211_BSS_INFORMATION_ELEMENTS:
					bss.IEs = append([]byte(nil), nad.Bytes()...)
				case unix.NL80211_BSS_SEEN_MS_AGO:
					bss.SeenAgo = time.Duration(nad.Uint32()) * time.Millisecond
				case unix.NL80211_BSS_STATUS:
					status := nad.Uint32()
					bss.Associated = status == unix.NL80211_BSS_STATUS_ASSOCIATED ||
						status == unix.NL80211_BSS_STATUS_IBSS_JOINED
				}
			}
			return nil
		})
	}
	if err := ad.Err(); err != nil {
		return BSS{}, false, err
	}
	return bss, len(bss.BSSID) == 6, nil
}

// stationSignals holds the signal attributes of one station dump message.
type stationSignals struct {
	signal    int
	signalAvg int
}

func parseStationMessage(b []byte) (stationSignals, error) {
	var ss stationSignals
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return ss, err
	}
	for ad.Next() {
		if ad.Type() != unix.NL80211_ATTR_STA_INFO {
			continue
		}
		ad.Nested(func(nad *netlink.AttributeDecoder) error {
			for nad.Next() {
				switch nad.Type() {
				case unix.NL80211_STA_INFO_SIGNAL:
					ss.signal = int(int8(nad.Uint8()))
				case unix.NL80211_STA_INFO_SIGNAL_AVG:
					ss.signalAvg = int(int8(nad.Uint8()))
				}
			}
			return nil
		})
	}
	return ss, ad.Err()
}

// surveyInfo is one channel of an NL80211_CMD_GET_SURVEY dump.
type surveyInfo struct {
	frequency int
	noise     int
	inUse     bool
	active    time.Duration
	busy      time.Duration
	rx        time.Duration
	tx        time.Duration
}

func parseSurveyMessage(b []byte) (surveyInfo, error) {
	var si surveyInfo
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return si, err
	}
	for ad.Next() {
		if ad.Type() != unix.NL80211_ATTR_SURVEY_INFO {
			continue
		}
		ad.Nested(func(nad *netlink.AttributeDecoder) error {
			for nad.Next() {
				switch nad.Type() {
				case unix.NL80211_SURVEY_INFO_FREQUENCY:
					si.frequency = int(nad.Uint32())
				case unix.NL80211_SURVEY_INFO_NOISE:
					si.noise = int(int8(nad.Uint8()))
				case unix.NL80211_SURVEY_INFO_IN_USE:
					si.inUse = true
				case unix.NL80211_SURVEY_INFO_TIME:
					si.active = time.Duration(nad.Uint64()) * time.Millisecond
				case unix.NL80211_SURVEY_INFO_TIME_BUSY:
					si.busy = time.Duration(nad.Uint64()) * time.Millisecond
				case unix.NL80211_SURVEY_INFO_TIME_RX:
					si.rx = time.Duration(nad.Uint64()) * time.Millisecond
				case unix.NL80211_SURVEY_INFO_TIME_TX:
					si.tx = time.Duration(nad.Uint64()) * time.Millisecond
				}
			}
			return nil
		})
	}
	return si, ad.Err()
}

// scanEventIfindex returns the interface index carried by a scan multicast
// notification, or 0 if absent.
func scanEventIfindex(b []byte) int {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return 0
	}
	for ad.Next() {
		if ad.Type() == unix.NL80211_ATTR_IFINDEX {
			return int(ad.Uint32())
		}
	}
	return 0
}
