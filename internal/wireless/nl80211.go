package wireless

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/wifi"
	"golang.org/x/sys/unix"
)

// eventPoll bounds each blocking read on the scan multicast socket so that
// cancellation is observed promptly.
const eventPoll = 250 * time.Millisecond

// maxDrainReads bounds how many queued reads drainScanEvents discards.
const maxDrainReads = 64

// eventConn is the receive side of the scan multicast socket.
type eventConn interface {
	SetReadDeadline(t time.Time) error
	Receive() ([]genetlink.Message, []netlink.Message, error)
	Close() error
}

// NL80211 talks to the kernel's nl80211 generic netlink family for one
// interface. Station and BSS basics come from mdlayher/wifi; scans, surveys
// and averaged station signal use raw genetlink requests.
type NL80211 struct {
	iface Interface
	wc    *wifi.Client
	wifi  *wifi.Interface

	mu     sync.Mutex // serializes requests on conn
	conn   *genetlink.Conn
	events eventConn
	family genetlink.Family
}

// Interfaces lists the wireless interfaces known to nl80211.
func Interfaces() ([]Interface, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("open nl80211: %w", err)
	}
	defer c.Close()

	ifis, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	var out []Interface
	for _, ifi := range ifis {
		if ifi.Name == "" {
			continue
		}
		out = append(out, toInterface(ifi))
	}
	if len(out) == 0 {
		return nil, ErrNoInterface
	}
	return out, nil
}

func toInterface(ifi *wifi.Interface) Interface {
	return Interface{
		Name:  ifi.Name,
		Index: ifi.Index,
		MAC:   ifi.HardwareAddr,
		PHY:   ifi.PHY,
		Type:  ifi.Type.String(),
	}
}

// Open connects to nl80211 for the named interface. An empty name selects
// the first wireless interface.
func Open(name string) (*NL80211, error) {
	wc, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("open nl80211: %w", err)
	}

	ifis, err := wc.Interfaces()
	if err != nil {
		wc.Close()
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	var found *wifi.Interface
	for _, ifi := range ifis {
		if ifi.Name == "" {
			continue
		}
		if name == "" || ifi.Name == name {
			found = ifi
			break
		}
	}
	if found == nil {
		wc.Close()
		if name == "" {
			return nil, ErrNoInterface
		}
		return nil, fmt.Errorf("%w: %s", ErrNoInterface, name)
	}

	s := &NL80211{iface: toInterface(found), wc: wc, wifi: found}
	if err := s.dial(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *NL80211) dial() error {
	conn, err := genetlink.Dial(nil)
	if err != nil {
		return fmt.Errorf("dial genetlink: %w", err)
	}
	s.conn = conn

	family, err := conn.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		return fmt.Errorf("get %s family: %w", unix.NL80211_GENL_NAME, err)
	}
	s.family = family

	events, err := genetlink.Dial(nil)
	if err != nil {
		return fmt.Errorf("dial genetlink events: %w", err)
	}
	s.events = events

	for _, g := range family.Groups {
		if g.Name == unix.NL80211_MULTICAST_GROUP_SCAN {
			if err := events.JoinGroup(g.ID); err != nil {
				return fmt.Errorf("join scan group: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("%s: no %q multicast group", unix.NL80211_GENL_NAME, unix.NL80211_MULTICAST_GROUP_SCAN)
}

// Interface returns the interface this source is bound to.
func (s *NL80211) Interface() Interface {
	return s.iface
}

// Close releases all netlink sockets.
func (s *NL80211) Close() error {
	var errs []error
	if s.events != nil {
		errs = append(errs, s.events.Close())
	}
	if s.conn != nil {
		errs = append(errs, s.conn.Close())
	}
	if s.wc != nil {
		errs = append(errs, s.wc.Close())
	}
	return errors.Join(errs...)
}

func (s *NL80211) execute(cmd uint8, flags netlink.HeaderFlags) ([]genetlink.Message, error) {
	ae := netlink.NewAttributeEncoder()
	ae.Uint32(unix.NL80211_ATTR_IFINDEX, uint32(s.iface.Index))
	b, err := ae.Encode()
	if err != nil {
		return nil, err
	}

	req := genetlink.Message{
		Header: genetlink.Header{Command: cmd, Version: s.family.Version},
		Data:   b,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Execute(req, s.family.ID, flags)
}

// PollLinkStats fills ls from every available kernel source. Missing pieces
// stay zero; an error is returned only if the interface itself is gone.
func (s *NL80211) PollLinkStats(ctx context.Context, ls *LinkStats) error {
	*ls = LinkStats{Time: time.Now(), Iface: s.iface}

	up, err := interfaceUp(s.iface.Name)
	if err != nil {
		return err
	}
	ls.Up = up

	if stations, err := s.wc.StationInfo(s.wifi); err == nil && len(stations) > 0 {
		st := stations[0]
		ls.Signal = st.Signal
		ls.RxBytes = uint64(st.ReceivedBytes)
		ls.TxBytes = uint64(st.TransmittedBytes)
		ls.RxPackets = uint64(st.ReceivedPackets)
		ls.TxPackets = uint64(st.TransmittedPackets)
		ls.RxBitrate = st.ReceiveBitrate
		ls.TxBitrate = st.TransmitBitrate
		ls.TxRetries = uint64(st.TransmitRetries)
		ls.TxFailed = uint64(st.TransmitFailed)
		ls.BeaconLoss = uint64(st.BeaconLoss)
		ls.Connected = st.Connected
		ls.Inactive = st.Inactive
	}

	if bss, err := s.wc.BSS(s.wifi); err == nil {
		ls.SSID = bss.SSID
		ls.BSSID = bss.BSSID
		ls.Frequency = bss.Frequency
		ls.BeaconInterval = bss.BeaconInterval
	}
	if ls.Frequency == 0 {
		ls.Frequency = s.wifi.Frequency
	}
	ls.Channel = FreqToChannel(ls.Frequency)

	if msgs, err := s.execute(unix.NL80211_CMD_GET_STATION, netlink.Request|netlink.Dump); err == nil {
		for _, m := range msgs {
			ss, err := parseStationMessage(m.Data)
			if err != nil {
				continue
			}
			if ls.Signal == 0 {
				ls.Signal = ss.signal
			}
			ls.SignalAvg = ss.signalAvg
			break
		}
	}

	if msgs, err := s.execute(unix.NL80211_CMD_GET_SURVEY, netlink.Request|netlink.Dump); err == nil {
		for _, m := range msgs {
			si, err := parseSurveyMessage(m.Data)
			if err != nil || !si.inUse {
				continue
			}
			ls.Noise = si.noise
			ls.SurveyTime = si.active
			ls.SurveyBusy = si.busy
			ls.SurveyRx = si.rx
			ls.SurveyTx = si.tx
			break
		}
	}

	if records, err := s.FetchScanDump(ctx); err == nil {
		for _, r := range records {
			if r.Associated {
				ls.BSSSignal = int(r.SignalMBM / 100)
				break
			}
		}
	}

	if pe, ok, err := readProcWireless(s.iface.Name); err == nil && ok {
		ls.LinkQuality = pe.Quality
		ls.ProcLevel = pe.Level
		ls.ProcNoise = pe.Noise
		if ls.Noise == 0 {
			ls.Noise = int(pe.Noise)
		}
	}

	_ = fillCounters(ctx, ls)
	ls.RfkillSoft, ls.RfkillHard = readRfkill(s.iface.Name)
	return nil
}

// TriggerScan asks the kernel to start a scan on all supported channels.
func (s *NL80211) TriggerScan(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Events queued since the last wait belong to scans started by someone
	// else or to a cancelled cycle, and would complete this wait early.
	if n, err := drainScanEvents(s.events); err != nil {
		return err
	} else if n > 0 {
		slog.Debug("discarded stale scan events", "iface", s.iface.Name, "messages", n)
	}
	_, err := s.execute(unix.NL80211_CMD_TRIGGER_SCAN, netlink.Request|netlink.Acknowledge)
	return err
}

// drainScanEvents discards everything already queued on c without blocking
// and returns the number of messages dropped.
func drainScanEvents(c eventConn) (int, error) {
	if err := c.SetReadDeadline(time.Now()); err != nil {
		return 0, fmt.Errorf("set deadline: %w", err)
	}
	n := 0
	for i := 0; i < maxDrainReads; i++ {
		msgs, _, err := c.Receive()
		if err != nil {
			if isTimeout(err) {
				return n, nil
			}
			return n, fmt.Errorf("drain scan events: %w", err)
		}
		n += len(msgs)
	}
	return n, nil
}

// WaitForScanEvent blocks until the kernel reports that the scan on this
// interface finished or was aborted, or until ctx is done.
func (s *NL80211) WaitForScanEvent(ctx context.Context) (ScanEvent, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ScanAborted, err
		}
		if err := s.events.SetReadDeadline(time.Now().Add(eventPoll)); err != nil {
			return ScanAborted, fmt.Errorf("set deadline: %w", err)
		}
		msgs, _, err := s.events.Receive()
		if err != nil {
			if isTimeout(err) {
				continue
			}
			return ScanAborted, fmt.Errorf("receive scan event: %w", err)
		}
		for _, m := range msgs {
			if scanEventIfindex(m.Data) != s.iface.Index {
				continue
			}
			switch m.Header.Command {
			case unix.NL80211_CMD_NEW_SCAN_RESULTS:
				return ScanCompleted, nil
			case unix.NL80211_CMD_SCAN_ABORTED:
				return ScanAborted, nil
			}
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// FetchScanDump returns the kernel's cached scan results.
func (s *NL80211) FetchScanDump(ctx context.Context) ([]BSS, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msgs, err := s.execute(unix.NL80211_CMD_GET_SCAN, netlink.Request|netlink.Dump)
	if err != nil {
		return nil, err
	}
	records := make([]BSS, 0, len(msgs))
	for _, m := range msgs {
		bss, ok, err := parseBSSMessage(m.Data)
		if err != nil {
			return nil, fmt.Errorf("parse scan result: %w", err)
		}
		if ok {
			records = append(records, bss)
		}
	}
	return records, nil
}

// IsInterfaceUp reports the administrative state of the interface.
func (s *NL80211) IsInterfaceUp() (bool, error) {
	return interfaceUp(s.iface.Name)
}

// SetInterfaceUp brings the interface administratively up.
func (s *NL80211) SetInterfaceUp() error {
	return setInterfaceUp(s.iface.Name, true)
}

// SetInterfaceDown takes the interface administratively down.
func (s *NL80211) SetInterfaceDown() error {
	return setInterfaceUp(s.iface.Name, false)
}

// HasAdminCapability reports whether the process holds CAP_NET_ADMIN.
func (s *NL80211) HasAdminCapability() bool {
	return hasNetAdmin()
}
