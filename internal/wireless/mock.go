package wireless

import (
	"context"
	"math"
	"math/rand"
	"net"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

var mockNetworkTemplates = []struct {
	SSID    string
	Privacy bool
}{
	{"HomeNetwork_2G", true},
	{"XFINITY-7A3F", true},
	{"TP-Link_5GHz", true},
	{"AndroidAP", true},
	{"Starlink_WiFi", true},
	{"CoffeeShop Free", false},
	{"eduroam", true},
	{"DIRECT-42-HP LaserJet", true},
	{"", true}, // hidden
	{"FRITZ!Box 7590", true},
	{"Guest", false},
	{"Vodafone-A1B2", true},
	{"NETGEAR88", true},
	{"linksys", false},
	{"MeshNode", true},
	{"\x00\x00\x00\x00", true}, // hidden, zero-filled
}

// 5 GHz channel options for mock access points.
var wifi5GChannels = []int{36, 40, 44, 48, 149, 153, 157, 161}

type mockAP struct {
	bssid     net.HardwareAddr
	ssid      string
	privacy   bool
	freq      int
	baseMBM   float64
	phase     float64
	amplitude float64
	stations  uint16
	util      uint8
	active    bool
}

// MockSource generates a fake interface, link and scan results for demo mode.
type MockSource struct {
	iface Interface

	mu      sync.Mutex
	aps     []mockAP
	start   time.Time
	rxBytes uint64
	txBytes uint64
	up      bool
	rng     *rand.Rand
}

// NewMockSource creates a demo source with n random access points.
func NewMockSource(n int) *MockSource {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if n > len(mockNetworkTemplates) {
		n = len(mockNetworkTemplates)
	}
	perm := rng.Perm(len(mockNetworkTemplates))

	aps := make([]mockAP, n)
	for i := 0; i < n; i++ {
		tmpl := mockNetworkTemplates[perm[i]]
		ap := mockAP{
			bssid:     randomMAC(rng),
			ssid:      tmpl.SSID,
			privacy:   tmpl.Privacy,
			baseMBM:   -4000 - rng.Float64()*5000, // -40 to -90 dBm
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: 300 + rng.Float64()*800,
			stations:  uint16(rng.Intn(30)),
			util:      uint8(rng.Intn(256)),
			active:    true,
		}
		if rng.Intn(2) == 0 {
			ap.freq = 2412 + rng.Intn(11)*5
		} else {
			ap.freq = 5000 + wifi5GChannels[rng.Intn(len(wifi5GChannels))]*5
		}
		aps[i] = ap
	}

	return &MockSource{
		iface: Interface{
			Name:  "wlan0",
			Index: 3,
			MAC:   randomMAC(rng),
			Type:  "station",
		},
		aps:   aps,
		start: time.Now(),
		up:    true,
		rng:   rng,
	}
}

func randomMAC(rng *rand.Rand) net.HardwareAddr {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	b[0] &^= 0x03 // globally administered unicast
	return b
}

// Interface returns the fake interface.
func (s *MockSource) Interface() Interface {
	return s.iface
}

// Close is a no-op.
func (s *MockSource) Close() error {
	return nil
}

func (s *MockSource) signal(ap *mockAP, t float64) int32 {
	v := ap.baseMBM + ap.amplitude*math.Sin(t*0.5+ap.phase) + (s.rng.Float64()-0.5)*400
	return int32(v)
}

// PollLinkStats simulates being associated to the first access point.
func (s *MockSource) PollLinkStats(ctx context.Context, ls *LinkStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := time.Since(s.start).Seconds()
	ap := &s.aps[0]

	s.rxBytes += uint64(2000 + s.rng.Intn(50000))
	s.txBytes += uint64(500 + s.rng.Intn(8000))

	sig := int(s.signal(ap, t) / 100)
	// Occasional missing reading, as real drivers do between beacons
	if s.rng.Float64() < 0.03 {
		sig = 0
	}

	*ls = LinkStats{
		Time:           time.Now(),
		Iface:          s.iface,
		Up:             s.up,
		SSID:           ap.ssid,
		BSSID:          ap.bssid,
		Frequency:      ap.freq,
		Channel:        FreqToChannel(ap.freq),
		BeaconInterval: 102400 * time.Microsecond,
		Signal:         sig,
		SignalAvg:      int(ap.baseMBM / 100),
		BSSSignal:      int(ap.baseMBM / 100),
		RxBytes:        s.rxBytes,
		TxBytes:        s.txBytes,
		RxPackets:      s.rxBytes / 900,
		TxPackets:      s.txBytes / 400,
		RxBitrate:      (130 + s.rng.Intn(300)) * 1e6,
		TxBitrate:      (65 + s.rng.Intn(200)) * 1e6,
		TxRetries:      uint64(t * 3),
		TxFailed:       uint64(t / 20),
		Connected:      time.Since(s.start),
		Inactive:       time.Duration(s.rng.Intn(200)) * time.Millisecond,
		Noise:          -92 - s.rng.Intn(4),
		SurveyTime:     time.Duration(t*1000) * time.Millisecond,
		SurveyBusy:     time.Duration(t*1000*0.3) * time.Millisecond,
		LinkQuality:    float64(70 + sig/2),
	}
	return nil
}

// TriggerScan starts a simulated scan.
func (s *MockSource) TriggerScan(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.up {
		return unix.ENETDOWN
	}
	return nil
}

// WaitForScanEvent waits a scan-like delay. A few scans are aborted.
func (s *MockSource) WaitForScanEvent(ctx context.Context) (ScanEvent, error) {
	select {
	case <-ctx.Done():
		return ScanAborted, ctx.Err()
	case <-time.After(1500 * time.Millisecond):
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng.Float64() < 0.05 {
		return ScanAborted, nil
	}
	return ScanCompleted, nil
}

// FetchScanDump returns the currently visible fake access points.
func (s *MockSource) FetchScanDump(ctx context.Context) ([]BSS, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := time.Since(s.start).Seconds()
	var out []BSS
	for i := range s.aps {
		ap := &s.aps[i]
		// Randomly toggle visibility (appear/disappear)
		if i > 0 && s.rng.Float64() < 0.05 {
			ap.active = !ap.active
		}
		if !ap.active {
			continue
		}
		capab := uint16(0x0001) // ESS
		if ap.privacy {
			capab |= 0x0010
		}
		out = append(out, BSS{
			BSSID:      ap.bssid,
			Frequency:  ap.freq,
			SignalMBM:  s.signal(ap, t),
			Capability: capab,
			IEs:        mockIEs(ap),
			SeenAgo:    time.Duration(s.rng.Intn(3000)) * time.Millisecond,
			Associated: i == 0,
		})
	}
	return out, nil
}

func mockIEs(ap *mockAP) []byte {
	ies := []byte{0, byte(len(ap.ssid))}
	ies = append(ies, ap.ssid...)
	// BSS Load: station count, channel utilization, admission capacity
	ies = append(ies, 11, 5, byte(ap.stations), byte(ap.stations>>8), ap.util, 0, 0)
	// HT Capabilities (contents irrelevant here)
	ies = append(ies, 45, 2, 0x6f, 0x01)
	// Extended Capabilities with BSS transition (bit 19)
	ies = append(ies, 127, 3, 0x04, 0x00, 0x08)
	return ies
}

// IsInterfaceUp reports the simulated administrative state.
func (s *MockSource) IsInterfaceUp() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.up, nil
}

// SetInterfaceUp marks the fake interface up.
func (s *MockSource) SetInterfaceUp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.up = true
	return nil
}

// SetInterfaceDown marks the fake interface down.
func (s *MockSource) SetInterfaceDown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.up = false
	return nil
}

// HasAdminCapability always reports true in demo mode.
func (s *MockSource) HasAdminCapability() bool {
	return true
}
