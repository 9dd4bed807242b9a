package wireless

import (
	"errors"
	"net"
	"time"
)

// ErrNoInterface is returned when no wireless interface can be found.
var ErrNoInterface = errors.New("no wireless interface found")

// Interface describes one wireless network interface.
type Interface struct {
	Name  string
	Index int
	MAC   net.HardwareAddr
	PHY   int
	Type  string
}

// LinkStats is one full poll of interface, station, survey and PHY state.
// Zero-valued fields were not reported by the driver.
type LinkStats struct {
	Time time.Time

	Iface Interface
	Up    bool

	// Association
	SSID           string
	BSSID          net.HardwareAddr
	Frequency      int // MHz
	Channel        int
	BeaconInterval time.Duration

	// Station (dBm)
	Signal    int
	SignalAvg int
	BSSSignal int // probe-response signal of the associated BSS

	RxBytes    uint64
	TxBytes    uint64
	RxPackets  uint64
	TxPackets  uint64
	RxBitrate  int // bits per second
	TxBitrate  int
	TxRetries  uint64
	TxFailed   uint64
	BeaconLoss uint64
	Connected  time.Duration
	Inactive   time.Duration
	RxErrors   uint64
	TxErrors   uint64
	RxDropped  uint64
	TxDropped  uint64

	// Survey of the channel in use
	Noise      int // dBm
	SurveyTime time.Duration
	SurveyBusy time.Duration
	SurveyRx   time.Duration
	SurveyTx   time.Duration

	// /proc/net/wireless
	LinkQuality float64
	ProcLevel   float64
	ProcNoise   float64

	RfkillSoft bool
	RfkillHard bool
}

// Reading returns the best available raw signal level for the sampling slot:
// instantaneous signal, then the station average, then the probe-response
// signal. Positive driver values are folded into negative dBm.
func (ls *LinkStats) Reading() int {
	sig := ls.Signal
	if sig == 0 {
		sig = ls.SignalAvg
	}
	if sig == 0 {
		sig = ls.BSSSignal
	}
	return NormalizeDBM(sig)
}

// NormalizeDBM corrects drivers that report dBm as unsigned or positive values.
func NormalizeDBM(v int) int {
	switch {
	case v >= 128 && v < 256:
		return v - 256
	case v > 0:
		return -v
	default:
		return v
	}
}

// SurveyBusyPercent returns channel busy time as a percentage of active time.
func (ls *LinkStats) SurveyBusyPercent() float64 {
	if ls.SurveyTime <= 0 {
		return 0
	}
	return 100 * float64(ls.SurveyBusy) / float64(ls.SurveyTime)
}

// SNR returns signal-to-noise in dB, or 0 when either value is missing.
func (ls *LinkStats) SNR() int {
	sig := ls.Reading()
	if sig == 0 || ls.Noise == 0 {
		return 0
	}
	return sig - ls.Noise
}

// BSS is one raw record from a scan dump.
type BSS struct {
	BSSID      net.HardwareAddr
	Frequency  int    // MHz
	SignalMBM  int32  // 1/100 dBm, zero if not reported
	SignalQual uint8  // unitless 0..100, zero if not reported
	Capability uint16 // 802.11 capability information
	IEs        []byte // raw information elements
	SeenAgo    time.Duration
	Associated bool
}

// ScanEvent is the outcome of waiting on a triggered scan.
type ScanEvent int

const (
	ScanCompleted ScanEvent = iota
	ScanAborted
)

func (e ScanEvent) String() string {
	if e == ScanAborted {
		return "aborted"
	}
	return "completed"
}
