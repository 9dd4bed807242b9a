package wireless

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/net"
)

// fillCounters copies the kernel's per-interface error and drop counters into
// ls. Byte and packet totals are only taken when nl80211 did not supply them.
func fillCounters(ctx context.Context, ls *LinkStats) error {
	stats, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return fmt.Errorf("interface counters: %w", err)
	}
	for _, st := range stats {
		if st.Name != ls.Iface.Name {
			continue
		}
		ls.RxErrors = st.Errin
		ls.TxErrors = st.Errout
		ls.RxDropped = st.Dropin
		ls.TxDropped = st.Dropout
		if ls.RxBytes == 0 && ls.TxBytes == 0 {
			ls.RxBytes = st.BytesRecv
			ls.TxBytes = st.BytesSent
			ls.RxPackets = st.PacketsRecv
			ls.TxPackets = st.PacketsSent
		}
		return nil
	}
	return nil
}

// readRfkill reports the soft and hard block state of the PHY behind iface.
func readRfkill(iface string) (soft, hard bool) {
	dirs, _ := filepath.Glob(filepath.Join("/sys/class/net", iface, "phy80211", "rfkill*"))
	for _, dir := range dirs {
		soft = soft || readFlag(filepath.Join(dir, "soft"))
		hard = hard || readFlag(filepath.Join(dir, "hard"))
	}
	return soft, hard
}

func readFlag(path string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(b)) == "1"
}
