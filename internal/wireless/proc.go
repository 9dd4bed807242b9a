package wireless

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const procWireless = "/proc/net/wireless"

// ProcEntry is one interface line of /proc/net/wireless.
type ProcEntry struct {
	Quality float64
	Level   float64
	Noise   float64
}

// readProcWireless returns the entry for iface, or ok=false when the file or
// the interface line is missing.
func readProcWireless(iface string) (ProcEntry, bool, error) {
	f, err := os.Open(procWireless)
	if err != nil {
		if os.IsNotExist(err) {
			return ProcEntry{}, false, nil
		}
		return ProcEntry{}, false, fmt.Errorf("open %s: %w", procWireless, err)
	}
	defer f.Close()

	entries, err := parseProcWireless(f)
	if err != nil {
		return ProcEntry{}, false, err
	}
	e, ok := entries[iface]
	return e, ok, nil
}

// parseProcWireless parses the two header lines and one line per interface:
// "wlan0: 0000   54.  -56.  -256.  0 0 0 0 0 0"
func parseProcWireless(r io.Reader) (map[string]ProcEntry, error) {
	results := make(map[string]ProcEntry)
	scanner := bufio.NewScanner(r)

	for i := 0; i < 2; i++ {
		if !scanner.Scan() {
			return results, scanner.Err()
		}
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 {
			continue
		}
		iface := strings.TrimSuffix(fields[0], ":")

		var e ProcEntry
		var err error
		if e.Quality, err = parseProcFloat(fields[2]); err != nil {
			return nil, fmt.Errorf("%s link quality: %w", iface, err)
		}
		if e.Level, err = parseProcFloat(fields[3]); err != nil {
			return nil, fmt.Errorf("%s signal level: %w", iface, err)
		}
		if e.Noise, err = parseProcFloat(fields[4]); err != nil {
			return nil, fmt.Errorf("%s noise level: %w", iface, err)
		}
		// -256 is the driver's "not available" marker
		if e.Noise <= -256 {
			e.Noise = 0
		}
		results[iface] = e
	}

	return results, scanner.Err()
}

// parseProcFloat strips the trailing dot the kernel prints after updated values.
func parseProcFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(s, "."), 64)
}
