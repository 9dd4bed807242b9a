package wireless

import (
	"reflect"
	"strings"
	"testing"
)

const sampleProcWireless = `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
wlp2s0: 0000   54.  -56.  -256        0      0      0      7      0        0
  wlan1: 0000   70   -40.  -92.       0      0      0      0      0        0
`

func TestParseProcWireless(t *testing.T) {
	got, err := parseProcWireless(strings.NewReader(sampleProcWireless))
	if err != nil {
		t.Fatalf("parseProcWireless: %v", err)
	}
	want := map[string]ProcEntry{
		"wlp2s0": {Quality: 54, Level: -56, Noise: 0},
		"wlan1":  {Quality: 70, Level: -40, Noise: -92},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseProcWirelessHeaderOnly(t *testing.T) {
	got, err := parseProcWireless(strings.NewReader("a\nb\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
}

func TestParseProcWirelessBadField(t *testing.T) {
	in := "h1\nh2\nwlan0: 0000 xx. -50. -90. 0\n"
	if _, err := parseProcWireless(strings.NewReader(in)); err == nil {
		t.Error("expected error for malformed quality")
	}
}
