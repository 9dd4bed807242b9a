package wireless

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

func TestMockSourceScanDump(t *testing.T) {
	s := NewMockSource(6)
	records, err := s.FetchScanDump(context.Background())
	if err != nil {
		t.Fatalf("FetchScanDump: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least the associated access point")
	}
	if !records[0].Associated {
		t.Error("first record should be the associated BSS")
	}
	for _, r := range records {
		if len(r.BSSID) != 6 {
			t.Errorf("bad BSSID %v", r.BSSID)
		}
		if FreqToChannel(r.Frequency) == 0 {
			t.Errorf("frequency %d has no channel", r.Frequency)
		}
		if len(r.IEs) < 2 || r.IEs[0] != 0 {
			t.Errorf("IEs should start with the SSID element: %v", r.IEs)
		}
	}
}

func TestMockSourceInterfaceDown(t *testing.T) {
	s := NewMockSource(3)
	if err := s.SetInterfaceDown(); err != nil {
		t.Fatal(err)
	}
	err := s.TriggerScan(context.Background())
	if !errors.Is(err, unix.ENETDOWN) {
		t.Fatalf("TriggerScan on down interface = %v, want ENETDOWN", err)
	}
	if err := s.SetInterfaceUp(); err != nil {
		t.Fatal(err)
	}
	if up, _ := s.IsInterfaceUp(); !up {
		t.Error("interface should be up again")
	}
}

func TestMockSourcePoll(t *testing.T) {
	s := NewMockSource(2)
	var ls LinkStats
	if err := s.PollLinkStats(context.Background(), &ls); err != nil {
		t.Fatalf("PollLinkStats: %v", err)
	}
	if ls.Iface.Name != "wlan0" || ls.Channel == 0 {
		t.Errorf("unexpected snapshot: %+v", ls)
	}
	if ls.SignalAvg >= 0 {
		t.Errorf("SignalAvg = %d, want negative dBm", ls.SignalAvg)
	}
}
