package main

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"wlan-meter.klederson.com/internal/config"
	"wlan-meter.klederson.com/internal/scan"
)

func TestBuildConfig(t *testing.T) {
	flagSort, flagBand, flagDesc = "essid", "5", false
	flagSlot, flagInterval = 1000, 0
	defer func() {
		flagSort, flagBand, flagDesc = config.SortBySignal.String(), config.BandAll.String(), true
		flagSlot, flagInterval = config.DefaultSlot, config.DefaultSampleInterval
	}()

	cfg, err := buildConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SortOrder != config.SortByESSID || !cfg.SortAscending || cfg.Band != config.Band5GHz {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.SlotSize != config.MaxSlotSize || cfg.SampleInterval != config.DefaultSampleInterval {
		t.Errorf("out-of-range values not normalized: %+v", cfg)
	}

	flagSort = "loudest"
	if _, err := buildConfig(); err == nil {
		t.Error("unknown sort order should fail")
	}
}

func TestPrintScanPlain(t *testing.T) {
	v := scan.View{
		Entries: []scan.Entry{{
			MAC:       net.HardwareAddr{2, 0, 0, 0, 0, 1},
			ESSID:     "CoffeeShop",
			Channel:   11,
			SignalDBM: -48,
			Stations:  -1,
		}},
		Counts:       scan.Counts{Total: 1, Open: 1, TwoGHz: 1},
		ChannelStats: []scan.ChannelCount{{Channel: 11, Count: 1}},
		Order:        config.SortBySignal,
	}

	var buf bytes.Buffer
	printScanPlain(&buf, v)
	out := buf.String()
	for _, want := range []string{"ESSID", "CoffeeShop", "02:00:00:00:00:01", "-48dBm", "ch11: 1", "signal desc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output must not contain escape sequences")
	}
}
