package wireless

import "testing"

func TestFreqToChannel(t *testing.T) {
	tests := []struct {
		freq int
		want int
	}{
		{2412, 1},
		{2437, 6},
		{2462, 11},
		{2484, 14},
		{4920, 184},
		{5180, 36},
		{5825, 165},
		{5935, 2},
		{5955, 1},
		{6115, 33},
		{58320, 1},
		{60480, 2},
		{900, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := FreqToChannel(tt.freq); got != tt.want {
			t.Errorf("FreqToChannel(%d) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}

func TestBandLabel(t *testing.T) {
	tests := map[int]string{2412: "2.4G", 5180: "5G", 6115: "6G", 60480: "60G", 900: ""}
	for freq, want := range tests {
		if got := BandLabel(freq); got != want {
			t.Errorf("BandLabel(%d) = %q, want %q", freq, got, want)
		}
	}
}

func TestReadingFallback(t *testing.T) {
	tests := []struct {
		name string
		ls   LinkStats
		want int
	}{
		{"instantaneous", LinkStats{Signal: -50, SignalAvg: -60, BSSSignal: -70}, -50},
		{"average", LinkStats{SignalAvg: -60, BSSSignal: -70}, -60},
		{"probe response", LinkStats{BSSSignal: -70}, -70},
		{"positive quirk", LinkStats{Signal: 45}, -45},
		{"unsigned quirk", LinkStats{Signal: 200}, -56},
		{"nothing", LinkStats{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ls.Reading(); got != tt.want {
				t.Errorf("Reading() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSNRAndBusy(t *testing.T) {
	ls := LinkStats{Signal: -55, Noise: -95, SurveyTime: 1000, SurveyBusy: 250}
	if got := ls.SNR(); got != 40 {
		t.Errorf("SNR() = %d, want 40", got)
	}
	if got := ls.SurveyBusyPercent(); got != 25 {
		t.Errorf("SurveyBusyPercent() = %v, want 25", got)
	}
	if (&LinkStats{Signal: -55}).SNR() != 0 {
		t.Error("SNR without noise should be 0")
	}
}

func TestNormalizeDBM(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-60, -60},
		{0, 0},
		{60, -60},
		{196, -60},
		{255, -1},
		{300, -300},
	}
	for _, tt := range tests {
		if got := NormalizeDBM(tt.in); got != tt.want {
			t.Errorf("NormalizeDBM(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
