package history

import (
	"github.com/HdrHistogram/hdrhistogram-go"
)

// Distribution summarizes raw signal readings with an HDR histogram.
// Values are recorded as positive attenuation (-dBm).
type Distribution struct {
	hist *hdrhistogram.Histogram
}

// DistributionStats is a percentile summary in dBm.
type DistributionStats struct {
	Count int64
	Min   float64
	Max   float64
	Mean  float64
	P50   float64
	P90   float64 // 90% of readings were at least this strong
}

const (
	histMin    = 1
	histMax    = 200
	histSigFig = 3
)

// NewDistribution creates an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{hist: hdrhistogram.New(histMin, histMax, histSigFig)}
}

// Record adds one reading in dBm. Readings outside -200..-1 dBm are ignored.
func (d *Distribution) Record(dbm int) {
	_ = d.hist.RecordValue(int64(-dbm))
}

// Stats returns the current summary.
func (d *Distribution) Stats() DistributionStats {
	n := d.hist.TotalCount()
	if n == 0 {
		return DistributionStats{}
	}
	return DistributionStats{
		Count: n,
		Min:   -float64(d.hist.Max()),
		Max:   -float64(d.hist.Min()),
		Mean:  -d.hist.Mean(),
		P50:   -float64(d.hist.ValueAtQuantile(50)),
		P90:   -float64(d.hist.ValueAtQuantile(90)),
	}
}

// Reset discards all recorded readings.
func (d *Distribution) Reset() {
	d.hist.Reset()
}
