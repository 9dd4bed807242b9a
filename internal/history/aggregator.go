package history

import "sync"

// Extrema is the running minimum and maximum of raw signal readings.
type Extrema struct {
	Min         float64
	Max         float64
	Initialized bool
}

func (e *Extrema) track(v float64) {
	if !e.Initialized {
		e.Min, e.Max, e.Initialized = v, v, true
		return
	}
	if v < e.Min {
		e.Min = v
	}
	if v > e.Max {
		e.Max = v
	}
}

// slotAccumulator collects one slot's worth of ticks. Only the sampler
// goroutine touches it.
type slotAccumulator struct {
	sum   float64 // running sum of reading/slotSize
	ticks int
	valid bool
}

// Aggregator reduces per-tick signal readings into slot-averaged samples and
// tracks extrema and the reading distribution for the selected interface.
type Aggregator struct {
	cache *SampleCache
	acc   slotAccumulator

	mu      sync.Mutex // guards extrema and dist
	extrema Extrema
	dist    *Distribution
}

// NewAggregator creates an aggregator that writes into cache.
func NewAggregator(cache *SampleCache) *Aggregator {
	return &Aggregator{
		cache: cache,
		dist:  NewDistribution(),
	}
}

// Cache returns the sample cache fed by this aggregator.
func (a *Aggregator) Cache() *SampleCache {
	return a.cache
}

// Update consumes one raw reading in dBm; zero means "not reported". Every
// slotSize ticks one Sample is inserted into the cache. It reports whether
// a sample was emitted.
func (a *Aggregator) Update(reading int, slotSize int) bool {
	if slotSize < 1 {
		slotSize = 1
	}

	if reading != 0 {
		a.acc.sum += float64(reading) / float64(slotSize)
		a.acc.valid = true

		a.mu.Lock()
		a.extrema.track(float64(reading))
		a.dist.Record(reading)
		a.mu.Unlock()
	}

	a.acc.ticks++
	if a.acc.ticks < slotSize {
		return false
	}
	a.cache.Insert(Sample{Signal: a.acc.sum, Valid: a.acc.valid})
	a.acc = slotAccumulator{}
	return true
}

// Extrema returns the running extrema.
func (a *Aggregator) Extrema() Extrema {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.extrema
}

// Distribution returns a percentile summary of raw readings.
func (a *Aggregator) Distribution() DistributionStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dist.Stats()
}

// Reset clears history, extrema and distribution after an interface change.
// It must not race with Update; stop the sampler first.
func (a *Aggregator) Reset() {
	a.cache.Reset()
	a.acc = slotAccumulator{}

	a.mu.Lock()
	a.extrema = Extrema{}
	a.dist.Reset()
	a.mu.Unlock()
}
