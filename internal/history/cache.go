package history

import (
	"math"
	"sync"

	"wlan-meter.klederson.com/internal/config"
)

// Sample is one slot-averaged signal level.
type Sample struct {
	Signal float64 // dBm
	Valid  bool
}

// SampleCache is a fixed-size ring of samples written by the sampler and read
// by the renderer, newest first.
type SampleCache struct {
	mu      sync.RWMutex
	samples [config.CacheSize]Sample
	count   uint32 // total insertions, wrapped to stay congruent mod CacheSize
}

// NewSampleCache creates an empty cache.
func NewSampleCache() *SampleCache {
	return &SampleCache{}
}

// Insert stores s as the newest sample.
func (c *SampleCache) Insert(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.samples[c.count%config.CacheSize] = s
	if c.count == math.MaxUint32 {
		// Next value keeps count ≡ old+1 (mod CacheSize) and the ring full.
		c.count = config.CacheSize + (c.count%config.CacheSize+1)%config.CacheSize
		return
	}
	c.count++
}

// Get returns the sample inserted offset insertions ago; offset 0 is the
// newest. Offsets past the stored history yield the zero (invalid) Sample.
func (c *SampleCache) Get(offset int) Sample {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if offset < 0 || offset >= config.CacheSize || uint64(offset) >= uint64(c.count) {
		return Sample{}
	}
	return c.samples[(c.count-1-uint32(offset))%config.CacheSize]
}

// Len returns the number of retrievable samples.
func (c *SampleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.count > config.CacheSize {
		return config.CacheSize
	}
	return int(c.count)
}

// Recent returns up to n samples, oldest first, for graphing.
func (c *SampleCache) Recent(n int) []Sample {
	if l := c.Len(); n > l {
		n = l
	}
	out := make([]Sample, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = c.Get(i)
	}
	return out
}

// Reset forgets all history.
func (c *SampleCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
}
