package history

import (
	"math"
	"testing"
)

func TestAggregatorConstantSlot(t *testing.T) {
	cache := NewSampleCache()
	agg := NewAggregator(cache)

	const slot = 5
	for i := 0; i < slot-1; i++ {
		if agg.Update(-60, slot) {
			t.Fatalf("sample emitted early at tick %d", i)
		}
	}
	if !agg.Update(-60, slot) {
		t.Fatal("expected a sample after slot ticks")
	}
	if cache.Len() != 1 {
		t.Fatalf("cache holds %d samples, want 1", cache.Len())
	}
	got := cache.Get(0)
	if !got.Valid || math.Abs(got.Signal-(-60)) > 1e-9 {
		t.Errorf("sample = %+v, want {-60 true}", got)
	}
}

func TestAggregatorAllInvalid(t *testing.T) {
	cache := NewSampleCache()
	agg := NewAggregator(cache)

	for i := 0; i < 3; i++ {
		agg.Update(0, 3)
	}
	if got := cache.Get(0); got.Valid || got.Signal != 0 {
		t.Errorf("sample = %+v, want invalid zero sample", got)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d samples, want 1", cache.Len())
	}
	if agg.Extrema().Initialized {
		t.Error("extrema should stay uninitialized without valid readings")
	}
}

func TestAggregatorSlotAverageAndExtrema(t *testing.T) {
	cache := NewSampleCache()
	agg := NewAggregator(cache)

	for _, v := range []int{-40, -42, -41, -43} {
		agg.Update(v, 4)
	}

	if cache.Len() != 1 {
		t.Fatalf("cache holds %d samples, want 1", cache.Len())
	}
	got := cache.Get(0)
	if !got.Valid || math.Abs(got.Signal-(-41.5)) > 1e-9 {
		t.Errorf("sample = %+v, want {-41.5 true}", got)
	}

	ext := agg.Extrema()
	if !ext.Initialized || ext.Min != -43 || ext.Max != -40 {
		t.Errorf("extrema = %+v, want min=-43 max=-40", ext)
	}
}

func TestAggregatorMixedSlotIsValid(t *testing.T) {
	cache := NewSampleCache()
	agg := NewAggregator(cache)

	agg.Update(0, 2)
	agg.Update(-50, 2)

	got := cache.Get(0)
	if !got.Valid {
		t.Error("slot with one valid tick should be valid")
	}
	if math.Abs(got.Signal-(-25)) > 1e-9 {
		t.Errorf("Signal = %v, want -25 (sum of reading/slot)", got.Signal)
	}
}

func TestAggregatorDistributionAndReset(t *testing.T) {
	cache := NewSampleCache()
	agg := NewAggregator(cache)

	for _, v := range []int{-50, -60, -70, -80} {
		agg.Update(v, 1)
	}
	st := agg.Distribution()
	if st.Count != 4 || st.Min != -80 || st.Max != -50 {
		t.Errorf("distribution = %+v", st)
	}
	if math.Abs(st.Mean-(-65)) > 0.5 {
		t.Errorf("Mean = %v, want about -65", st.Mean)
	}

	agg.Reset()
	if cache.Len() != 0 {
		t.Error("Reset should clear the cache")
	}
	if agg.Extrema().Initialized {
		t.Error("Reset should clear extrema")
	}
	if agg.Distribution().Count != 0 {
		t.Error("Reset should clear the distribution")
	}
}
