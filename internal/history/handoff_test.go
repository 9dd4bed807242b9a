package history

import (
	"sync"
	"testing"
	"time"
)

func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("operation timed out (possible deadlock)")
	}
}

type poll struct {
	seq  int
	a, b int
	tail [64]int
}

func TestHandoffSequence(t *testing.T) {
	h := NewHandoff[poll]()

	if _, ok := h.TryConsume(); ok {
		t.Fatal("nothing published yet")
	}

	buf := h.Acquire()
	if buf == nil {
		t.Fatal("producer should own the building slot initially")
	}
	buf.seq = 1
	if !h.Publish() {
		t.Fatal("Publish failed")
	}
	if h.Acquire() != nil {
		t.Error("no building slot while a value is pending")
	}
	if h.Publish() {
		t.Error("second Publish must fail while a value is pending")
	}

	v, ok := h.TryConsume()
	if !ok || v.seq != 1 {
		t.Fatalf("TryConsume = %+v, %v", v, ok)
	}
	if _, ok := h.TryConsume(); ok {
		t.Error("value consumed twice")
	}
	if h.Current().seq != 1 {
		t.Error("Current should return the consumed value")
	}
	if h.Acquire() == nil {
		t.Error("producer should get a slot back after consumption")
	}
}

func TestHandoffTryConsumeDoesNotBlock(t *testing.T) {
	h := NewHandoff[poll]()
	h.Acquire().seq = 1
	h.Publish()

	h.mu.Lock()
	runWithTimeout(t, time.Second, func() {
		if _, ok := h.TryConsume(); ok {
			t.Error("TryConsume should fail while the lock is held")
		}
	})
	h.mu.Unlock()

	if _, ok := h.TryConsume(); !ok {
		t.Error("TryConsume should succeed once the lock is free")
	}
}

func TestHandoffNoTornReads(t *testing.T) {
	h := NewHandoff[poll]()
	const rounds = 2000

	runWithTimeout(t, 10*time.Second, func() {
		var wg sync.WaitGroup
		stop := make(chan struct{})

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= rounds; {
				select {
				case <-stop:
					return
				default:
				}
				buf := h.Acquire()
				if buf == nil {
					time.Sleep(10 * time.Microsecond)
					continue
				}
				buf.seq = i
				buf.a = i
				for j := range buf.tail {
					buf.tail[j] = i
				}
				buf.b = i
				h.Publish()
				i++
			}
		}()

		last := 0
		for last < rounds {
			v, ok := h.TryConsume()
			if !ok {
				time.Sleep(10 * time.Microsecond)
				continue
			}
			if v.a != v.seq || v.b != v.seq || v.tail[0] != v.seq || v.tail[63] != v.seq {
				t.Errorf("torn snapshot: %+v", v)
				break
			}
			if v.seq <= last {
				t.Errorf("out of order: got %d after %d", v.seq, last)
				break
			}
			last = v.seq
		}
		close(stop)
		wg.Wait()
	})
}
