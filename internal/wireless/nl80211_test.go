package wireless

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
)

type queuedEvents struct {
	batches  [][]genetlink.Message
	deadline time.Time
	err      error
}

func (q *queuedEvents) SetReadDeadline(t time.Time) error {
	q.deadline = t
	return nil
}

func (q *queuedEvents) Receive() ([]genetlink.Message, []netlink.Message, error) {
	if q.err != nil {
		return nil, nil, q.err
	}
	if len(q.batches) == 0 {
		return nil, nil, os.ErrDeadlineExceeded
	}
	b := q.batches[0]
	q.batches = q.batches[1:]
	return b, nil, nil
}

func (q *queuedEvents) Close() error { return nil }

func TestDrainScanEvents(t *testing.T) {
	q := &queuedEvents{batches: [][]genetlink.Message{
		{{}, {}},
		{{}},
	}}
	n, err := drainScanEvents(q)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("drained %d messages, want 3", n)
	}
	if len(q.batches) != 0 {
		t.Errorf("%d batches left queued", len(q.batches))
	}
	if q.deadline.After(time.Now()) {
		t.Error("drain must not wait for new events")
	}
}

func TestDrainScanEventsEmpty(t *testing.T) {
	n, err := drainScanEvents(&queuedEvents{})
	if err != nil || n != 0 {
		t.Errorf("drainScanEvents = %d, %v, want 0, nil", n, err)
	}
}

func TestDrainScanEventsError(t *testing.T) {
	boom := errors.New("socket closed")
	if _, err := drainScanEvents(&queuedEvents{err: boom}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
