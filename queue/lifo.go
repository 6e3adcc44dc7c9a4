package queue

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// lifo holds at most one pending buffer. A second Send before the first is
// consumed overwrites it and reports Replaced; the consumer is signalled
// through a binary availability permit rather than a channel, so the
// producer never blocks and a burst of sends collapses to "last one wins."
type lifo struct {
	mu      sync.Mutex
	buf     []byte
	permit  *semaphore.Weighted
	pending bool
}

func newLIFO() *lifo {
	q := &lifo{permit: semaphore.NewWeighted(1)}
	// Drain the permit's initial availability so the first Recv blocks
	// until a Send actually signals it.
	_ = q.permit.Acquire(context.Background(), 1)
	return q
}

func (q *lifo) Send(_ context.Context, buf []byte) (Result, error) {
	q.mu.Lock()
	result := Added
	if q.pending {
		result = Replaced
	}
	q.buf = buf
	q.pending = true
	q.mu.Unlock()

	// Only the transition from empty to pending signals the permit; a
	// Replaced overwrite lands on a slot whose permit is already
	// available, so releasing again would let two Recv calls drain two
	// different buffers out of what must behave as a single slot.
	if result == Added {
		q.permit.Release(1)
	}
	return result, nil
}

func (q *lifo) Recv(ctx context.Context) ([]byte, error) {
	if err := q.permit.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	buf := q.buf
	q.buf = nil
	q.pending = false
	return buf, nil
}
