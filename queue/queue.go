// Package queue implements the three intake queue modes a stream session
// can submit outbound buffers through: a bounded FIFO, an unbounded FIFO,
// and a single-slot, overwrite-on-full LIFO.
package queue

import "context"

// Result reports what Send did with a buffer.
type Result int

const (
	// Added means the buffer was accepted without displacing anything.
	Added Result = iota
	// Replaced means the buffer overwrote a not-yet-consumed buffer (LIFO
	// only); the caller must treat the displaced buffer as dropped.
	Replaced
)

func (r Result) String() string {
	if r == Replaced {
		return "Replaced"
	}
	return "Added"
}

// Queue is the single-producer, single-consumer handoff between a stream
// session's producer and its sender task.
type Queue interface {
	// Send submits buf. It never blocks the caller beyond queue capacity
	// back-pressure (bounded FIFO) or never at all (unbounded FIFO, LIFO).
	Send(ctx context.Context, buf []byte) (Result, error)

	// Recv blocks until a buffer is available or ctx is done.
	Recv(ctx context.Context) ([]byte, error)
}

// New constructs the queue mode selected by n, per the convention:
// n == -1 unbounded FIFO, n == 0 single-slot LIFO, n > 0 bounded FIFO of
// capacity n.
func New(n int64) Queue {
	switch {
	case n < 0:
		return newUnbounded()
	case n == 0:
		return newLIFO()
	default:
		return newBounded(int(n))
	}
}
