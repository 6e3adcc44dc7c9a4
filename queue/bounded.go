package queue

import "context"

// bounded is a FIFO of fixed capacity; Send blocks (respecting ctx) once
// full, giving the producer real back-pressure.
type bounded struct {
	ch chan []byte
}

func newBounded(capacity int) *bounded {
	return &bounded{ch: make(chan []byte, capacity)}
}

func (q *bounded) Send(ctx context.Context, buf []byte) (Result, error) {
	select {
	case q.ch <- buf:
		return Added, nil
	case <-ctx.Done():
		return Added, ctx.Err()
	}
}

func (q *bounded) Recv(ctx context.Context) ([]byte, error) {
	select {
	case buf := <-q.ch:
		return buf, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
