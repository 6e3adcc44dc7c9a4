package mqtt

import (
	"context"
	"io"

	"github.com/golang-io/rawmqtt/packet"
	"github.com/golang-io/rawmqtt/queue"
	"github.com/golang-io/rawmqtt/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// channelWire is the pipelined transport of §4.5: a sender task drains an
// intake queue onto the write half, a receiver task drains
// packet.ACKPacketSize-byte frames off the read half onto an unbounded ack
// queue, and firing cancel tears both down at their next yield point by
// closing the underlying connection out from under whichever blocking
// read or write they're suspended on.
type channelWire struct {
	halves transport.Halves
	intake queue.Queue
	acks   queue.Queue

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	log *zap.Logger
}

func newChannelWire(halves transport.Halves, queueSize int64, log *zap.Logger) *channelWire {
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)
	w := &channelWire{
		halves: halves,
		intake: queue.New(queueSize),
		acks:   queue.New(-1),
		ctx:    ctx,
		cancel: cancel,
		group:  group,
		log:    log,
	}

	// Watch gctx, not ctx: gctx is cancelled both when close() fires
	// cancel() explicitly and when either task returns a fatal error
	// (errgroup's own propagation), so this is the one signal that
	// reliably unblocks whichever task is stuck in a blocking Read or
	// Write the other task's failure didn't touch.
	go func() {
		<-gctx.Done()
		_ = halves.Close()
	}()

	group.Go(func() error { return w.sendLoop(gctx) })
	group.Go(func() error { return w.recvLoop(gctx) })
	return w
}

func (w *channelWire) sendLoop(ctx context.Context) error {
	for {
		buf, err := w.intake.Recv(ctx)
		if err != nil {
			return nil
		}
		if _, err := w.halves.Writer.Write(buf); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.log.Error("sender task write failed", zap.Error(err))
			return err
		}
	}
}

func (w *channelWire) recvLoop(ctx context.Context) error {
	for {
		buf := make([]byte, packet.ACKPacketSize)
		if _, err := io.ReadFull(w.halves.Reader, buf); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.log.Debug("receiver task read ended", zap.Error(err))
			return err
		}
		if _, err := w.acks.Send(ctx, buf); err != nil {
			return nil
		}
	}
}

// submit enqueues buf for the sender task.
func (w *channelWire) submit(buf []byte) (queue.Result, error) {
	return w.intake.Send(w.ctx, buf)
}

// recvAck blocks for the next ack frame read off the wire.
func (w *channelWire) recvAck(ctx context.Context) ([]byte, error) {
	return w.acks.Recv(ctx)
}

// close fires the cancellation signal and waits for both tasks to return.
func (w *channelWire) close() error {
	w.cancel()
	return w.group.Wait()
}
