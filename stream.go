package mqtt

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/golang-io/rawmqtt/packet"
	"github.com/golang-io/rawmqtt/queue"
	"github.com/golang-io/rawmqtt/transport"
	"go.uber.org/zap"
)

// StreamClient is the pipelined MQTT profile ("stream" in SPEC_FULL):
// StreamPublish submits to an intake queue and returns without waiting for
// the broker, a background task drains acknowledgements and maintains an
// in-flight counter, and Disconnect drains outstanding acks before tearing
// the pipeline down.
type StreamClient struct {
	mu      sync.Mutex
	state   State
	options Options
	alloc   *pktIDAllocator
	log     *zap.Logger
	metrics *Metrics

	wire     *channelWire
	inFlight atomic.Int32

	waitersMu sync.Mutex
	waiters   map[uint16]chan *packet.PUBACK
}

// NewStream constructs a StreamClient in Idle state.
func NewStream(opts ...Option) *StreamClient {
	options := newOptions(opts...)
	return &StreamClient{
		state:   Idle,
		options: options,
		alloc:   newPktIDAllocator(),
		log:     options.Logger.Named("mqtt.stream").With(zap.String("client_id", options.ClientID)),
		metrics: options.Metrics,
		waiters: make(map[uint16]chan *packet.PUBACK),
	}
}

// State returns the client's current lifecycle position.
func (c *StreamClient) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the transport, performs the CONNECT handshake directly
// (before the pipeline exists to own the wire), then spawns the sender and
// receiver tasks plus the ack-draining dispatcher.
func (c *StreamClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return fmt.Errorf("mqtt: Connect called from state %s, want %s", c.state, Idle)
	}
	if !c.options.Version.Supported() {
		return &UnsupportedVersionError{Version: c.options.Version}
	}
	c.state = Connecting

	halves, err := transport.Dial(ctx, c.options.Transport, c.options.Host, c.options.Port)
	if err != nil {
		c.log.Error("dial failed", zap.Error(err))
		c.state = Terminated
		return err
	}

	if err := sessionConnect(simpleWire{halves: halves}, c.options.ClientID); err != nil {
		c.log.Error("connect refused", zap.Error(err))
		_ = halves.Close()
		c.state = Terminated
		return err
	}

	c.wire = newChannelWire(halves, c.options.Queue, c.log)
	go c.dispatchAcks()

	c.state = Connected
	c.log.Info("connected", zap.Int64("queue", c.options.Queue))
	return nil
}

// dispatchAcks is the stream session's ack-draining background reader
// (§4.6): it owns the channelWire's ack queue exclusively, routing each
// frame either to a synchronous Publish call awaiting that packet
// identifier or, failing that, to the in-flight counter.
func (c *StreamClient) dispatchAcks() {
	for {
		buf, err := c.wire.recvAck(c.wire.ctx)
		if err != nil {
			return
		}
		pkt, _, err := packet.Decode(buf, packet.ACKPacketSize)
		if err != nil {
			c.log.Warn("ack frame parse failed", zap.Error(err))
			continue
		}
		c.metrics.PacketsReceived.Inc()

		puback, ok := pkt.(*packet.PUBACK)
		if !ok {
			c.log.Warn("unexpected ack-frame kind", zap.String("kind", packet.Kind[pkt.Kind()]))
			continue
		}

		c.waitersMu.Lock()
		waiter, claimed := c.waiters[puback.PacketID]
		if claimed {
			delete(c.waiters, puback.PacketID)
		}
		c.waitersMu.Unlock()

		if claimed {
			waiter <- puback
			continue
		}

		c.inFlight.Add(-1)
		c.metrics.InFlight.Set(float64(c.inFlight.Load()))
	}
}

// StreamPublish submits a PUBLISH to the intake queue and returns without
// waiting for its PUBACK. The in-flight counter is incremented before
// submission (per the hardened ordering in the design notes) and
// compensated if the enqueue fails or the LIFO queue reports the buffer
// Replaced before it ever reached the wire.
func (c *StreamClient) StreamPublish(topicName string, payload []byte, qos QoS) error {
	if qos == ExactlyOnce {
		return &UnsupportedQoSError{QoS: qos}
	}
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if state != Connected {
		return &ErrNotConnected{State: state}
	}

	var pktID uint16
	if qos == AtLeastOnce {
		pktID = c.alloc.allocate()
	}

	var buf bytes.Buffer
	publish := &packet.PUBLISH{QoS: byte(qos), PacketID: pktID, Topic: topicName, Payload: payload}
	if err := publish.Pack(&buf); err != nil {
		return err
	}

	if qos == AtLeastOnce {
		c.inFlight.Add(1)
		c.metrics.InFlight.Set(float64(c.inFlight.Load()))
	}

	result, err := c.wire.submit(buf.Bytes())
	if err != nil {
		if qos == AtLeastOnce {
			c.inFlight.Add(-1)
			c.metrics.InFlight.Set(float64(c.inFlight.Load()))
		}
		return err
	}
	if result == queue.Replaced {
		c.metrics.EnqueueReplaced.Inc()
		if qos == AtLeastOnce {
			c.inFlight.Add(-1)
			c.metrics.InFlight.Set(float64(c.inFlight.Load()))
		}
		return nil
	}

	c.metrics.PacketsSent.Inc()
	c.metrics.BytesSent.Add(float64(buf.Len()))
	return nil
}

// Publish is the stream session's synchronous, ack-confirmed publish
// (§4.6): it still goes through the intake queue — the sender task is the
// pipeline's sole writer — but registers a waiter so dispatchAcks can
// deliver its PUBACK directly instead of folding it into in-flight
// bookkeeping.
func (c *StreamClient) Publish(ctx context.Context, topicName string, payload []byte, qos QoS) error {
	if qos == ExactlyOnce {
		return &UnsupportedQoSError{QoS: qos}
	}
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if state != Connected {
		return &ErrNotConnected{State: state}
	}

	var pktID uint16
	var waitCh chan *packet.PUBACK
	if qos == AtLeastOnce {
		pktID = c.alloc.allocate()
		waitCh = make(chan *packet.PUBACK, 1)
		c.waitersMu.Lock()
		c.waiters[pktID] = waitCh
		c.waitersMu.Unlock()
	}

	var buf bytes.Buffer
	publish := &packet.PUBLISH{QoS: byte(qos), PacketID: pktID, Topic: topicName, Payload: payload}
	if err := publish.Pack(&buf); err != nil {
		return err
	}

	if _, err := c.wire.submit(buf.Bytes()); err != nil {
		return err
	}
	c.metrics.PacketsSent.Inc()
	c.metrics.BytesSent.Add(float64(buf.Len()))

	if qos == AtMostOnce {
		return nil
	}

	select {
	case <-ctx.Done():
		c.waitersMu.Lock()
		delete(c.waiters, pktID)
		c.waitersMu.Unlock()
		return ctx.Err()
	case puback := <-waitCh:
		if puback.PacketID != pktID {
			return &MismatchedAckError{Sent: pktID, Received: puback.PacketID}
		}
		return nil
	}
}

// Disconnect busy-waits cooperatively until the in-flight counter reaches
// 0 (or ctx ends), submits a best-effort DISCONNECT, then cancels the
// channel network and waits for both its tasks to return.
func (c *StreamClient) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Connected {
		c.mu.Unlock()
		return &ErrNotConnected{State: c.state}
	}
	c.state = Disconnecting
	c.mu.Unlock()

drain:
	for c.inFlight.Load() > 0 {
		select {
		case <-ctx.Done():
			break drain
		default:
			runtime.Gosched()
		}
	}

	var buf bytes.Buffer
	if err := (&packet.DISCONNECT{}).Pack(&buf); err == nil {
		if _, err := c.wire.submit(buf.Bytes()); err != nil {
			c.log.Warn("disconnect send failed", zap.Error(err))
		}
	}

	err := c.wire.close()
	c.mu.Lock()
	c.state = Terminated
	c.mu.Unlock()
	c.log.Info("disconnected")
	return err
}
