package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang-io/rawmqtt/transport"
	"go.uber.org/zap"
)

// Client is the synchronous request/response MQTT profile ("simple" in
// SPEC_FULL): every operation blocks until its response (or send) has
// completed, reading and writing directly over one transport connection.
// Safe for use by a single goroutine at a time; Publish calls are not
// pipelined.
type Client struct {
	mu      sync.Mutex
	state   State
	options Options
	halves  transport.Halves
	wire    simpleWire
	alloc   *pktIDAllocator
	log     *zap.Logger
	metrics *Metrics
}

// New constructs a Client in Idle state. Call Connect before Publish.
func New(opts ...Option) *Client {
	options := newOptions(opts...)
	return &Client{
		state:   Idle,
		options: options,
		alloc:   newPktIDAllocator(),
		log:     options.Logger.Named("mqtt.client").With(zap.String("client_id", options.ClientID)),
		metrics: options.Metrics,
	}
}

// State returns the client's current lifecycle position.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the configured transport and performs the CONNECT
// handshake.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return fmt.Errorf("mqtt: Connect called from state %s, want %s", c.state, Idle)
	}
	if !c.options.Version.Supported() {
		return &UnsupportedVersionError{Version: c.options.Version}
	}
	c.state = Connecting

	c.log.Info("dialing", zap.String("transport", c.options.Transport.Kind.String()), zap.String("host", c.options.Host), zap.Int("port", c.options.Port))
	halves, err := transport.Dial(ctx, c.options.Transport, c.options.Host, c.options.Port)
	if err != nil {
		c.log.Error("dial failed", zap.Error(err))
		c.state = Terminated
		return err
	}
	c.halves = halves
	c.wire = simpleWire{halves: halves}

	if err := sessionConnect(c.wire, c.options.ClientID); err != nil {
		c.log.Error("connect refused", zap.Error(err))
		_ = c.halves.Close()
		c.state = Terminated
		return err
	}
	c.state = Connected
	c.log.Info("connected")
	return nil
}

// Publish sends topic/payload at the given QoS, blocking for the PUBACK
// when qos is AtLeastOnce.
func (c *Client) Publish(ctx context.Context, topicName string, payload []byte, qos QoS) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Connected {
		return &ErrNotConnected{State: c.state}
	}

	out, pktID, err := sessionPublish(c.wire, c.alloc, topicName, payload, qos)
	if err != nil {
		c.log.Error("publish failed", zap.String("topic", topicName), zap.Uint16("packet_id", pktID), zap.Error(err))
		return err
	}
	c.metrics.PacketsSent.Inc()
	c.metrics.BytesSent.Add(float64(len(out)))
	if qos == AtLeastOnce {
		c.metrics.PacketsReceived.Inc()
	}
	c.log.Debug("published", zap.String("topic", topicName), zap.String("qos", qos.String()), zap.Uint16("packet_id", pktID))
	return nil
}

// Disconnect sends DISCONNECT best-effort and releases the transport. The
// client is Terminated afterward regardless of send success.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Connected {
		return &ErrNotConnected{State: c.state}
	}
	c.state = Disconnecting
	_, err := sessionDisconnect(c.wire)
	if err != nil {
		c.log.Warn("disconnect send failed", zap.Error(err))
	}
	closeErr := c.halves.Close()
	c.state = Terminated
	c.log.Info("disconnected")
	if err != nil {
		return err
	}
	return closeErr
}
