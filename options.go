package mqtt

import (
	"github.com/golang-io/rawmqtt/transport"
	"go.uber.org/zap"
)

// Options configures a Client or StreamClient at construction. Its zero
// value is never used directly — New/NewStream always run it through
// newOptions, which fills in the defaults below.
type Options struct {
	Host       string
	Port       int
	ServerName string
	Transport  transport.Descriptor
	Version    Version
	ClientID   string

	// Queue selects the stream intake queue mode: -1 unbounded FIFO, 0
	// single-slot LIFO, n > 0 bounded FIFO of capacity n. Ignored by the
	// synchronous Client.
	Queue int64

	Logger  *zap.Logger
	Metrics *Metrics
}

// Option mutates an Options in place; apply with New/NewStream.
type Option func(*Options)

func newOptions(opts ...Option) Options {
	options := Options{
		Host:     "127.0.0.1",
		Port:     1883,
		Version:  V311,
		ClientID: newClientID(),
		Queue:    1024,
		Transport: transport.Descriptor{
			Kind:  transport.TCP,
			Nagle: true,
		},
	}
	for _, o := range opts {
		o(&options)
	}
	if options.Logger == nil {
		options.Logger = newDefaultLogger()
	}
	if options.Metrics == nil {
		options.Metrics = newMetrics()
	}
	return options
}

// WithAddr sets the host and port to dial.
func WithAddr(host string, port int) Option {
	return func(o *Options) {
		o.Host = host
		o.Port = port
	}
}

// WithServerName sets the TLS/QUIC SNI and verification hostname.
func WithServerName(name string) Option {
	return func(o *Options) {
		o.ServerName = name
		o.Transport.ServerName = name
	}
}

// WithTCP selects the plain-TCP transport. nagle=false disables Nagle's
// algorithm (sets TCP_NODELAY).
func WithTCP(nagle bool) Option {
	return func(o *Options) {
		o.Transport = transport.Descriptor{Kind: transport.TCP, Nagle: nagle, ServerName: o.ServerName}
	}
}

// WithTLS selects the TLS-over-TCP transport.
func WithTLS(nagle, insecure bool) Option {
	return func(o *Options) {
		o.Transport = transport.Descriptor{
			Kind: transport.TLS, Nagle: nagle, Insecure: insecure, ServerName: o.ServerName,
		}
	}
}

// WithQUIC selects the QUIC transport.
func WithQUIC(insecure bool) Option {
	return func(o *Options) {
		o.Transport = transport.Descriptor{Kind: transport.QUIC, Insecure: insecure, ServerName: o.ServerName}
	}
}

// WithVersion sets the protocol version dialed at connect; only V311 is
// ever accepted by Connect, but the option exists so callers can construct
// a client that deliberately fails with UnsupportedVersionError.
func WithVersion(v Version) Option {
	return func(o *Options) { o.Version = v }
}

// WithClientID overrides the generated mqtt-tool-<uuid> identifier.
func WithClientID(id string) Option {
	return func(o *Options) { o.ClientID = id }
}

// WithQueue sets the stream intake queue mode (§4.5): -1 unbounded, 0
// single-slot LIFO, n > 0 bounded FIFO of capacity n.
func WithQueue(n int64) Option {
	return func(o *Options) { o.Queue = n }
}

// WithLogger overrides the default zap production logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMetrics overrides the default, unregistered Metrics instance.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
