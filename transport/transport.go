// Package transport dials the byte-oriented streams MQTT client sessions
// run over: plain TCP, TLS-over-TCP, and QUIC, all behind one Descriptor
// and one pair of read/write halves.
package transport

import (
	"context"
	"errors"
	"io"
)

// Kind selects which concrete transport a Descriptor dials.
type Kind int

const (
	TCP Kind = iota
	TLS
	QUIC
)

func (k Kind) String() string {
	switch k {
	case TCP:
		return "tcp"
	case TLS:
		return "tls"
	case QUIC:
		return "quic"
	default:
		return "unknown"
	}
}

// Descriptor is the tagged configuration for one transport dial. Only the
// fields relevant to Kind are consulted.
type Descriptor struct {
	Kind Kind

	// Nagle keeps Nagle's algorithm enabled when true (TCP, TLS). Its
	// absence (false) means TCP_NODELAY is set.
	Nagle bool

	// Insecure skips server certificate verification (TLS, QUIC).
	Insecure bool

	// ServerName is the TLS/QUIC SNI hostname and certificate-verification
	// name.
	ServerName string
}

// Halves is the bidirectional stream split into independently owned read
// and write sides, matching how the sender and receiver tasks each claim
// exclusive ownership of one half.
type Halves struct {
	Reader io.Reader
	Writer io.Writer
	Closer io.Closer
}

// Close releases the underlying connection. Safe to call once.
func (h Halves) Close() error {
	if h.Closer == nil {
		return nil
	}
	return h.Closer.Close()
}

// ErrUnknownKind is returned by Dial for a Descriptor whose Kind isn't one
// of TCP, TLS, QUIC.
var ErrUnknownKind = errors.New("transport: unknown transport kind")

// Dial resolves host:port and establishes a connection per d.Kind,
// returning its split halves.
func Dial(ctx context.Context, d Descriptor, host string, port int) (Halves, error) {
	switch d.Kind {
	case TCP:
		return dialTCP(ctx, d, host, port)
	case TLS:
		return dialTLS(ctx, d, host, port)
	case QUIC:
		return dialQUIC(ctx, d, host, port)
	default:
		return Halves{}, ErrUnknownKind
	}
}
