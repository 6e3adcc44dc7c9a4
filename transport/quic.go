package transport

import (
	"context"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/quic-go/quic-go"
)

// disableGSO ensures kernel-offloaded generic segmentation offload is off
// before any QUIC endpoint is created: quic-go's internal GSO path is known
// to misbehave against a number of MQTT brokers' UDP stacks, and quic-go
// gates it on this environment variable rather than a Config field.
var disableGSOOnce sync.Once

func disableGSO() {
	disableGSOOnce.Do(func() {
		_ = os.Setenv("QUIC_GO_DISABLE_GSO", "true")
	})
}

func dialQUIC(ctx context.Context, d Descriptor, host string, port int) (Halves, error) {
	disableGSO()

	udpConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return Halves{}, &QUICError{Err: err}
	}

	remoteAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		_ = udpConn.Close()
		return Halves{}, &QUICError{Err: err}
	}

	tlsConf := clientTLSConfig(d)
	tlsConf.NextProtos = []string{"mqtt"}

	tr := &quic.Transport{Conn: udpConn}
	conn, err := tr.Dial(ctx, remoteAddr, tlsConf, nil)
	if err != nil {
		_ = udpConn.Close()
		return Halves{}, &QUICError{Err: err}
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "stream open failed")
		_ = udpConn.Close()
		return Halves{}, &QUICError{Err: err}
	}

	return Halves{Reader: stream, Writer: stream, Closer: quicCloser{stream: stream, conn: conn, udp: udpConn}}, nil
}

// quicCloser tears down the stream, the QUIC connection, and the ephemeral
// UDP socket it was dialed from, in that order.
type quicCloser struct {
	stream quic.Stream
	conn   quic.Connection
	udp    *net.UDPConn
}

func (c quicCloser) Close() error {
	_ = c.stream.Close()
	_ = c.conn.CloseWithError(0, "")
	return c.udp.Close()
}
