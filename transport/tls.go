package transport

import (
	"context"
	"crypto/tls"
)

func dialTLS(ctx context.Context, d Descriptor, host string, port int) (Halves, error) {
	conn, err := dialTCPConn(ctx, Descriptor{Kind: TCP, Nagle: d.Nagle}, host, port)
	if err != nil {
		return Halves{}, err
	}

	tlsConn := tls.Client(conn, clientTLSConfig(d))
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return Halves{}, &TLSError{Err: err}
	}
	return Halves{Reader: tlsConn, Writer: tlsConn, Closer: tlsConn}, nil
}
