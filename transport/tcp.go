package transport

import (
	"context"
	"net"
	"strconv"
)

func dialTCPConn(ctx context.Context, d Descriptor, host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectFailedError{Addr: addr, Err: err}
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.SetNoDelay(!d.Nagle); err != nil {
			_ = conn.Close()
			return nil, &ConnectFailedError{Addr: addr, Err: err}
		}
	}
	return conn, nil
}

func dialTCP(ctx context.Context, d Descriptor, host string, port int) (Halves, error) {
	conn, err := dialTCPConn(ctx, d, host, port)
	if err != nil {
		return Halves{}, err
	}
	return Halves{Reader: conn, Writer: conn, Closer: conn}, nil
}
