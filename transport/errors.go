package transport

import "fmt"

// ConnectFailedError wraps a TCP/QUIC dial or DNS resolution failure.
type ConnectFailedError struct {
	Addr string
	Err  error
}

func (e *ConnectFailedError) Error() string {
	return fmt.Sprintf("transport: connect to %s failed: %v", e.Addr, e.Err)
}

func (e *ConnectFailedError) Unwrap() error { return e.Err }

// TLSError wraps a TLS handshake or verifier-construction failure.
type TLSError struct {
	Err error
}

func (e *TLSError) Error() string { return fmt.Sprintf("transport: tls error: %v", e.Err) }

func (e *TLSError) Unwrap() error { return e.Err }

// QUICError wraps a QUIC endpoint, connect, or stream-open failure.
type QUICError struct {
	Err error
}

func (e *QUICError) Error() string { return fmt.Sprintf("transport: quic error: %v", e.Err) }

func (e *QUICError) Unwrap() error { return e.Err }
