package transport

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"
	"time"
)

func TestDialTCPEchoesBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(conn, conn)
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	halves, err := Dial(ctx, Descriptor{Kind: TCP, Nagle: false}, host, port)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer halves.Close()

	msg := []byte("ping")
	if _, err := halves.Writer.Write(msg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := make([]byte, len(msg))
	if _, err := io.ReadFull(halves.Reader, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if string(got) != string(msg) {
		t.Errorf("echoed %q, want %q", got, msg)
	}
}

func TestDialUnknownKind(t *testing.T) {
	_, err := Dial(context.Background(), Descriptor{Kind: Kind(99)}, "localhost", 1)
	if err != ErrUnknownKind {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestKindString(t *testing.T) {
	testCases := map[Kind]string{TCP: "tcp", TLS: "tls", QUIC: "quic", Kind(99): "unknown"}
	for k, want := range testCases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestDialTCPConnectFailed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	// Port 0 on dial (as opposed to listen) never succeeds.
	_, err := Dial(ctx, Descriptor{Kind: TCP}, "127.0.0.1", 0)
	if err == nil {
		t.Fatal("expected error dialing port 0")
	}
	var cf *ConnectFailedError
	if !asConnectFailed(err, &cf) {
		t.Errorf("err = %v (%T), want *ConnectFailedError", err, err)
	}
}

func asConnectFailed(err error, target **ConnectFailedError) bool {
	if cf, ok := err.(*ConnectFailedError); ok {
		*target = cf
		return true
	}
	return false
}
