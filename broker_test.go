package mqtt

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/golang-io/rawmqtt/packet"
)

// fakeBroker is a minimal in-process MQTT listener used to exercise Client
// and StreamClient without a real broker: it serves every connection it
// accepts, answers CONNECT with an Accepted CONNACK, and answers every QoS 1
// PUBLISH with a matching PUBACK. QoS 0 PUBLISH frames are observed but
// never acknowledged, matching real broker behavior.
type fakeBroker struct {
	t        *testing.T
	listener net.Listener

	mu       sync.Mutex
	received []*packet.PUBLISH
}

func newFakeBroker(t *testing.T) *fakeBroker {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	b := &fakeBroker{t: t, listener: ln}
	go b.acceptLoop()
	return b
}

func (b *fakeBroker) addr() (string, int) {
	tcpAddr := b.listener.Addr().(*net.TCPAddr)
	return tcpAddr.IP.String(), tcpAddr.Port
}

func (b *fakeBroker) close() {
	_ = b.listener.Close()
}

func (b *fakeBroker) publishedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.received)
}

func (b *fakeBroker) acceptLoop() {
	for {
		conn, err := b.listener.Accept()
		if err != nil {
			return
		}
		go b.serve(conn)
	}
}

func (b *fakeBroker) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		pkt, err := packet.ReadFrom(r, 256*1024)
		if err != nil {
			return
		}
		switch p := pkt.(type) {
		case *packet.CONNECT:
			connack := &packet.CONNACK{ReturnCode: packet.Accepted}
			if err := writePacket(conn, connack); err != nil {
				return
			}
		case *packet.PUBLISH:
			b.mu.Lock()
			b.received = append(b.received, p)
			b.mu.Unlock()
			if p.QoS == 1 {
				puback := &packet.PUBACK{PacketID: p.PacketID}
				if err := writePacket(conn, puback); err != nil {
					return
				}
			}
		case *packet.DISCONNECT:
			return
		default:
			// Non-goals for this core; ignore.
		}
	}
}

func writePacket(w io.Writer, pkt packet.Packet) error {
	return pkt.Pack(w)
}

// refusingBroker accepts a connection and immediately answers CONNECT with
// a non-Accepted CONNACK, then closes.
type refusingBroker struct {
	listener net.Listener
	code     packet.ConnectReturnCode
}

func newRefusingBroker(t *testing.T, code packet.ConnectReturnCode) *refusingBroker {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	b := &refusingBroker{listener: ln, code: code}
	go b.acceptLoop()
	return b
}

func (b *refusingBroker) addr() (string, int) {
	tcpAddr := b.listener.Addr().(*net.TCPAddr)
	return tcpAddr.IP.String(), tcpAddr.Port
}

func (b *refusingBroker) close() { _ = b.listener.Close() }

func (b *refusingBroker) acceptLoop() {
	conn, err := b.listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	r := bufio.NewReader(conn)
	if _, err := packet.ReadFrom(r, 256*1024); err != nil && !errors.Is(err, io.EOF) {
		return
	}
	_ = (&packet.CONNACK{ReturnCode: b.code}).Pack(conn)
}
