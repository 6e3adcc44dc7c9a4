package packet

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func TestDecodeReturnsInsufficientBytesOnPartialFrame(t *testing.T) {
	full := encodePacket(t, &PUBLISH{QoS: 0, Topic: "x", Payload: []byte("hello world")})
	for n := 0; n < len(full); n++ {
		if _, _, err := Decode(full[:n], max4); err != errInsufficientBytes {
			t.Fatalf("Decode(%d bytes): err = %v, want errInsufficientBytes", n, err)
		}
	}
	pkt, consumed, err := Decode(full, max4)
	if err != nil {
		t.Fatalf("Decode(full): %v", err)
	}
	if consumed != len(full) {
		t.Errorf("consumed = %d, want %d", consumed, len(full))
	}
	if _, ok := pkt.(*PUBLISH); !ok {
		t.Fatalf("Decode() = %T, want *PUBLISH", pkt)
	}
}

func TestDecodeRejectsOversizedFrame(t *testing.T) {
	full := encodePacket(t, &PUBLISH{QoS: 0, Topic: "x", Payload: bytes.Repeat([]byte{'a'}, 128)})
	if _, _, err := Decode(full, 16); err != ErrMalformedPacket {
		t.Errorf("err = %v, want ErrMalformedPacket", err)
	}
}

func TestBuildPassesThroughNonCoreKinds(t *testing.T) {
	// PINGREQ: type byte 0xC0, zero-length body — not produced by this
	// core, but must still parse.
	pkt, n, err := Decode([]byte{0xC0, 0x00}, max4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 2 {
		t.Errorf("consumed %d bytes, want 2", n)
	}
	other, ok := pkt.(*Other)
	if !ok {
		t.Fatalf("Decode() = %T, want *Other", pkt)
	}
	if other.Kind() != PINGREQ {
		t.Errorf("Kind() = 0x%X, want PINGREQ", other.Kind())
	}

	var buf bytes.Buffer
	if err := other.Pack(&buf); err != nil {
		t.Fatalf("Other.Pack: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xC0, 0x00}) {
		t.Errorf("Other.Pack() round-trip = % X", buf.Bytes())
	}
}

func TestReadFromReadsExactlyOnePacketAtATime(t *testing.T) {
	var wire bytes.Buffer
	wire.Write(encodePacket(t, &CONNECT{Version: VERSION311, ClientID: "c1"}))
	wire.Write(encodePacket(t, &DISCONNECT{}))

	r := bufio.NewReader(&wire)
	first, err := ReadFrom(r, max4)
	if err != nil {
		t.Fatalf("ReadFrom #1: %v", err)
	}
	if _, ok := first.(*CONNECT); !ok {
		t.Fatalf("ReadFrom #1 = %T, want *CONNECT", first)
	}

	second, err := ReadFrom(r, max4)
	if err != nil {
		t.Fatalf("ReadFrom #2: %v", err)
	}
	if _, ok := second.(*DISCONNECT); !ok {
		t.Fatalf("ReadFrom #2 = %T, want *DISCONNECT", second)
	}
}

func TestReadFromSurfacesEOFOnTruncatedStream(t *testing.T) {
	full := encodePacket(t, &PUBLISH{QoS: 0, Topic: "x", Payload: []byte("hello")})
	r := bufio.NewReader(bytes.NewReader(full[:len(full)-1]))
	if _, err := ReadFrom(r, max4); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestReadFromFromSlowReaderAssemblesFullFrame(t *testing.T) {
	full := encodePacket(t, &PUBLISH{QoS: 1, PacketID: 7, Topic: "sensors/temp", Payload: []byte("21.5")})
	r := bufio.NewReader(&oneByteAtATimeReader{data: full})
	pkt, err := ReadFrom(r, max4)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	publish, ok := pkt.(*PUBLISH)
	if !ok {
		t.Fatalf("ReadFrom() = %T, want *PUBLISH", pkt)
	}
	if publish.Topic != "sensors/temp" || string(publish.Payload) != "21.5" {
		t.Errorf("decoded = %+v", publish)
	}
}

// oneByteAtATimeReader hands back a single byte per Read call, forcing
// ReadFrom's Peek/grow loop to run many times for one frame.
type oneByteAtATimeReader struct {
	data []byte
	pos  int
}

func (r *oneByteAtATimeReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

func encodePacket(t *testing.T, pkt Packet) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	return buf.Bytes()
}
