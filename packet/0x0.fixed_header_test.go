package packet

import "testing"

func TestFixedHeaderPackPeekRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		header FixedHeader
	}{
		{"Connect", FixedHeader{Kind: CONNECT, RemainingLength: 12}},
		{"PublishQoS1", FixedHeader{Kind: PUBLISH, QoS: 1, RemainingLength: 300}},
		{"Disconnect", FixedHeader{Kind: DISCONNECT}},
		{"LargeRemainingLength", FixedHeader{Kind: PUBLISH, RemainingLength: 2097151}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := tc.header.pack(nil)
			if err != nil {
				t.Fatalf("pack: %v", err)
			}
			got, n, err := peekFixedHeader(encoded)
			if err != nil {
				t.Fatalf("peekFixedHeader: %v", err)
			}
			if n != len(encoded) {
				t.Errorf("consumed %d bytes, want %d", n, len(encoded))
			}
			if got != tc.header {
				t.Errorf("peekFixedHeader() = %+v, want %+v", got, tc.header)
			}
		})
	}
}

func TestPeekFixedHeaderInsufficientBytes(t *testing.T) {
	if _, _, err := peekFixedHeader(nil); err != errInsufficientBytes {
		t.Errorf("empty buffer: err = %v, want errInsufficientBytes", err)
	}
	// A fixed-header type byte followed by a continuation-flagged length
	// byte with nothing after it must also report insufficient bytes.
	if _, _, err := peekFixedHeader([]byte{CONNECT << 4, 0x80}); err != errInsufficientBytes {
		t.Errorf("truncated length: err = %v, want errInsufficientBytes", err)
	}
}

func TestPeekFixedHeaderRejectsBadPublishFlags(t *testing.T) {
	// QoS bits 0b11 are invalid on any packet [MQTT-2.2.2-1].
	b := PUBLISH<<4 | 0b0110
	if _, _, err := peekFixedHeader([]byte{b, 0x00}); err != ErrMalformedPacket {
		t.Errorf("err = %v, want ErrMalformedPacket", err)
	}
}

func TestPeekFixedHeaderRejectsNonZeroReservedFlags(t *testing.T) {
	// CONNECT's flags nibble is fixed at 0000.
	b := CONNECT<<4 | 0b0001
	if _, _, err := peekFixedHeader([]byte{b, 0x00}); err != ErrMalformedPacket {
		t.Errorf("err = %v, want ErrMalformedPacket", err)
	}
}
