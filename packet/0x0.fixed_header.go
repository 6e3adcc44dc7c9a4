package packet

import "fmt"

// FixedHeader is the two-or-more byte header every MQTT control packet
// starts with.
//
//	Bit     | 7 6 5 4          | 3 2 1 0
//	byte 1  | Packet type      | flags specific to the packet type
//	byte 2+ | Remaining Length (variable byte integer)
type FixedHeader struct {
	Kind   byte // control packet type, bits 7-4 of byte 1
	Dup    uint8
	QoS    uint8
	Retain uint8

	// RemainingLength is the byte count of everything after the fixed
	// header: variable header plus payload.
	RemainingLength uint32
}

func (h FixedHeader) String() string {
	return fmt.Sprintf("%s len=%d", Kind[h.Kind], h.RemainingLength)
}

// pack appends the encoded fixed header to dst.
func (h FixedHeader) pack(dst []byte) ([]byte, error) {
	b := h.Kind<<4 | h.Dup<<3 | h.QoS<<1 | h.Retain
	enc, err := encodeLength(h.RemainingLength)
	if err != nil {
		return nil, err
	}
	dst = append(dst, b)
	return append(dst, enc...), nil
}

// peekFixedHeader parses a fixed header from the start of buf without
// consuming it, returning the header and the number of bytes it occupies.
// It returns errInsufficientBytes if buf does not yet hold a complete fixed
// header.
func peekFixedHeader(buf []byte) (FixedHeader, int, error) {
	if len(buf) < 1 {
		return FixedHeader{}, 0, errInsufficientBytes
	}
	b0 := buf[0]
	h := FixedHeader{
		Kind:   b0 >> 4,
		Dup:    b0 & 0b00001000 >> 3,
		QoS:    b0 & 0b00000110 >> 1,
		Retain: b0 & 0b00000001,
	}

	// Reserved flag bits must match the fixed value for the packet's kind
	// [MQTT-2.2.2-1]; malformed flags are a protocol error [MQTT-2.2.2-2].
	switch h.Kind {
	case PUBLISH:
		if h.QoS == 3 {
			return FixedHeader{}, 0, ErrMalformedPacket
		}
	case PUBREL, SUBSCRIBE, UNSUBSCRIBE:
		if h.Dup != 0 || h.QoS != 1 || h.Retain != 0 {
			return FixedHeader{}, 0, ErrMalformedPacket
		}
	default:
		if h.Dup != 0 || h.QoS != 0 || h.Retain != 0 {
			return FixedHeader{}, 0, ErrMalformedPacket
		}
	}

	remLen, n, err := peekLength(buf[1:])
	if err != nil {
		return FixedHeader{}, 0, err
	}
	h.RemainingLength = remLen
	return h, 1 + n, nil
}
