package packet

import (
	"fmt"
	"io"
)

// PUBACK acknowledges a QoS 1 PUBLISH (§3.4). Always ACKPacketSize bytes:
// fixed header (2 bytes) + packet identifier (2 bytes).
type PUBACK struct {
	PacketID uint16
}

func (pkt *PUBACK) Kind() byte { return PUBACK }

func (pkt *PUBACK) Pack(w io.Writer) error {
	body := putU16(pkt.PacketID)
	header := FixedHeader{Kind: PUBACK, RemainingLength: uint32(len(body))}
	out, err := header.pack(nil)
	if err != nil {
		return err
	}
	out = append(out, body...)
	_, err = w.Write(out)
	return err
}

func decodePUBACK(_ FixedHeader, body []byte) (*PUBACK, error) {
	if len(body) != 2 {
		return nil, fmt.Errorf("%w: PUBACK body must be 2 bytes", ErrMalformedPacket)
	}
	return &PUBACK{PacketID: u16(body)}, nil
}
