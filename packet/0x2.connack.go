package packet

import (
	"fmt"
	"io"
)

// CONNACK is the server-to-client connection acknowledgement (§3.2). It is
// parsed (never produced by this client-only core) and is always exactly
// ACKPacketSize bytes on the wire.
type CONNACK struct {
	SessionPresent bool
	ReturnCode     ConnectReturnCode
}

func (pkt *CONNACK) Kind() byte { return CONNACK }

func (pkt *CONNACK) Pack(w io.Writer) error {
	sp := byte(0)
	if pkt.SessionPresent {
		sp = 1
	}
	body := []byte{sp, byte(pkt.ReturnCode)}
	header := FixedHeader{Kind: CONNACK, RemainingLength: uint32(len(body))}
	out, err := header.pack(nil)
	if err != nil {
		return err
	}
	out = append(out, body...)
	_, err = w.Write(out)
	return err
}

func decodeCONNACK(_ FixedHeader, body []byte) (*CONNACK, error) {
	if len(body) != 2 {
		return nil, fmt.Errorf("%w: CONNACK body must be 2 bytes", ErrMalformedPacket)
	}
	return &CONNACK{
		SessionPresent: body[0]&0x01 != 0,
		ReturnCode:     ConnectReturnCode(body[1]),
	}, nil
}
