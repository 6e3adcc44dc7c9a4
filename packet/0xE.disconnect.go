package packet

import (
	"fmt"
	"io"
)

// DISCONNECT is the one-byte-type, zero-length-body notification that ends
// a session cleanly (§3.14): the two bytes 0xE0 0x00 and nothing else.
type DISCONNECT struct{}

func (pkt *DISCONNECT) Kind() byte { return DISCONNECT }

func (pkt *DISCONNECT) Pack(w io.Writer) error {
	_, err := w.Write([]byte{DISCONNECT << 4, 0x00})
	return err
}

func decodeDISCONNECT(_ FixedHeader, body []byte) (*DISCONNECT, error) {
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: DISCONNECT must have no payload", ErrMalformedPacket)
	}
	return &DISCONNECT{}, nil
}
