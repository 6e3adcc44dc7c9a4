package packet

import (
	"fmt"
	"io"
)

// CONNECT is the client-to-server connection request (MQTT v3.1.1 §3.1).
// This core only ever produces the shape the session layer needs: clean
// session, zero keep-alive, no will, no username/password (§4.1 of the
// spec) — those fields aren't modeled at all, matching the teacher's
// per-kind-file layout but trimmed to what's actually serialized.
type CONNECT struct {
	Version  byte
	ClientID string
}

func (pkt *CONNECT) Kind() byte { return CONNECT }

func (pkt *CONNECT) Pack(w io.Writer) error {
	var body []byte
	body = append(body, NAME...)
	body = append(body, pkt.Version)

	// Connect flags: UsernameFlag=0, PasswordFlag=0, WillRetain=0, WillQoS=0,
	// WillFlag=0, CleanSession=1, Reserved=0.
	const cleanSessionFlag = 1 << 1
	body = append(body, cleanSessionFlag)

	body = append(body, putU16(0)...) // keep alive = 0 (§4.1)
	body = append(body, encodeUTF8(pkt.ClientID)...)

	header := FixedHeader{Kind: CONNECT, RemainingLength: uint32(len(body))}
	out, err := header.pack(nil)
	if err != nil {
		return err
	}
	out = append(out, body...)
	_, err = w.Write(out)
	return err
}

func decodeCONNECT(_ FixedHeader, body []byte) (*CONNECT, error) {
	if len(body) < 10 {
		return nil, fmt.Errorf("%w: CONNECT body too short", ErrMalformedPacket)
	}
	if string(body[0:6]) != string(NAME) {
		return nil, fmt.Errorf("%w: bad protocol name", ErrMalformedPacket)
	}
	version := body[6]
	// body[7] is the connect flags byte; keep-alive at body[8:10] — neither
	// is consumed by anything downstream of this core.
	rest := body[10:]
	if len(rest) < 2 {
		return nil, fmt.Errorf("%w: missing client identifier", ErrMalformedPacket)
	}
	idLen := int(u16(rest[0:2]))
	if len(rest) < 2+idLen {
		return nil, fmt.Errorf("%w: truncated client identifier", ErrMalformedPacket)
	}
	return &CONNECT{Version: version, ClientID: string(rest[2 : 2+idLen])}, nil
}
