package packet

import (
	"fmt"
	"io"
)

// PUBLISH carries an application message (§3.3). Only QoS 0 and QoS 1 are
// produced by this core (§1 Non-goals exclude QoS 2); Dup and Retain are
// always false on packets this client sends.
type PUBLISH struct {
	QoS      byte
	PacketID uint16
	Topic    string
	Payload  []byte
}

func (pkt *PUBLISH) Kind() byte { return PUBLISH }

func (pkt *PUBLISH) Pack(w io.Writer) error {
	if pkt.QoS > 1 {
		return fmt.Errorf("packet: PUBLISH QoS %d not supported by this core", pkt.QoS)
	}
	if pkt.QoS > 0 && pkt.PacketID == 0 {
		return fmt.Errorf("packet: PUBLISH at QoS %d requires a non-zero packet identifier", pkt.QoS)
	}

	var body []byte
	body = append(body, encodeUTF8(pkt.Topic)...)
	if pkt.QoS > 0 {
		body = append(body, putU16(pkt.PacketID)...)
	}
	body = append(body, pkt.Payload...)

	header := FixedHeader{Kind: PUBLISH, QoS: pkt.QoS, RemainingLength: uint32(len(body))}
	out, err := header.pack(nil)
	if err != nil {
		return err
	}
	out = append(out, body...)
	_, err = w.Write(out)
	return err
}

func decodePUBLISH(header FixedHeader, body []byte) (*PUBLISH, error) {
	if len(body) < 2 {
		return nil, fmt.Errorf("%w: PUBLISH missing topic", ErrMalformedPacket)
	}
	topicLen := int(u16(body[0:2]))
	if len(body) < 2+topicLen {
		return nil, fmt.Errorf("%w: truncated PUBLISH topic", ErrMalformedPacket)
	}
	pkt := &PUBLISH{QoS: header.QoS, Topic: string(body[2 : 2+topicLen])}
	rest := body[2+topicLen:]

	if header.QoS > 0 {
		if len(rest) < 2 {
			return nil, fmt.Errorf("%w: PUBLISH missing packet identifier", ErrMalformedPacket)
		}
		pkt.PacketID = u16(rest[0:2])
		rest = rest[2:]
	}
	pkt.Payload = append([]byte(nil), rest...)
	return pkt, nil
}
