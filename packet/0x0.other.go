package packet

import "io"

// Other is the generic representation for every control packet kind this
// core parses but never produces: PUBREC, PUBREL, PUBCOMP, SUBSCRIBE,
// SUBACK, UNSUBSCRIBE, UNSUBACK, PINGREQ, PINGRESP, AUTH, and the reserved
// kind 0x0. It preserves the fixed header and raw body verbatim so a caller
// that does need to inspect one (a future subscribe path, say) isn't
// blocked by this core's Non-goals.
type Other struct {
	FixedHeader FixedHeader
	Payload     []byte
}

func (pkt *Other) Kind() byte { return pkt.FixedHeader.Kind }

func (pkt *Other) Pack(w io.Writer) error {
	header := pkt.FixedHeader
	header.RemainingLength = uint32(len(pkt.Payload))
	out, err := header.pack(nil)
	if err != nil {
		return err
	}
	out = append(out, pkt.Payload...)
	_, err = w.Write(out)
	return err
}
