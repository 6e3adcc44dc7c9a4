package mqtt

import (
	"bytes"

	"github.com/golang-io/rawmqtt/packet"
)

// sessionConnect performs the CONNECT/CONNACK handshake over w: send a
// CONNECT, read exactly packet.ACKPacketSize bytes, require CONNACK with
// return code Accepted.
func sessionConnect(w wire, clientID string) error {
	var buf bytes.Buffer
	connect := &packet.CONNECT{Version: packet.VERSION311, ClientID: clientID}
	if err := connect.Pack(&buf); err != nil {
		return err
	}
	if err := w.send(buf.Bytes()); err != nil {
		return err
	}

	ack, err := w.recv(packet.ACKPacketSize)
	if err != nil {
		return err
	}
	pkt, _, err := packet.Decode(ack, packet.ACKPacketSize)
	if err != nil {
		return err
	}
	connack, ok := pkt.(*packet.CONNACK)
	if !ok {
		return &UnexpectedPacketError{Want: "CONNACK", Got: pkt}
	}
	if connack.ReturnCode != packet.Accepted {
		return &ConnectionRefusedError{Code: connack.ReturnCode}
	}
	return nil
}

// sessionPublish builds, serializes, and sends a PUBLISH over w; for QoS 1
// it also waits for the matching PUBACK. It returns the buffer it sent so
// callers driving a pipelined wire can reuse the exact same serialization.
func sessionPublish(w wire, alloc *pktIDAllocator, topicName string, payload []byte, qos QoS) ([]byte, uint16, error) {
	if qos == ExactlyOnce {
		return nil, 0, &UnsupportedQoSError{QoS: qos}
	}

	var pktID uint16
	if qos == AtLeastOnce {
		pktID = alloc.allocate()
	}

	var buf bytes.Buffer
	publish := &packet.PUBLISH{QoS: byte(qos), PacketID: pktID, Topic: topicName, Payload: payload}
	if err := publish.Pack(&buf); err != nil {
		return nil, 0, err
	}
	out := buf.Bytes()

	if err := w.send(out); err != nil {
		return out, pktID, err
	}
	if qos == AtMostOnce {
		return out, pktID, nil
	}

	ack, err := w.recv(packet.ACKPacketSize)
	if err != nil {
		return out, pktID, err
	}
	pkt, _, err := packet.Decode(ack, packet.ACKPacketSize)
	if err != nil {
		return out, pktID, err
	}
	puback, ok := pkt.(*packet.PUBACK)
	if !ok {
		return out, pktID, &UnexpectedPacketError{Want: "PUBACK", Got: pkt}
	}
	if puback.PacketID != pktID {
		return out, pktID, &MismatchedAckError{Sent: pktID, Received: puback.PacketID}
	}
	return out, pktID, nil
}

// sessionDisconnect serializes and sends a DISCONNECT, best-effort: the
// caller decides whether to propagate a send failure.
func sessionDisconnect(w wire) ([]byte, error) {
	var buf bytes.Buffer
	if err := (&packet.DISCONNECT{}).Pack(&buf); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	return out, w.send(out)
}
