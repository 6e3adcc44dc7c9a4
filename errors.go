package mqtt

import (
	"fmt"

	"github.com/golang-io/rawmqtt/packet"
)

// UnsupportedVersionError is raised when a caller requests a protocol
// revision other than v3.1.1.
type UnsupportedVersionError struct {
	Version Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("mqtt: unsupported protocol version %s", e.Version)
}

// UnsupportedQoSError is raised by Publish/StreamPublish for QoS 2.
type UnsupportedQoSError struct {
	QoS QoS
}

func (e *UnsupportedQoSError) Error() string {
	return fmt.Sprintf("mqtt: unsupported QoS %s", e.QoS)
}

// ConnectionRefusedError wraps a non-Success CONNACK return code.
type ConnectionRefusedError struct {
	Code packet.ConnectReturnCode
}

func (e *ConnectionRefusedError) Error() string {
	return fmt.Sprintf("mqtt: connection refused: %s", e.Code)
}

// UnexpectedPacketError is raised when a CONNACK or PUBACK was expected but
// some other packet kind was read instead.
type UnexpectedPacketError struct {
	Want string
	Got  packet.Packet
}

func (e *UnexpectedPacketError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("mqtt: expected %s, got nothing", e.Want)
	}
	return fmt.Sprintf("mqtt: expected %s, got %s", e.Want, packet.Kind[e.Got.Kind()])
}

// MismatchedAckError is raised when a PUBACK's packet identifier doesn't
// match the one the client sent.
type MismatchedAckError struct {
	Sent     uint16
	Received uint16
}

func (e *MismatchedAckError) Error() string {
	return fmt.Sprintf("mqtt: mismatched ack: sent packet id %d, received %d", e.Sent, e.Received)
}

// ErrNotConnected is returned by operations that require Connected state
// when the client is Idle, Connecting, Disconnecting, or Terminated.
type ErrNotConnected struct {
	State State
}

func (e *ErrNotConnected) Error() string {
	return fmt.Sprintf("mqtt: not connected (state=%s)", e.State)
}

// Note: transport.ConnectFailedError, transport.TLSError, and
// transport.QUICError (the ConnectFailed/TlsError/QuicError kinds) are
// surfaced unwrapped from the transport package; packet.ErrMalformedPacket
// is surfaced unwrapped from the packet package; IoError is the underlying
// io.Reader/io.Writer error, wrapped with %w by simpleWire ("mqtt: read: ",
// "mqtt: write: "). EnqueueReplaced isn't an error
// at all here — see queue.Replaced, which StreamPublish treats as a
// successful drop rather than wrapping in an error type.
