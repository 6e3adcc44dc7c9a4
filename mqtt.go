// Package mqtt implements a client-side MQTT v3.1.1 publish session over
// pluggable transports (TCP, TLS, QUIC), in two concurrency profiles: a
// synchronous Client and a pipelined StreamClient.
package mqtt

import "github.com/golang-io/rawmqtt/packet"

// Re-exported control packet type constants, used by callers inspecting
// packets returned from the session layer's error types.
const (
	CONNECT    = packet.CONNECT
	CONNACK    = packet.CONNACK
	PUBLISH    = packet.PUBLISH
	PUBACK     = packet.PUBACK
	DISCONNECT = packet.DISCONNECT
)
