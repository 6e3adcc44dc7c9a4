package mqtt

import "github.com/golang-io/rawmqtt/packet"

// Version is a closed variant over the MQTT protocol revisions this client
// knows the name of; only V311 is ever dialed.
type Version byte

const (
	V310 Version = Version(packet.VERSION310)
	V311 Version = Version(packet.VERSION311)
	V500 Version = Version(packet.VERSION500)
)

func (v Version) String() string {
	switch v {
	case V310:
		return "3.1"
	case V311:
		return "3.1.1"
	case V500:
		return "5"
	default:
		return "unknown"
	}
}

// Supported reports whether v is the one protocol revision this core
// actually speaks.
func (v Version) Supported() bool { return v == V311 }
