package mqtt

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// newClientID generates a per-instance MQTT Client Identifier of the form
// mqtt-tool-<uuid>.
func newClientID() string {
	return "mqtt-tool-" + uuid.New().String()
}

// pktIDAllocator issues non-zero 16-bit packet identifiers for one
// session, wrapping 65535 back to 1. It is owned by a single Client or
// StreamClient instance — never a package-level global, since the
// identifier space is per session, not process-wide.
type pktIDAllocator struct {
	next atomic.Uint32
}

func newPktIDAllocator() *pktIDAllocator {
	a := &pktIDAllocator{}
	a.next.Store(1)
	return a
}

// allocate returns the next packet identifier, skipping 0.
func (a *pktIDAllocator) allocate() uint16 {
	for {
		v := a.next.Add(1) - 1
		id := uint16(v % 65536)
		if id != 0 {
			return id
		}
		// v % 65536 == 0 lands on the reserved identifier; the next
		// Add will move past it to 1.
	}
}
