package mqtt

import (
	"fmt"
	"io"

	"github.com/golang-io/rawmqtt/transport"
)

// simpleWire is the direct synchronous adapter of §4.4: send writes the
// entire buffer, recv reads exactly n bytes.
type simpleWire struct {
	halves transport.Halves
}

func (w simpleWire) send(buf []byte) error {
	_, err := w.halves.Writer.Write(buf)
	if err != nil {
		return fmt.Errorf("mqtt: write: %w", err)
	}
	return nil
}

func (w simpleWire) recv(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(w.halves.Reader, buf); err != nil {
		return nil, fmt.Errorf("mqtt: read: %w", err)
	}
	return buf, nil
}
