package capture

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Port is the part of a serial port the capture reader needs.
type Port interface {
	io.Reader
	io.Closer
}

// DefaultBaudRate is what the receiver bridge firmware talks at.
const DefaultBaudRate = 115200

// OpenSerial opens the serial port a receiver bridge streams captures on.
func OpenSerial(path string, baud int) (Port, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	return port, nil
}
