// Package serialport opens and polls the serial link to the touch sensor.
//
// The sensor only ever talks; nothing is written back. Reads are bounded by
// a short timeout so that a poll yields either one byte or nothing.
package serialport

import (
	"io"
	"time"
)

// SerialPorter defines the minimal interface needed for a serial port.
// This abstraction enables unit testing without real serial hardware.
type SerialPorter interface {
	io.Reader
	io.Closer
}

// TimeoutSerialPorter extends SerialPorter with timeout capabilities.
// This is an optional interface that serial ports may implement.
type TimeoutSerialPorter interface {
	SerialPorter
	// SetReadTimeout sets the read timeout for the serial port.
	SetReadTimeout(timeout time.Duration) error
}

// InputResetter is implemented by ports that can discard bytes received but
// not yet read.
type InputResetter interface {
	ResetInputBuffer() error
}

// PortFactory defines an interface for creating serial ports.
// This abstraction enables dependency injection of serial port creation.
type PortFactory interface {
	// Open opens a serial port at the specified path with the given options.
	Open(path string, opts PortOptions) (SerialPorter, error)
}

// PortOpener adapts a plain function to PortFactory.
type PortOpener func(path string, opts PortOptions) (SerialPorter, error)

// Open implements PortFactory.
func (f PortOpener) Open(path string, opts PortOptions) (SerialPorter, error) {
	return f(path, opts)
}
