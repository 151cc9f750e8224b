package serialport

import (
	"fmt"

	"go.bug.st/serial"
)

// RealPortFactory opens hardware serial ports through go.bug.st/serial.
type RealPortFactory struct{}

// NewRealPortFactory returns the factory used outside of tests.
func NewRealPortFactory() *RealPortFactory {
	return &RealPortFactory{}
}

// Open implements PortFactory.
func (f *RealPortFactory) Open(path string, opts PortOptions) (SerialPorter, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	return port, nil
}

// Open opens path through factory, applies the read timeout and discards any
// bytes already buffered by the driver, and wraps the port in a Reader.
// A port that cannot be opened or configured is an error; the caller should
// not start polling.
func Open(factory PortFactory, path string, opts PortOptions) (*Reader, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid serial options: %w", err)
	}

	port, err := factory.Open(path, opts)
	if err != nil {
		return nil, err
	}

	if tp, ok := port.(TimeoutSerialPorter); ok {
		if err := tp.SetReadTimeout(opts.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("failed to set read timeout on %s: %w", path, err)
		}
	}
	if rp, ok := port.(InputResetter); ok {
		if err := rp.ResetInputBuffer(); err != nil {
			port.Close()
			return nil, fmt.Errorf("failed to purge input on %s: %w", path, err)
		}
	}

	return NewReader(port), nil
}
