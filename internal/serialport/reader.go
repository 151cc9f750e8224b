package serialport

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrPortClosed is returned by PollByte after Close.
var ErrPortClosed = errors.New("serial port closed")

// Reader polls a port one byte at a time.
type Reader struct {
	port SerialPorter
	buf  [1]byte

	mu     sync.Mutex
	closed bool
}

// NewReader wraps an already configured port.
func NewReader(port SerialPorter) *Reader {
	return &Reader{port: port}
}

// PollByte performs one bounded read. It returns ok=false with a nil error
// when the read timed out with nothing available. io.EOF is passed through
// unwrapped for finite sources; any other read failure is wrapped.
func (r *Reader) PollByte() (byte, bool, error) {
	if r.isClosed() {
		return 0, false, ErrPortClosed
	}
	n, err := r.port.Read(r.buf[:])
	if n == 1 {
		return r.buf[0], true, nil
	}
	if err == nil {
		return 0, false, nil
	}
	if errors.Is(err, io.EOF) {
		return 0, false, io.EOF
	}
	if r.isClosed() {
		return 0, false, ErrPortClosed
	}
	return 0, false, fmt.Errorf("serial read failed: %w", err)
}

// Close closes the underlying port. A PollByte blocked in the driver
// returns once the port is closed.
func (r *Reader) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()
	return r.port.Close()
}

func (r *Reader) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
