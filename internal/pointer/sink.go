// Package pointer injects absolute pointer motion and left-button events
// into the host, and discovers the screen geometry those coordinates are
// scaled to.
package pointer

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupported is returned when a sink is not available on this platform.
var ErrUnsupported = errors.New("pointer sink not supported on this platform")

// Sink receives absolute screen coordinates and button edges.
type Sink interface {
	MoveTo(x, y int) error
	Press() error
	Release() error
}

// Kind names a sink implementation selectable from configuration.
type Kind string

const (
	KindUinput Kind = "uinput"
	KindLog    Kind = "log"
)

// ParseKind validates a sink name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindUinput, KindLog:
		return k, nil
	default:
		return "", fmt.Errorf("unknown pointer sink %q: expected %q or %q", s, KindUinput, KindLog)
	}
}

// Open creates the sink of the given kind sized to g. The returned closer
// releases any OS resources held by the sink.
func Open(kind Kind, g Geometry) (Sink, io.Closer, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	switch kind {
	case KindLog:
		return NewLogSink(), nopCloser{}, nil
	case KindUinput:
		s, err := NewUinputSink(g)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown pointer sink %q", kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
