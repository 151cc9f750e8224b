//go:build !linux

package pointer

// UinputSink is only available on Linux.
type UinputSink struct{}

// NewUinputSink always fails off Linux; use the log sink instead.
func NewUinputSink(Geometry) (*UinputSink, error) {
	return nil, ErrUnsupported
}

func (*UinputSink) MoveTo(int, int) error { return ErrUnsupported }
func (*UinputSink) Press() error          { return ErrUnsupported }
func (*UinputSink) Release() error        { return ErrUnsupported }
func (*UinputSink) Close() error          { return nil }
