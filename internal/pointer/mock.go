package pointer

import (
	"fmt"
	"sync"
)

// Op is one recorded sink call.
type Op struct {
	Kind string // "move", "press" or "release"
	X, Y int
}

func (o Op) String() string {
	if o.Kind == "move" {
		return fmt.Sprintf("move(%d,%d)", o.X, o.Y)
	}
	return o.Kind
}

// RecordingSink records every call for assertions in tests.
type RecordingSink struct {
	mu  sync.Mutex
	ops []Op

	// Err, when set, is returned by every call after it is recorded.
	Err error
}

func (s *RecordingSink) record(op Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
	return s.Err
}

func (s *RecordingSink) MoveTo(x, y int) error { return s.record(Op{Kind: "move", X: x, Y: y}) }
func (s *RecordingSink) Press() error          { return s.record(Op{Kind: "press"}) }
func (s *RecordingSink) Release() error        { return s.record(Op{Kind: "release"}) }

// Ops returns a copy of the recorded calls.
func (s *RecordingSink) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Op(nil), s.ops...)
}
