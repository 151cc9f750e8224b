package touch

// Transition is the button edge emitted for a frame, if any.
type Transition int

const (
	NoTransition Transition = iota
	Press
	Release
)

func (t Transition) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "none"
	}
}

// ButtonState records whether a press has been emitted without a matching
// release. The zero value is released.
type ButtonState struct {
	Held bool
}

// Next applies one frame's touch level and returns the new state along with
// the edge to emit. Press and Release strictly alternate.
func (s ButtonState) Next(active bool) (ButtonState, Transition) {
	switch {
	case active && !s.Held:
		return ButtonState{Held: true}, Press
	case !active && s.Held:
		return ButtonState{Held: false}, Release
	default:
		return s, NoTransition
	}
}
