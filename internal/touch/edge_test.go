package touch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestButtonState_Next(t *testing.T) {
	cases := []struct {
		held, active bool
		wantHeld     bool
		want         Transition
	}{
		{false, false, false, NoTransition},
		{false, true, true, Press},
		{true, true, true, NoTransition},
		{true, false, false, Release},
	}
	for _, c := range cases {
		s, tr := ButtonState{Held: c.held}.Next(c.active)
		if s.Held != c.wantHeld || tr != c.want {
			t.Errorf("held=%v active=%v: got (%v, %v), want (%v, %v)", c.held, c.active, s.Held, tr, c.wantHeld, c.want)
		}
	}
}

func TestButtonState_Alternation(t *testing.T) {
	var s ButtonState
	var got []Transition
	for _, active := range []bool{false, true, true, false, true} {
		var tr Transition
		s, tr = s.Next(active)
		if tr != NoTransition {
			got = append(got, tr)
		}
	}
	want := []Transition{Press, Release, Press}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestButtonState_NeverRepeats(t *testing.T) {
	var s ButtonState
	last := NoTransition
	for i := 0; i < 500; i++ {
		var tr Transition
		s, tr = s.Next((i*7)%5 < 2)
		if tr == NoTransition {
			continue
		}
		if tr == last {
			t.Fatalf("step %d: %v emitted twice in a row", i, tr)
		}
		last = tr
	}
}

func TestTransitionString(t *testing.T) {
	for tr, want := range map[Transition]string{NoTransition: "none", Press: "press", Release: "release"} {
		if tr.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(tr), tr.String(), want)
		}
	}
}
