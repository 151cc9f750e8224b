package touch

// Sample is everything derived from one valid frame.
type Sample struct {
	Frame      Frame
	Axes       Axes
	Estimate   Estimate
	Transition Transition
}

// Decoder owns the two pieces of cross-frame state: the sliding window and
// the button state. It is not safe for concurrent use; a single read loop
// owns it.
type Decoder struct {
	window Window
	button ButtonState
}

// NewDecoder returns a decoder with an empty window and the button released.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed pushes one byte and attempts a validation of the resulting window.
// When the window holds a valid frame the full pipeline runs and the window
// is cleared so none of its bytes can take part in a later frame.
func (d *Decoder) Feed(b byte) (Sample, bool) {
	f := d.window.Push(b)
	if !Validate(f) {
		return Sample{}, false
	}
	d.window.Reset()

	axes := DecodeAxes(f)
	est := axes.Estimate()
	var tr Transition
	d.button, tr = d.button.Next(est.Active)
	return Sample{
		Frame:      f,
		Axes:       axes,
		Estimate:   est,
		Transition: tr,
	}, true
}

// Window returns the current contents of the sliding window.
func (d *Decoder) Window() Frame {
	return d.window.Frame()
}

// Button returns the current button state.
func (d *Decoder) Button() ButtonState {
	return d.button
}
