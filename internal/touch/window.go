package touch

// Window is a fixed-capacity ring over the most recent FrameSize bytes of the
// stream. The zero value is an empty (all zero) window ready for use.
type Window struct {
	buf  [FrameSize]byte
	head int // index of the oldest byte
}

// Push appends b at the tail, dropping the oldest byte, and returns the
// resulting window in stream order.
func (w *Window) Push(b byte) Frame {
	w.buf[w.head] = b
	w.head = (w.head + 1) % FrameSize
	return w.Frame()
}

// Frame returns a copy of the window, oldest byte first.
func (w *Window) Frame() Frame {
	var f Frame
	n := copy(f[:], w.buf[w.head:])
	copy(f[n:], w.buf[:w.head])
	return f
}

// Reset clears the window back to all zeros.
func (w *Window) Reset() {
	*w = Window{}
}
