package main

import "github.com/banshee-data/touchbridge/internal/touch"

// devScript synthesizes a short tap-and-drag: a few bytes of line noise, a
// touch that presses near the centre, two frames dragging down-right, and an
// empty frame that releases.
func devScript() []byte {
	script := []byte{0x00, 0xFF, 'U'}
	for _, p := range [][2]int{{24, 38}, {28, 44}, {32, 50}} {
		script = append(script, tapFrame(p[0], p[1])...)
	}
	empty := touch.EncodeFrame(touch.Axes{})
	return append(script, empty[:]...)
}

// tapFrame encodes a frame for a finger covering a 2x2 patch at (x, y).
func tapFrame(x, y int) []byte {
	var a touch.Axes
	a.Horizontal[x] = true
	a.Horizontal[x+1] = true
	a.Vertical[y] = true
	a.Vertical[y+1] = true
	f := touch.EncodeFrame(a)
	return f[:]
}
