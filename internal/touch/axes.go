package touch

import "strings"

// Axes holds the two orthogonal touch bitmaps decoded from one frame.
type Axes struct {
	Horizontal [HorizontalResolution]bool
	Vertical   [VerticalResolution]bool
}

// DecodeAxes extracts the axis bitmaps from a validated frame. Vertical bits
// live in frame bytes 3-13 in reversed order; horizontal bits live in frame
// bytes 14-19 in natural order.
func DecodeAxes(f Frame) Axes {
	var a Axes
	vertical := f[payloadOffset:horizontalOffset]
	for y := 0; y < VerticalResolution; y++ {
		a.Vertical[reverseVertical(y)] = getBit(vertical, y)
	}
	horizontal := f[horizontalOffset:checksumOffset]
	for x := 0; x < HorizontalResolution; x++ {
		a.Horizontal[x] = getBit(horizontal, x)
	}
	return a
}

// EncodeFrame builds a valid frame carrying a. It is the exact inverse of
// DecodeAxes and is used to synthesize sensor traffic.
func EncodeFrame(a Axes) Frame {
	var f Frame
	copy(f[:], Magic[:])
	vertical := f[payloadOffset:horizontalOffset]
	for y := 0; y < VerticalResolution; y++ {
		setBit(vertical, y, a.Vertical[reverseVertical(y)])
	}
	horizontal := f[horizontalOffset:checksumOffset]
	for x := 0; x < HorizontalResolution; x++ {
		setBit(horizontal, x, a.Horizontal[x])
	}
	f[checksumOffset] = Checksum(f.Payload())
	return f
}

// String renders the bitmaps as "[vertical] [horizontal]" with '#' for a
// touched position.
func (a Axes) String() string {
	var sb strings.Builder
	sb.Grow(VerticalResolution + HorizontalResolution + 5)
	sb.WriteByte('[')
	for _, v := range a.Vertical {
		sb.WriteByte(patternChar(v))
	}
	sb.WriteString("] [")
	for _, h := range a.Horizontal {
		sb.WriteByte(patternChar(h))
	}
	sb.WriteByte(']')
	return sb.String()
}

func patternChar(touched bool) byte {
	if touched {
		return '#'
	}
	return ' '
}
