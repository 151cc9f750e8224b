package touch

// Estimate is the single pointer position derived from one frame.
// X and Y are normalized to [0, 1); they are zero when Active is false.
type Estimate struct {
	X      float64
	Y      float64
	Active bool
}

// Estimate reduces the bitmaps to the centre of the bounding box of every
// (x, y) where both axes report a touch.
//
// Two separated touches produce ghost intersections on the other diagonal.
// The sensor reports rows and columns independently, so the bounding box is
// taken over the intersections as they are.
func (a Axes) Estimate() Estimate {
	minX, maxX := -1, -1
	minY, maxY := -1, -1
	for y := 0; y < VerticalResolution; y++ {
		if !a.Vertical[y] {
			continue
		}
		for x := 0; x < HorizontalResolution; x++ {
			if !a.Horizontal[x] {
				continue
			}
			if minX == -1 || x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if minY == -1 {
				minY = y
			}
			maxY = y
		}
	}
	if minX == -1 {
		return Estimate{}
	}
	return Estimate{
		X:      (float64(minX) + float64(maxX)) / 2 / HorizontalResolution,
		Y:      (float64(minY) + float64(maxY)) / 2 / VerticalResolution,
		Active: true,
	}
}
