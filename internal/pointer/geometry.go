package pointer

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FramebufferSizePath is where Linux exposes the primary framebuffer size as
// "width,height".
var FramebufferSizePath = "/sys/class/graphics/fb0/virtual_size"

// Geometry is the screen size in pixels that normalized touch positions are
// scaled to.
type Geometry struct {
	Width  int
	Height int
}

// Validate rejects empty or negative geometry.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid screen geometry %dx%d", g.Width, g.Height)
	}
	return nil
}

// Scale converts a normalized position to absolute pixels, truncating toward
// zero.
func (g Geometry) Scale(x, y float64) (int, int) {
	return int(float64(g.Width) * x), int(float64(g.Height) * y)
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// ParseGeometry parses "WIDTHxHEIGHT".
func ParseGeometry(s string) (Geometry, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Geometry{}, fmt.Errorf("invalid screen geometry %q: expected WIDTHxHEIGHT", s)
	}
	g, err := parsePair(w, h)
	if err != nil {
		return Geometry{}, fmt.Errorf("invalid screen geometry %q: %w", s, err)
	}
	return g, nil
}

// DetectGeometry reads the framebuffer size from sysfs.
func DetectGeometry() (Geometry, error) {
	data, err := os.ReadFile(FramebufferSizePath)
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to detect screen geometry: %w", err)
	}
	w, h, ok := strings.Cut(strings.TrimSpace(string(data)), ",")
	if !ok {
		return Geometry{}, fmt.Errorf("unexpected framebuffer size %q in %s", data, FramebufferSizePath)
	}
	g, err := parsePair(w, h)
	if err != nil {
		return Geometry{}, fmt.Errorf("unexpected framebuffer size in %s: %w", FramebufferSizePath, err)
	}
	return g, nil
}

func parsePair(w, h string) (Geometry, error) {
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Geometry{}, err
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{Width: width, Height: height}
	return g, g.Validate()
}
