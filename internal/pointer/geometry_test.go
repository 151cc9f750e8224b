package pointer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseGeometry(t *testing.T) {
	cases := []struct {
		in      string
		want    Geometry
		wantErr bool
	}{
		{"1920x1080", Geometry{1920, 1080}, false},
		{" 800X480 ", Geometry{800, 480}, false},
		{"1920", Geometry{}, true},
		{"axb", Geometry{}, true},
		{"0x1080", Geometry{}, true},
		{"-5x10", Geometry{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseGeometry(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("ParseGeometry(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			}
			if !c.wantErr && got != c.want {
				t.Errorf("ParseGeometry(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestGeometry_Scale(t *testing.T) {
	g := Geometry{Width: 1920, Height: 1080}

	x, y := g.Scale(0.5, 0.25)
	if x != 960 || y != 270 {
		t.Errorf("Scale = (%d, %d), want (960, 270)", x, y)
	}
	x, y = g.Scale(0.1, 10.0/76)
	if x != 192 || y != 142 {
		t.Errorf("Scale = (%d, %d), want (192, 142)", x, y)
	}
	x, y = g.Scale(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("Scale(0,0) = (%d, %d)", x, y)
	}
	x, y = g.Scale(47.0/48, 75.0/76)
	if x >= g.Width || y >= g.Height {
		t.Errorf("Scale of last cell out of screen: (%d, %d)", x, y)
	}
}

func TestGeometry_String(t *testing.T) {
	if s := (Geometry{Width: 1024, Height: 600}).String(); s != "1024x600" {
		t.Errorf("String() = %q", s)
	}
}

func TestDetectGeometry(t *testing.T) {
	original := FramebufferSizePath
	defer func() { FramebufferSizePath = original }()

	dir := t.TempDir()
	FramebufferSizePath = filepath.Join(dir, "virtual_size")

	if _, err := DetectGeometry(); err == nil {
		t.Error("expected error when framebuffer size is missing")
	}

	if err := os.WriteFile(FramebufferSizePath, []byte("1280,800\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := DetectGeometry()
	if err != nil {
		t.Fatalf("DetectGeometry() error = %v", err)
	}
	if g != (Geometry{Width: 1280, Height: 800}) {
		t.Errorf("DetectGeometry() = %v", g)
	}

	if err := os.WriteFile(FramebufferSizePath, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DetectGeometry(); err == nil {
		t.Error("expected error for malformed framebuffer size")
	}
}
