package touch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetBit(t *testing.T) {
	b := []byte{0b0000_0101, 0b1000_0000}
	want := map[int]bool{0: true, 1: false, 2: true, 7: false, 8: false, 15: true}
	for i, w := range want {
		if got := getBit(b, i); got != w {
			t.Errorf("getBit(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestSetBitInvertsGetBit(t *testing.T) {
	b := make([]byte, 3)
	for i := 0; i < 24; i += 3 {
		setBit(b, i, true)
	}
	for i := 0; i < 24; i++ {
		if got := getBit(b, i); got != (i%3 == 0) {
			t.Fatalf("bit %d = %v", i, got)
		}
	}
	setBit(b, 3, false)
	if getBit(b, 3) {
		t.Fatal("setBit(false) did not clear")
	}
}

func TestReverseVertical(t *testing.T) {
	if reverseVertical(0) != 75 || reverseVertical(75) != 0 {
		t.Fatalf("reverseVertical endpoints wrong: %d %d", reverseVertical(0), reverseVertical(75))
	}
	for y := 0; y < VerticalResolution; y++ {
		if reverseVertical(reverseVertical(y)) != y {
			t.Fatalf("reverseVertical not an involution at %d", y)
		}
	}
}

func frameWith(offset int, bits byte) Frame {
	var f Frame
	copy(f[:], Magic[:])
	f[offset] = bits
	f[checksumOffset] = Checksum(f.Payload())
	return f
}

func TestDecodeAxes_VerticalFirstBitIsLastRow(t *testing.T) {
	a := DecodeAxes(frameWith(3, 0x01))

	var want Axes
	want.Vertical[75] = true
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("DecodeAxes mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAxes_HorizontalFirstBitIsFirstColumn(t *testing.T) {
	a := DecodeAxes(frameWith(14, 0x01))

	var want Axes
	want.Horizontal[0] = true
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("DecodeAxes mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAxes_Layout(t *testing.T) {
	cases := []struct {
		name       string
		offset     int
		bits       byte
		vertical   []int
		horizontal []int
	}{
		{"vertical byte 0 bit 7", 3, 0x80, []int{75 - 7}, nil},
		{"vertical byte 1 bit 0", 4, 0x01, []int{75 - 8}, nil},
		{"last vertical bit", 12, 0x08, []int{0}, nil},
		{"vertical padding bits ignored", 12, 0xF0, nil, nil},
		{"horizontal byte 1 bit 2", 15, 0x04, nil, []int{10}},
		{"last horizontal bit", 19, 0x80, nil, []int{47}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var want Axes
			for _, y := range c.vertical {
				want.Vertical[y] = true
			}
			for _, x := range c.horizontal {
				want.Horizontal[x] = true
			}
			if diff := cmp.Diff(want, DecodeAxes(frameWith(c.offset, c.bits))); diff != "" {
				t.Errorf("DecodeAxes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeFrame_RoundTrip(t *testing.T) {
	var a Axes
	for _, y := range []int{0, 13, 40, 75} {
		a.Vertical[y] = true
	}
	for _, x := range []int{0, 9, 30, 47} {
		a.Horizontal[x] = true
	}
	f := EncodeFrame(a)
	if !Validate(f) {
		t.Fatalf("encoded frame does not validate: % X", f[:])
	}
	if diff := cmp.Diff(a, DecodeAxes(f)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAxesString(t *testing.T) {
	var a Axes
	a.Vertical[1] = true
	a.Horizontal[0] = true
	s := a.String()
	if len(s) != VerticalResolution+HorizontalResolution+5 {
		t.Fatalf("unexpected pattern length %d: %q", len(s), s)
	}
	if !strings.HasPrefix(s, "[ #") {
		t.Errorf("vertical pattern wrong: %q", s)
	}
	if !strings.Contains(s, "] [#") {
		t.Errorf("horizontal pattern wrong: %q", s)
	}
}
