package touch

import "testing"

func zeroPayloadFrame(check byte) Frame {
	var f Frame
	copy(f[:], Magic[:])
	f[checksumOffset] = check
	return f
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		want    byte
	}{
		{"all zero", make([]byte, PayloadSize), 0x9F},
		{"single one", append([]byte{1}, make([]byte, PayloadSize-1)...), 0xA0},
		{"wraps", []byte{0xFF, 0xFF}, byte((0xFF + 0xFF + 0xFF + 0xA0) % 256)},
		{"empty", nil, 0x9F},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Checksum(c.payload); got != c.want {
				t.Errorf("Checksum() = 0x%02X, want 0x%02X", got, c.want)
			}
		})
	}
}

func TestValidate_ZeroPayload(t *testing.T) {
	if !Validate(zeroPayloadFrame(0x9F)) {
		t.Error("expected frame with trailing 0x9F to validate")
	}
	if Validate(zeroPayloadFrame(0x9E)) {
		t.Error("expected frame with trailing 0x9E to be rejected")
	}
}

func TestValidate_WrongMagicAlwaysFalse(t *testing.T) {
	for i := 0; i < magicSize; i++ {
		f := zeroPayloadFrame(0x9F)
		f[i] ^= 0x20 // 'U' -> 'u' etc.
		for check := 0; check < 256; check++ {
			f[checksumOffset] = byte(check)
			if Validate(f) {
				t.Fatalf("magic byte %d corrupted: frame validated with checksum 0x%02X", i, check)
			}
		}
	}
}

func TestValidate_MatchesDefinition(t *testing.T) {
	// Walk a spread of payloads and every possible trailing byte.
	for seed := 0; seed < 64; seed++ {
		var f Frame
		copy(f[:], Magic[:])
		for i := payloadOffset; i < checksumOffset; i++ {
			f[i] = byte(seed*31 + i*7)
		}
		sum := 0
		for _, b := range f[payloadOffset:checksumOffset] {
			sum += int(b)
		}
		want := byte(0xFF + sum + 0xA0)
		for check := 0; check < 256; check++ {
			f[checksumOffset] = byte(check)
			if got := Validate(f); got != (byte(check) == want) {
				t.Fatalf("seed %d check 0x%02X: Validate() = %v", seed, check, got)
			}
		}
	}
}

func TestValidate_SingleByteCorruption(t *testing.T) {
	f := zeroPayloadFrame(0x9F)
	for i := payloadOffset; i < FrameSize; i++ {
		g := f
		g[i]++
		if Validate(g) {
			t.Errorf("frame corrupted at offset %d still validated", i)
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	frames := []Frame{zeroPayloadFrame(0x9F), zeroPayloadFrame(0x9E), {}}
	for _, f := range frames {
		before := f
		first := Validate(f)
		for i := 0; i < 10; i++ {
			if Validate(f) != first {
				t.Fatalf("Validate changed result on re-run for %v", f)
			}
		}
		if f != before {
			t.Fatal("Validate mutated its input")
		}
	}
}
