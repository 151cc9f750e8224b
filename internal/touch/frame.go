package touch

// Sensor geometry. These are properties of the physical grid and the wire
// format, not tunables.
const (
	HorizontalResolution = 48
	VerticalResolution   = 76
)

// Wire layout of a frame.
const (
	FrameSize = 21

	magicSize        = 3
	payloadOffset    = magicSize
	horizontalOffset = 14
	checksumOffset   = 20
	PayloadSize      = checksumOffset - payloadOffset

	checksumSeed = 0xFF
	checksumBias = 0xA0
)

// Magic marks the start of every frame.
var Magic = [magicSize]byte{'U', 'T', 'L'}

// Frame is one candidate 21-byte window, oldest byte first.
type Frame [FrameSize]byte

// Payload returns the 17 payload bytes carrying the packed axis bits.
func (f Frame) Payload() []byte {
	return f[payloadOffset:checksumOffset]
}

// Checksum computes the frame checksum over payload bytes:
// (0xFF + sum(payload) + 0xA0) mod 256.
func Checksum(payload []byte) byte {
	sum := checksumSeed
	for _, b := range payload {
		sum += int(b)
	}
	return byte(sum + checksumBias)
}

// HasMagic reports whether the frame starts with the magic sequence.
func HasMagic(f Frame) bool {
	return f[0] == Magic[0] && f[1] == Magic[1] && f[2] == Magic[2]
}

// Validate reports whether f is a complete frame: magic present and the
// trailing byte equal to the payload checksum.
func Validate(f Frame) bool {
	if !HasMagic(f) {
		return false
	}
	return Checksum(f.Payload()) == f[checksumOffset]
}
