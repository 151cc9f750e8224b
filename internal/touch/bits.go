package touch

// getBit returns bit index of a little-endian packed bit string: bit i is
// bit (i mod 8) of byte (i div 8).
func getBit(bytes []byte, index int) bool {
	return (bytes[index/8]>>(index%8))&1 != 0
}

// setBit is the inverse of getBit.
func setBit(bytes []byte, index int, v bool) {
	mask := byte(1) << (index % 8)
	if v {
		bytes[index/8] |= mask
	} else {
		bytes[index/8] &^= mask
	}
}

// reverseVertical maps a wire bit position on the vertical axis to its
// logical row. The transform is its own inverse.
func reverseVertical(y int) int {
	return VerticalResolution - 1 - y
}
