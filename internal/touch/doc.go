// Package touch decodes the serial stream of a 48x76 capacitive touch grid.
//
// Responsibilities: sliding-window framing with self-resynchronization,
// frame validation (magic + checksum), extraction of the two axis bitmaps,
// reduction of the bitmaps to a single normalized point, and conversion of
// the per-frame touch level into press/release edges.
// Key types: Frame, Window, Axes, Estimate, ButtonState, Decoder.
//
// Nothing in this package returns an error. Malformed input is simply "not a
// frame yet" and the window slides on.
package touch
