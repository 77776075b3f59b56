package render

import "math"

// Depth range of the 16-bit depth buffer. Screen-space z runs from 0 (near)
// to MaxDepth (far).
const (
	MaxDepth = math.MaxUint16
	// DepthScale is the z half-range used by the viewport transform.
	DepthScale = float64(MaxDepth) / 2
)

// EncodeDepth converts a screen-space z to a depth candidate. The result is
// wider than the stored 16 bits so fragments beyond the far plane compare
// greater than a cleared buffer and fail. Negative z encodes as 0; NaN and
// values past the uint32 range encode as math.MaxUint32.
func EncodeDepth(z float64) uint32 {
	switch {
	case math.IsNaN(z), z >= math.MaxUint32:
		return math.MaxUint32
	case z <= 0:
		return 0
	}
	return uint32(z)
}

// DepthBuffer is a row-major array of 16-bit depths, one per pixel.
type DepthBuffer struct {
	Width  int
	Height int
	Values []uint16
}

// NewDepthBuffer creates a depth buffer cleared to MaxDepth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Values: make([]uint16, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every depth to MaxDepth.
func (d *DepthBuffer) Clear() {
	fill(d.Values, uint16(MaxDepth))
}

// At returns the stored depth at (x, y), or MaxDepth when out of bounds.
func (d *DepthBuffer) At(x, y int) uint16 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return MaxDepth
	}
	return d.Values[y*d.Width+x]
}

// Test compares z with the stored depth at (x, y). When z is nearer or equal
// the stored value is replaced and Test reports true. Out of bounds
// coordinates always fail, as does any z above MaxDepth.
func (d *DepthBuffer) Test(x, y int, z uint32) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if z > uint32(d.Values[i]) {
		return false
	}
	d.Values[i] = uint16(z)
	return true
}
