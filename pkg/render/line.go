package render

import "math"

// maxLineSteps bounds the pixels walked for one line. Without clipping, a
// vertex close to w = 0 can land millions of pixels off screen.
const maxLineSteps = 1 << 20

// DrawLine draws a line from a to b, one pixel per step along the major axis.
// The walk starts at the floor of a and covers int(|major delta|) pixels, at
// least one, so b itself is not drawn. Colour is interpolated from a to b.
func (r *Rasterizer) DrawLine(a, b ScreenVertex) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if math.IsNaN(dx+dy) || math.IsInf(dx+dy, 0) {
		r.Stats.Skipped++
		return
	}

	x, y := int(math.Floor(a.X)), int(math.Floor(a.Y))
	xStep, yStep := 1, -1
	if dx < 0 {
		xStep = -1
	}
	if dy >= 0 {
		yStep = 1
	}

	// scan follows the major axis, minor moves when the error overflows.
	scan, minor := &x, &y
	scanStep, minorStep := xStep, yStep
	major, other := dx, dy
	if math.Abs(dy) > math.Abs(dx) {
		scan, minor = &y, &x
		scanStep, minorStep = yStep, xStep
		major, other = dy, dx
	}

	steps := int(math.Abs(major))
	if steps > maxLineSteps {
		r.Stats.Skipped++
		return
	}
	steps = max(steps, 1)

	var slope float64
	if major != 0 {
		slope = math.Abs(other / major)
	}
	inv := 1 / float64(steps)

	var acc float64
	for i := range steps {
		r.SetPixel(x, y, lerpColor(a.Color, b.Color, float64(i)*inv))
		acc += slope
		if acc > 0.5 {
			acc--
			*minor += minorStep
		}
		*scan += scanStep
	}
}
