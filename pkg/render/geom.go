package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// BoundingBox is an axis-aligned screen rectangle. It is empty when Min is
// not below Max on either axis.
type BoundingBox struct {
	Min, Max math3d.Vec2
}

// Empty reports whether the box covers no area.
func (b BoundingBox) Empty() bool {
	return !(b.Min.X < b.Max.X && b.Min.Y < b.Max.Y)
}

// BoxForTriangle returns the bounds of a, b and c clamped to
// [0,width] x [0,height].
func BoxForTriangle(a, b, c ScreenVertex, width, height int) BoundingBox {
	return BoundingBox{
		Min: math3d.V2(
			math.Max(min(a.X, b.X, c.X), 0),
			math.Max(min(a.Y, b.Y, c.Y), 0),
		),
		Max: math3d.V2(
			math.Min(max(a.X, b.X, c.X), float64(width)),
			math.Min(max(a.Y, b.Y, c.Y), float64(height)),
		),
	}
}

// SignedArea returns the signed area of triangle abc. It is positive when the
// vertices wind counter-clockwise in a y-up frame.
func SignedArea(a, b, c math3d.Vec2) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}

// Coverage is the inside test for one triangle. A sample is inside when the
// areas of the three sub-triangles it forms with the edges add up to the
// triangle area, within Epsilon, and to at least MinCoverage.
type Coverage struct {
	A, B, C     math3d.Vec2
	Area        float64 // |SignedArea(A, B, C)|
	Epsilon     float64
	MinCoverage float64
}

// NewCoverage prepares the inside test for triangle abc.
func NewCoverage(a, b, c math3d.Vec2, epsilon, minCoverage float64) Coverage {
	return Coverage{
		A:           a,
		B:           b,
		C:           c,
		Area:        math.Abs(SignedArea(a, b, c)),
		Epsilon:     epsilon,
		MinCoverage: minCoverage,
	}
}

// Weights returns the barycentric weights of p relative to A, B and C, and
// whether p passes the inside test. The weights are non-negative and sum to
// one within Epsilon/Area for accepted samples.
func (t Coverage) Weights(p math3d.Vec2) (w math3d.Vec3, inside bool) {
	if t.Area == 0 {
		return math3d.Vec3{}, false
	}
	ab := math.Abs(SignedArea(t.A, p, t.B))
	bc := math.Abs(SignedArea(t.B, p, t.C))
	ca := math.Abs(SignedArea(t.C, p, t.A))
	sum := ab + bc + ca
	if !(sum <= t.Area+t.Epsilon) || sum < t.MinCoverage {
		return math3d.Vec3{}, false
	}
	return math3d.V3(bc/t.Area, ca/t.Area, ab/t.Area), true
}
