package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DrawTriangle fills the triangle v0 v1 v2. Samples sit at integer pixel
// coordinates inside the clamped bounding box. Each sample that passes the
// area inside test and the depth test is shaded with the barycentric blend of
// the vertex colours. Both windings are drawn; zero-area triangles are not.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 ScreenVertex) {
	cov := NewCoverage(v0.XY(), v1.XY(), v2.XY(), r.insideEpsilon, r.minCoverage)
	if cov.Area == 0 {
		r.Stats.Skipped++
		return
	}

	box := BoxForTriangle(v0, v1, v2, r.width, r.height)
	for y := math.Ceil(box.Min.Y); y < box.Max.Y; y++ {
		for x := math.Ceil(box.Min.X); x < box.Max.X; x++ {
			w, inside := cov.Weights(math3d.V2(x, y))
			if !inside {
				continue
			}
			ix, iy := int(x), int(y)
			z := w.X*v0.Z + w.Y*v1.Z + w.Z*v2.Z
			if !r.DepthTest(ix, iy, z) {
				continue
			}
			r.SetPixel(ix, iy, blendColor(v0.Color, v1.Color, v2.Color, w.X, w.Y, w.Z))
		}
	}
}
