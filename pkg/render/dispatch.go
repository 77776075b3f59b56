package render

import (
	"context"
	"log/slog"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Object is a batch placed in the world by a model matrix.
type Object struct {
	Model math3d.Mat4
	Batch *models.Batch
}

// DrawStats counts what DrawObject did since the last ResetStats.
type DrawStats struct {
	Objects    int // Objects drawn
	Primitives int // Primitives handed to the point, line or triangle stage
	Skipped    int // Primitives skipped for w = 0, zero area or bad extent
	Dropped    int // Trailing vertices that did not form a whole primitive
}

// ResetStats zeroes the draw statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = DrawStats{}
}

// DrawObject projects every vertex of o.Batch with view-projection * model
// and rasterises the primitives its topology describes. A nil batch is a
// no-op. Primitives with a vertex at w = 0 are skipped, and trailing vertices
// that do not complete a primitive are ignored.
func (r *Rasterizer) DrawObject(o Object) {
	b := o.Batch
	if b == nil {
		return
	}
	r.Stats.Objects++
	mvp := r.viewProj.Mul(o.Model)

	if err := b.Validate(); err != nil {
		r.Stats.Dropped += b.Len() - used(b)
		if r.log.Enabled(context.Background(), slog.LevelDebug) {
			r.log.Debug("dropping incomplete primitive", "err", err)
		}
	}

	switch b.Topology() {
	case models.Points:
		r.drawPoints(mvp, b)
	case models.Lines:
		for i := 0; i+1 < b.Len(); i += 2 {
			r.line(mvp, b, i, i+1, true)
		}
	case models.LineStrip:
		for i := 0; i+1 < b.Len(); i++ {
			r.line(mvp, b, i, i+1, false)
		}
	case models.LineLoop:
		for i := 0; i+1 < b.Len(); i++ {
			r.line(mvp, b, i, i+1, false)
		}
		if n := b.Len(); n >= 2 {
			r.line(mvp, b, n-1, 0, false)
		}
	case models.Triangles:
		for i := 0; i+2 < b.Len(); i += 3 {
			r.triangle(mvp, b, i, i+1, i+2)
		}
	case models.TriangleFan:
		for k := 0; k+2 < b.Len(); k++ {
			r.triangle(mvp, b, 0, k+1, k+2)
		}
	default:
		r.log.Debug("unknown topology", "topology", b.Topology())
	}
}

// used returns how many vertices of b belong to whole primitives.
func used(b *models.Batch) int {
	n := b.Len()
	switch b.Topology() {
	case models.Lines:
		return n - n%2
	case models.Triangles:
		return n - n%3
	case models.LineStrip, models.LineLoop:
		if n < 2 {
			return 0
		}
	case models.TriangleFan:
		if n < 3 {
			return 0
		}
	}
	return n
}

// vertex projects vertex i of b. Uncoloured batches, and callers that ask for
// white, get white.
func (r *Rasterizer) vertex(mvp math3d.Mat4, b *models.Batch, i int, colored bool) (ScreenVertex, bool) {
	v := b.Vertex(i)
	v.Color = ColorWhite
	if colored {
		v.Color = b.ColorAt(i)
	}
	return r.Project(mvp, v)
}

func (r *Rasterizer) drawPoints(mvp math3d.Mat4, b *models.Batch) {
	for i := range b.Len() {
		r.Stats.Primitives++
		s, ok := r.vertex(mvp, b, i, false)
		if !ok {
			r.Stats.Skipped++
			continue
		}
		r.SetPixel(int(math.Floor(s.X)), int(math.Floor(s.Y)), ColorWhite)
	}
}

func (r *Rasterizer) line(mvp math3d.Mat4, b *models.Batch, i, j int, colored bool) {
	r.Stats.Primitives++
	a, ok := r.vertex(mvp, b, i, colored)
	if !ok {
		r.Stats.Skipped++
		return
	}
	c, ok := r.vertex(mvp, b, j, colored)
	if !ok {
		r.Stats.Skipped++
		return
	}
	r.DrawLine(a, c)
}

func (r *Rasterizer) triangle(mvp math3d.Mat4, b *models.Batch, i, j, k int) {
	r.Stats.Primitives++
	var v [3]ScreenVertex
	for n, idx := range [3]int{i, j, k} {
		s, ok := r.vertex(mvp, b, idx, true)
		if !ok {
			r.Stats.Skipped++
			return
		}
		v[n] = s
	}
	r.DrawTriangle(v[0], v[1], v[2])
}
