package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// On an 11x11 buffer with identity matrices NDC x maps to pixel 5x+5.
const dispatchSize = 11

func draw(t *testing.T, b *models.Batch) *Rasterizer {
	t.Helper()
	r := createTestRasterizer(t, dispatchSize, dispatchSize)
	r.DrawObject(Object{Model: math3d.Identity(), Batch: b})
	return r
}

func colored(topology models.Topology, c Color, points ...math3d.Vec3) *models.Batch {
	vertices := make([]models.Vertex, len(points))
	for i, p := range points {
		vertices[i] = models.Vertex{Position: math3d.Point(p), Color: c}
	}
	return models.NewBatch(topology, vertices, models.WithColors())
}

func TestDrawObjectPoints(t *testing.T) {
	b := models.NewBatch(models.Points, []models.Vertex{
		{Position: math3d.V4(0, 0, 0, 1), Color: ColorRed},
		{Position: math3d.V4(1, 1, 0, 1)},
		{Position: math3d.V4(-1, -1, 0, 1)},
		{Position: math3d.V4(0, 0, 0, 0)},
	}, models.WithColors())
	r := draw(t, b)

	assert.ElementsMatch(t, [][2]int{{5, 5}, {10, 10}, {0, 0}}, shaded(r))
	assert.Equal(t, ColorWhite, pixel(r, 5, 5), "points ignore vertex colour")
	assert.Equal(t, 4, r.Stats.Primitives)
	assert.Equal(t, 1, r.Stats.Skipped)
}

func TestDrawObjectLinesDropsTrailingVertex(t *testing.T) {
	b := colored(models.Lines, ColorRed,
		math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
	)
	r := draw(t, b)

	got := shaded(r)
	assert.Len(t, got, 10)
	for _, p := range got {
		assert.Equal(t, 5, p[1])
		assert.Equal(t, ColorRed, pixel(r, p[0], p[1]))
	}
	assert.Equal(t, 1, r.Stats.Primitives)
	assert.Equal(t, 1, r.Stats.Dropped)
}

func TestDrawObjectLineStripIsWhite(t *testing.T) {
	b := colored(models.LineStrip, ColorRed,
		math3d.V3(-0.5, -0.5, 0), math3d.V3(0.5, -0.5, 0), math3d.V3(0.5, 0.5, 0),
	)
	r := draw(t, b)

	require.NotEmpty(t, shaded(r))
	for _, p := range shaded(r) {
		assert.Equal(t, ColorWhite, pixel(r, p[0], p[1]))
	}
	assert.Equal(t, 2, r.Stats.Primitives)
}

func TestDrawObjectLineLoopCloses(t *testing.T) {
	square := []math3d.Vec3{
		math3d.V3(-0.5, -0.5, 0), math3d.V3(0.5, -0.5, 0),
		math3d.V3(0.5, 0.5, 0), math3d.V3(-0.5, 0.5, 0),
	}

	strip := draw(t, models.GenerateLineStrip(square))
	loop := draw(t, models.GenerateLineLoop(square))

	assert.Equal(t, ColorBlack, pixel(strip, 2, 5))
	assert.Equal(t, ColorWhite, pixel(loop, 2, 5), "closing segment")
	assert.Equal(t, 3, strip.Stats.Primitives)
	assert.Equal(t, 4, loop.Stats.Primitives)
	assert.Len(t, shaded(loop), 20)
}

func TestDrawObjectLineLoopSinglePoint(t *testing.T) {
	r := draw(t, models.GenerateLineLoop([]math3d.Vec3{math3d.V3(0, 0, 0)}))
	assert.Empty(t, shaded(r))
	assert.Equal(t, 1, r.Stats.Dropped)
}

func TestDrawObjectTriangles(t *testing.T) {
	b := models.GenerateTriangle(math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0), math3d.V3(-1, 1, 0))
	r := draw(t, b)

	assert.Equal(t, models.Red, pixel(r, 0, 0))
	assert.NotEqual(t, ColorBlack, pixel(r, 3, 3))
	assert.Equal(t, ColorBlack, pixel(r, 9, 9))
	assert.Equal(t, 1, r.Stats.Primitives)
}

func TestDrawObjectSkipsZeroW(t *testing.T) {
	b := models.NewBatch(models.Triangles, []models.Vertex{
		{Position: math3d.V4(-1, -1, 0, 1)},
		{Position: math3d.V4(1, -1, 0, 0)},
		{Position: math3d.V4(-1, 1, 0, 1)},
	})
	r := draw(t, b)

	assert.Empty(t, shaded(r))
	assert.Equal(t, 1, r.Stats.Skipped)
}

func TestDrawObjectTriangleFan(t *testing.T) {
	disc := models.GenerateDisc(math3d.Zero3(), 0.8, 4, models.Yellow, models.Blue)
	require.Equal(t, 6, disc.Len())
	r := draw(t, disc)

	assert.Equal(t, 4, r.Stats.Primitives)
	assert.Zero(t, r.Stats.Dropped)
	assert.Equal(t, models.Yellow, pixel(r, 5, 5), "apex colour")
	assert.Equal(t, ColorBlack, pixel(r, 0, 0))
}

func TestDrawObjectTriangleFanTooShort(t *testing.T) {
	r := draw(t, colored(models.TriangleFan, ColorRed, math3d.V3(0, 0, 0), math3d.V3(1, 0, 0)))
	assert.Empty(t, shaded(r))
	assert.Zero(t, r.Stats.Primitives)
	assert.Equal(t, 2, r.Stats.Dropped)
}

func TestDrawObjectNilAndUnknown(t *testing.T) {
	r := createTestRasterizer(t, dispatchSize, dispatchSize)
	r.DrawObject(Object{Model: math3d.Identity()})
	assert.Zero(t, r.Stats.Objects)

	r.DrawObject(Object{
		Model: math3d.Identity(),
		Batch: models.NewBatchFromPoints(models.Topology(42), []math3d.Vec3{math3d.V3(0, 0, 0)}),
	})
	assert.Equal(t, 1, r.Stats.Objects)
	assert.Empty(t, shaded(r))
}

func TestDrawObjectAppliesMatrices(t *testing.T) {
	r := createTestRasterizer(t, dispatchSize, dispatchSize)
	r.SetProjectionMatrix(math3d.Scale(math3d.V3(0.5, 0.5, 1)))
	r.SetViewMatrix(math3d.Translate(math3d.V3(0, 1, 0)))

	// Model moves the point to (1, -1); view to (1, 0); projection to (0.5, 0).
	r.DrawObject(Object{
		Model: math3d.Translate(math3d.V3(1, -1, 0)),
		Batch: models.GeneratePoints([]math3d.Vec3{math3d.Zero3()}),
	})
	assert.Equal(t, [][2]int{{7, 5}}, shaded(r))

	r.ResetStats()
	assert.Zero(t, r.Stats)
}
