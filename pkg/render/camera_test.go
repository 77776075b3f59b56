package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

func TestCameraApply(t *testing.T) {
	r := createTestRasterizer(t, dispatchSize, dispatchSize)
	cam := NewCamera(1)
	cam.Apply(r)

	assert.Equal(t, cam.ProjectionMatrix().Mul(cam.ViewMatrix()), r.ViewProjection())

	// A point straight ahead lands on the centre pixel.
	s, ok := r.Project(r.ViewProjection(), models.Vertex{Position: math3d.V4(0, 0, -10, 1)})
	assert.True(t, ok)
	assert.InDelta(t, 5, s.X, 1e-9)
	assert.InDelta(t, 5, s.Y, 1e-9)
	assert.Greater(t, s.Z, 0.0)
	assert.Less(t, s.Z, float64(MaxDepth))
}

func TestCameraDepthOrder(t *testing.T) {
	r := createTestRasterizer(t, dispatchSize, dispatchSize)
	NewCamera(1).Apply(r)

	near, _ := r.Project(r.ViewProjection(), models.Vertex{Position: math3d.V4(0, 0, -2, 1)})
	far, _ := r.Project(r.ViewProjection(), models.Vertex{Position: math3d.V4(0, 0, -50, 1)})
	assert.Less(t, near.Z, far.Z)
}

func TestCameraYaw(t *testing.T) {
	cam := NewCamera(1)
	cam.Rotate(0, math.Pi/2, 0)

	// Facing -X after a quarter turn left.
	assert.InDelta(t, -1, cam.Forward().X, 1e-9)
	assert.InDelta(t, 0, cam.Forward().Z, 1e-9)

	cam.MoveForward(3)
	assert.InDelta(t, -3, cam.Position.X, 1e-9)
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewCamera(1)
	cam.Rotate(10, 0, 0)
	assert.Less(t, cam.Pitch, math.Pi/2)
}
