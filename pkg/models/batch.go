// Package models provides the geometry batches drawn by the scanline
// rasterizer, together with generators and loaders for them.
package models

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Color is an alias for color.RGBA: four unsigned 8-bit channels.
type Color = color.RGBA

// Colors used by the generators.
var (
	White  = color.RGBA{255, 255, 255, 255}
	Red    = color.RGBA{255, 0, 0, 255}
	Green  = color.RGBA{0, 255, 0, 255}
	Blue   = color.RGBA{0, 0, 255, 255}
	Yellow = color.RGBA{250, 243, 29, 255}
)

// ErrIncompleteBatch reports a vertex count that leaves a trailing, partial
// primitive. Such batches can still be drawn; the partial primitive is skipped.
var ErrIncompleteBatch = errors.New("vertex count does not match topology")

// Vertex is a single batch vertex.
type Vertex struct {
	Position math3d.Vec4 // Homogeneous local-space position
	Color    Color       // Meaningful only when the batch HasColor
	UV       math3d.Vec2 // Meaningful only when the batch HasUV
}

// Batch is an immutable sequence of vertices tagged with a topology.
type Batch struct {
	topology Topology
	vertices []Vertex
	hasColor bool
	hasUV    bool
}

// BatchOption configures a Batch during creation.
type BatchOption func(*Batch)

// WithColors marks the vertex colours as meaningful. Without it, drawing
// uses opaque white for every vertex.
func WithColors() BatchOption {
	return func(b *Batch) { b.hasColor = true }
}

// WithUVs marks the vertex texture coordinates as meaningful.
func WithUVs() BatchOption {
	return func(b *Batch) { b.hasUV = true }
}

// NewBatch creates a batch from a copy of vertices.
func NewBatch(topology Topology, vertices []Vertex, opts ...BatchOption) *Batch {
	b := &Batch{
		topology: topology,
		vertices: append([]Vertex(nil), vertices...),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBatchFromPoints creates an uncoloured batch from 3D points (w=1).
func NewBatchFromPoints(topology Topology, points []math3d.Vec3) *Batch {
	vertices := make([]Vertex, len(points))
	for i, p := range points {
		vertices[i].Position = math3d.Point(p)
	}
	return &Batch{topology: topology, vertices: vertices}
}

// Topology returns the primitive topology.
func (b *Batch) Topology() Topology {
	return b.topology
}

// Len returns the number of vertices.
func (b *Batch) Len() int {
	return len(b.vertices)
}

// Vertex returns vertex i. It panics if i is out of range.
func (b *Batch) Vertex(i int) Vertex {
	return b.vertices[i]
}

// Position returns the position of vertex i.
func (b *Batch) Position(i int) math3d.Vec4 {
	return b.vertices[i].Position
}

// ColorAt returns the colour of vertex i, or White when the batch has no
// colours or i is out of range.
func (b *Batch) ColorAt(i int) Color {
	if !b.hasColor || i < 0 || i >= len(b.vertices) {
		return White
	}
	return b.vertices[i].Color
}

// HasColor reports whether the vertex colours are meaningful.
func (b *Batch) HasColor() bool {
	return b.hasColor
}

// HasUV reports whether the vertex texture coordinates are meaningful.
func (b *Batch) HasUV() bool {
	return b.hasUV
}

// PrimitiveCount returns the number of complete primitives in the batch.
func (b *Batch) PrimitiveCount() int {
	return b.topology.PrimitiveCount(len(b.vertices))
}

// Validate reports whether the vertex count fits the topology.
func (b *Batch) Validate() error {
	if !b.topology.consistent(len(b.vertices)) {
		return fmt.Errorf("%s batch with %d vertices: %w", b.topology, len(b.vertices), ErrIncompleteBatch)
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertex positions,
// ignoring w.
func (b *Batch) Bounds() (lo, hi math3d.Vec3) {
	if len(b.vertices) == 0 {
		return
	}
	lo = b.vertices[0].Position.Vec3()
	hi = lo
	for _, v := range b.vertices[1:] {
		lo = lo.Min(v.Position.Vec3())
		hi = hi.Max(v.Position.Vec3())
	}
	return lo, hi
}
