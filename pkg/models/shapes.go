package models

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// GeneratePoints creates a point batch.
func GeneratePoints(points []math3d.Vec3) *Batch {
	return NewBatchFromPoints(Points, points)
}

// GenerateLine creates a single yellow line segment.
func GenerateLine(from, to math3d.Vec3) *Batch {
	return NewBatch(Lines, []Vertex{
		{Position: math3d.Point(from), Color: Yellow},
		{Position: math3d.Point(to), Color: Yellow},
	}, WithColors())
}

// GenerateTriangle creates a triangle with red, green and blue corners.
func GenerateTriangle(p0, p1, p2 math3d.Vec3) *Batch {
	return NewBatch(Triangles, []Vertex{
		{Position: math3d.Point(p0), Color: Red},
		{Position: math3d.Point(p1), Color: Green},
		{Position: math3d.Point(p2), Color: Blue},
	}, WithColors())
}

// GenerateTriFan creates a yellow triangle fan. points[0] is the apex.
func GenerateTriFan(points []math3d.Vec3) *Batch {
	vertices := make([]Vertex, len(points))
	for i, p := range points {
		vertices[i] = Vertex{Position: math3d.Point(p), Color: Yellow}
	}
	return NewBatch(TriangleFan, vertices, WithColors())
}

// GenerateLineStrip creates an open polyline.
func GenerateLineStrip(points []math3d.Vec3) *Batch {
	return NewBatchFromPoints(LineStrip, points)
}

// GenerateLineLoop creates a closed polyline.
func GenerateLineLoop(points []math3d.Vec3) *Batch {
	return NewBatchFromPoints(LineLoop, points)
}

// CirclePoints returns n points on a circle of the given radius around
// center, in the plane z = center.Z.
func CirclePoints(center math3d.Vec3, radius float64, n int) []math3d.Vec3 {
	points := make([]math3d.Vec3, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = math3d.V3(
			center.X+radius*math.Cos(angle),
			center.Y+radius*math.Sin(angle),
			center.Z,
		)
	}
	return points
}

// GenerateCircle creates a line loop approximating a circle with n segments.
func GenerateCircle(center math3d.Vec3, radius float64, n int) *Batch {
	return GenerateLineLoop(CirclePoints(center, radius, n))
}

// GenerateDisc creates a filled disc as a triangle fan: the centre followed
// by n+1 rim points, the last repeating the first to close the fan.
func GenerateDisc(center math3d.Vec3, radius float64, n int, inner, outer Color) *Batch {
	rim := CirclePoints(center, radius, n)
	vertices := make([]Vertex, 0, n+2)
	vertices = append(vertices, Vertex{Position: math3d.Point(center), Color: inner})
	for _, p := range rim {
		vertices = append(vertices, Vertex{Position: math3d.Point(p), Color: outer})
	}
	if n > 0 {
		vertices = append(vertices, Vertex{Position: math3d.Point(rim[0]), Color: outer})
	}
	return NewBatch(TriangleFan, vertices, WithColors())
}

// cubeEdges are the 12 edges of a cube, indexing cubeCorners.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // back face
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // front face
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
}

// GenerateWireCube creates the 12 edges of an axis-aligned cube as a line
// batch in the given colour.
func GenerateWireCube(center math3d.Vec3, size float64, c Color) *Batch {
	h := size / 2
	corners := [8]math3d.Vec3{
		{X: center.X - h, Y: center.Y - h, Z: center.Z - h},
		{X: center.X + h, Y: center.Y - h, Z: center.Z - h},
		{X: center.X + h, Y: center.Y + h, Z: center.Z - h},
		{X: center.X - h, Y: center.Y + h, Z: center.Z - h},
		{X: center.X - h, Y: center.Y - h, Z: center.Z + h},
		{X: center.X + h, Y: center.Y - h, Z: center.Z + h},
		{X: center.X + h, Y: center.Y + h, Z: center.Z + h},
		{X: center.X - h, Y: center.Y + h, Z: center.Z + h},
	}

	vertices := make([]Vertex, 0, 2*len(cubeEdges))
	for _, e := range cubeEdges {
		vertices = append(vertices,
			Vertex{Position: math3d.Point(corners[e[0]]), Color: c},
			Vertex{Position: math3d.Point(corners[e[1]]), Color: c},
		)
	}
	return NewBatch(Lines, vertices, WithColors())
}
