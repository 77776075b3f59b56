package models

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrUnsupportedPrimitive reports a glTF primitive mode with no batch topology.
var ErrUnsupportedPrimitive = errors.New("unsupported primitive mode")

// ErrInvalidAccessor reports a primitive that refers to a missing accessor.
var ErrInvalidAccessor = errors.New("accessor index out of range")

// GLTFLoader loads GLTF/GLB files into batches, one per mesh primitive.
type GLTFLoader struct {
	// ExpandStrips converts triangle strips into triangle lists. When false,
	// strip primitives are skipped.
	ExpandStrips bool
	// SkipUnsupported skips primitives that cannot be represented instead of
	// failing the whole load.
	SkipUnsupported bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		ExpandStrips:    true,
		SkipUnsupported: true,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) ([]*Batch, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens a GLTF or GLB file and converts its primitives into batches.
func (l *GLTFLoader) Load(path string) ([]*Batch, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Decode(doc)
}

// Decode converts every mesh primitive of doc into a batch. Indexed
// primitives are expanded into plain vertex streams.
func (l *GLTFLoader) Decode(doc *gltf.Document) ([]*Batch, error) {
	var batches []*Batch
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			b, err := l.primitiveBatch(doc, prim)
			if err != nil {
				if l.SkipUnsupported && errors.Is(err, ErrUnsupportedPrimitive) {
					continue
				}
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			if b != nil {
				batches = append(batches, b)
			}
		}
	}
	return batches, nil
}

// topologyFor maps a glTF primitive mode to a batch topology.
func topologyFor(mode gltf.PrimitiveMode) (Topology, bool) {
	switch mode {
	case gltf.PrimitivePoints:
		return Points, true
	case gltf.PrimitiveLines:
		return Lines, true
	case gltf.PrimitiveLineLoop:
		return LineLoop, true
	case gltf.PrimitiveLineStrip:
		return LineStrip, true
	case gltf.PrimitiveTriangles:
		return Triangles, true
	case gltf.PrimitiveTriangleFan:
		return TriangleFan, true
	}
	return 0, false
}

// primitiveBatch builds a batch from one primitive. It returns nil without
// error for primitives that carry no positions.
func (l *GLTFLoader) primitiveBatch(doc *gltf.Document, prim *gltf.Primitive) (*Batch, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}

	topology, ok := topologyFor(prim.Mode)
	strip := prim.Mode == gltf.PrimitiveTriangleStrip
	if !ok && !(strip && l.ExpandStrips) {
		return nil, fmt.Errorf("mode %v: %w", prim.Mode, ErrUnsupportedPrimitive)
	}

	acc, err := accessorAt(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var colors [][4]uint8
	if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		if acc, err = accessorAt(doc, idx); err != nil {
			return nil, fmt.Errorf("read colours: %w", err)
		}
		if colors, err = modeler.ReadColor(doc, acc, nil); err != nil {
			return nil, fmt.Errorf("read colours: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acc, err = accessorAt(doc, idx); err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
		if uvs, err = modeler.ReadTextureCoord(doc, acc, nil); err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
	}

	vertex := func(i int) Vertex {
		p := positions[i]
		v := Vertex{Position: math3d.V4(float64(p[0]), float64(p[1]), float64(p[2]), 1)}
		if i < len(colors) {
			c := colors[i]
			v.Color = Color{R: c[0], G: c[1], B: c[2], A: c[3]}
		}
		if i < len(uvs) {
			v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
		return v
	}

	order, err := vertexOrder(doc, prim, len(positions))
	if err != nil {
		return nil, err
	}
	if strip {
		order = expandStrip(order)
		topology = Triangles
	}

	vertices := make([]Vertex, 0, len(order))
	for _, i := range order {
		if i < 0 || i >= len(positions) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
		}
		vertices = append(vertices, vertex(i))
	}

	b := &Batch{
		topology: topology,
		vertices: vertices,
		hasColor: len(colors) > 0,
		hasUV:    len(uvs) > 0,
	}
	return b, nil
}

// vertexOrder returns the index stream of prim, or 0..count-1 when the
// primitive is not indexed.
func vertexOrder(doc *gltf.Document, prim *gltf.Primitive, count int) ([]int, error) {
	if prim.Indices == nil {
		order := make([]int, count)
		for i := range order {
			order[i] = i
		}
		return order, nil
	}

	acc, err := accessorAt(doc, *prim.Indices)
	if err != nil {
		return nil, fmt.Errorf("read indices: %w", err)
	}
	indices, err := modeler.ReadIndices(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("read indices: %w", err)
	}
	order := make([]int, len(indices))
	for i, x := range indices {
		order[i] = int(x)
	}
	return order, nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d of %d: %w", idx, len(doc.Accessors), ErrInvalidAccessor)
	}
	return doc.Accessors[idx], nil
}

// expandStrip converts a triangle strip into a triangle list, alternating
// the winding of every other triangle to keep it consistent.
func expandStrip(strip []int) []int {
	if len(strip) < 3 {
		return nil
	}
	out := make([]int, 0, 3*(len(strip)-2))
	for i := 0; i+2 < len(strip); i++ {
		if i%2 == 0 {
			out = append(out, strip[i], strip[i+1], strip[i+2])
		} else {
			out = append(out, strip[i+1], strip[i], strip[i+2])
		}
	}
	return out
}
