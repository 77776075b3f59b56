package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrMeshFormat reports a malformed mesh file.
var ErrMeshFormat = errors.New("malformed mesh file")

// MeshHeader is the first line of a mesh file.
type MeshHeader struct {
	Count    int  // Number of vertices
	HasTex   bool // Texture flag; the format carries no coordinates for it
	HasColor bool // Whether a colour block follows the positions
}

// maxPrealloc caps the slice capacity reserved from an untrusted count.
const maxPrealloc = 1 << 16

// LoadMeshFile loads a triangle batch from a mesh file.
//
// The format is whitespace separated: "count hasTex hasColour", then count
// "x y z" positions, then, when hasColour is non-zero, count "r g b a"
// colours with channels in 0-255.
func LoadMeshFile(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	b, _, err := DecodeMesh(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// ReadMesh reads a triangle batch in the mesh file format from r.
func ReadMesh(r io.Reader) (*Batch, error) {
	b, _, err := DecodeMesh(r)
	return b, err
}

// DecodeMesh reads a mesh file from r and returns the batch together with its
// header.
func DecodeMesh(r io.Reader) (*Batch, MeshHeader, error) {
	tok := newTokenizer(r)

	var hdr MeshHeader
	count, err := tok.int("vertex count")
	if err != nil {
		return nil, hdr, err
	}
	if count < 0 {
		return nil, hdr, fmt.Errorf("negative vertex count %d: %w", count, ErrMeshFormat)
	}
	hasTex, err := tok.int("texture flag")
	if err != nil {
		return nil, hdr, err
	}
	hasColor, err := tok.int("colour flag")
	if err != nil {
		return nil, hdr, err
	}
	hdr = MeshHeader{Count: count, HasTex: hasTex != 0, HasColor: hasColor != 0}

	vertices := make([]Vertex, 0, min(count, maxPrealloc))
	for i := range count {
		var p [3]float64
		for j := range p {
			if p[j], err = tok.float(fmt.Sprintf("vertex %d", i)); err != nil {
				return nil, hdr, err
			}
		}
		vertices = append(vertices, Vertex{Position: math3d.V4(p[0], p[1], p[2], 1)})
	}

	if hdr.HasColor {
		for i := range count {
			var c [4]uint8
			for j := range c {
				if c[j], err = tok.channel(fmt.Sprintf("colour %d", i)); err != nil {
					return nil, hdr, err
				}
			}
			vertices[i].Color = Color{R: c[0], G: c[1], B: c[2], A: c[3]}
		}
	}

	return &Batch{topology: Triangles, vertices: vertices, hasColor: hdr.HasColor}, hdr, nil
}

// WriteMesh writes b in the mesh file format. Only x, y and z of each
// position are written. hasTex is stored in the header as is.
func WriteMesh(w io.Writer, b *Batch, hasTex bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", b.Len(), boolInt(hasTex), boolInt(b.HasColor()))
	for _, v := range b.vertices {
		p := v.Position
		fmt.Fprintf(bw, "%s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}
	if b.HasColor() {
		for _, v := range b.vertices {
			fmt.Fprintf(bw, "%d %d %d %d\n", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		}
	}
	return bw.Flush()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// tokenizer reads whitespace separated tokens.
type tokenizer struct {
	s *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &tokenizer{s: s}
}

func (t *tokenizer) next(what string) (string, error) {
	if t.s.Scan() {
		return t.s.Text(), nil
	}
	if err := t.s.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	return "", fmt.Errorf("read %s: unexpected end of file: %w", what, ErrMeshFormat)
}

func (t *tokenizer) int(what string) (int, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", what, s, ErrMeshFormat)
	}
	return n, nil
}

func (t *tokenizer) float(what string) (float64, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", what, s, ErrMeshFormat)
	}
	return f, nil
}

func (t *tokenizer) channel(what string) (uint8, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", what, s, ErrMeshFormat)
	}
	return uint8(n), nil
}
