package models

import (
	"fmt"
	"strings"
)

// Topology describes how a flat vertex sequence is grouped into primitives.
type Topology int

const (
	Points        Topology = iota // Every vertex is a point
	Lines                         // Non-overlapping vertex pairs
	LineStrip                     // Overlapping pairs (i, i+1)
	LineLoop                      // LineStrip closed back to the first vertex
	Triangles                     // Non-overlapping vertex triples
	TriangleFan                   // Vertex 0 shared by every triangle
)

var topologyNames = [...]string{
	Points:      "points",
	Lines:       "lines",
	LineStrip:   "line-strip",
	LineLoop:    "line-loop",
	Triangles:   "triangles",
	TriangleFan: "triangle-fan",
}

func (t Topology) String() string {
	if t < 0 || int(t) >= len(topologyNames) {
		return fmt.Sprintf("Topology(%d)", int(t))
	}
	return topologyNames[t]
}

// ParseTopology returns the topology with the given name. Names match
// Topology.String and are case-insensitive; underscores are accepted in place
// of dashes.
func ParseTopology(name string) (Topology, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range topologyNames {
		if n == name {
			return Topology(i), nil
		}
	}
	return 0, fmt.Errorf("unknown topology %q", name)
}

// PrimitiveCount returns how many complete primitives n vertices produce.
// Vertices that do not complete a primitive are not counted.
func (t Topology) PrimitiveCount(n int) int {
	switch t {
	case Points:
		return n
	case Lines:
		return n / 2
	case LineStrip:
		return max(n-1, 0)
	case LineLoop:
		if n < 2 {
			return 0
		}
		return n
	case Triangles:
		return n / 3
	case TriangleFan:
		return max(n-2, 0)
	}
	return 0
}

// consistent reports whether n vertices form whole primitives only.
func (t Topology) consistent(n int) bool {
	switch t {
	case Points:
		return true
	case Lines:
		return n%2 == 0
	case LineStrip, LineLoop:
		return n != 1
	case Triangles:
		return n%3 == 0
	case TriangleFan:
		return n == 0 || n >= 3
	}
	return false
}
