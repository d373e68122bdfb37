package zx

import (
	"strings"

	"github.com/matzehuels/zxdraw/pkg/errors"
)

// VertexType tags what a vertex represents in the diagram.
type VertexType int

const (
	// TypeBoundary marks a wire's input or output. Boundaries carry no logic.
	TypeBoundary VertexType = iota
	// TypeZ is a Z (green) spider.
	TypeZ
	// TypeX is an X (red) spider.
	TypeX
	// TypeY is a Y spider.
	TypeY
	// TypeHadamard is the unary color-change node.
	TypeHadamard
)

var vertexTypeNames = [...]string{
	TypeBoundary: "boundary",
	TypeZ:        "z",
	TypeX:        "x",
	TypeY:        "y",
	TypeHadamard: "hadamard",
}

// String returns the lowercase name of the type.
func (t VertexType) String() string {
	if t < 0 || int(t) >= len(vertexTypeNames) {
		return "unknown"
	}
	return vertexTypeNames[t]
}

// IsSpider reports whether t is one of the three spider colors.
func (t VertexType) IsSpider() bool {
	return t == TypeZ || t == TypeX || t == TypeY
}

// ParseVertexType parses a type name, case-insensitively. Single letters
// "z", "x", "y", "h" and "b" are accepted as well.
func ParseVertexType(s string) (VertexType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boundary", "b":
		return TypeBoundary, nil
	case "z":
		return TypeZ, nil
	case "x":
		return TypeX, nil
	case "y":
		return TypeY, nil
	case "hadamard", "h":
		return TypeHadamard, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown vertex type %q", s)
}

// EdgeType tags an edge as plain or color-changing.
type EdgeType int

const (
	// EdgeSimple is a plain wire.
	EdgeSimple EdgeType = iota
	// EdgeHadamard is a color-changing wire.
	EdgeHadamard
)

// String returns "simple" or "hadamard".
func (t EdgeType) String() string {
	if t == EdgeHadamard {
		return "hadamard"
	}
	return "simple"
}

// Category returns the exporter label for the edge type.
func (t EdgeType) Category() Category {
	if t == EdgeHadamard {
		return CategoryHadamardEdge
	}
	return CategorySimpleEdge
}

// ParseEdgeType parses "simple" or "hadamard", case-insensitively.
func ParseEdgeType(s string) (EdgeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "":
		return EdgeSimple, nil
	case "hadamard", "h":
		return EdgeHadamard, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown edge type %q", s)
}

// Category is one of a small closed set of style labels that exporters map
// vertices and edges onto.
type Category string

// Vertex and edge categories.
const (
	CategoryBoundary     Category = "boundary"
	CategoryHadamard     Category = "hadamard"
	CategoryZNode        Category = "z_node"
	CategoryXNode        Category = "x_node"
	CategoryYNode        Category = "y_node"
	CategoryZPhase       Category = "z_phase"
	CategoryXPhase       Category = "x_phase"
	CategoryYPhase       Category = "y_phase"
	CategorySimpleEdge   Category = "simple_edge"
	CategoryHadamardEdge Category = "hadamard_edge"
)

// Point is a 2-D layout position. X grows left to right along the wires and
// Y is the wire index.
type Point struct {
	X, Y float64
}

// Display returns the point in display space, where increasing wire index
// maps to a decreasing vertical coordinate.
func (p Point) Display() Point {
	return Point{X: p.X, Y: -p.Y}
}

// Layout positions shared by builders and the graph.
const (
	InputX  = 0.0 // column of input boundaries
	SpiderX = 1.0 // column of single-layer gate vertices
	OutputX = 2.0 // column of output boundaries
	HubX    = 1.8 // column of a gadget hub
	// HubOffset is the distance below the last wire at which a gadget hub sits.
	HubOffset = 0.8
)

// Vertex is the payload of a graph node: a type tag, a phase and optional
// layout coordinates. Vertex is a value type; the With methods return copies.
type Vertex struct {
	typ    VertexType
	phase  Phase
	pos    Point
	placed bool
}

// NewVertex returns a vertex of the given type with zero phase and no coordinates.
func NewVertex(t VertexType) Vertex { return Vertex{typ: t} }

// BoundaryVertex returns a boundary marker.
func BoundaryVertex() Vertex { return NewVertex(TypeBoundary) }

// Z returns a zero-phase Z spider.
func Z() Vertex { return NewVertex(TypeZ) }

// X returns a zero-phase X spider.
func X() Vertex { return NewVertex(TypeX) }

// Y returns a zero-phase Y spider.
func Y() Vertex { return NewVertex(TypeY) }

// Hadamard returns a color-change node.
func Hadamard() Vertex { return NewVertex(TypeHadamard) }

// Spider returns a spider of type t carrying phase p.
func Spider(t VertexType, p Phase) Vertex { return Vertex{typ: t, phase: p} }

// WithPhase returns a copy of v with phase p.
func (v Vertex) WithPhase(p Phase) Vertex {
	v.phase = p
	return v
}

// WithCoords returns a copy of v placed at (x, y).
func (v Vertex) WithCoords(x, y float64) Vertex {
	v.pos = Point{X: x, Y: y}
	v.placed = true
	return v
}

// Type returns the vertex type.
func (v Vertex) Type() VertexType { return v.typ }

// Phase returns the vertex phase. It is always zero-valued for boundaries
// unless set explicitly, and ignored for boundary and Hadamard vertices.
func (v Vertex) Phase() Phase { return v.phase }

// Coords returns the layout position and whether one was assigned.
func (v Vertex) Coords() (Point, bool) { return v.pos, v.placed }

// IsBoundary reports whether v is a boundary marker.
func (v Vertex) IsBoundary() bool { return v.typ == TypeBoundary }

// Category maps the vertex type and phase-zero-ness onto an exporter label.
func (v Vertex) Category() Category {
	zero := v.phase.IsZero()
	switch v.typ {
	case TypeBoundary:
		return CategoryBoundary
	case TypeHadamard:
		return CategoryHadamard
	case TypeZ:
		if zero {
			return CategoryZNode
		}
		return CategoryZPhase
	case TypeX:
		if zero {
			return CategoryXNode
		}
		return CategoryXPhase
	case TypeY:
		if zero {
			return CategoryYNode
		}
		return CategoryYPhase
	}
	return CategoryBoundary
}
