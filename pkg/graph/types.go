package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// =============================================================================
// Diagram - ZX Diagram Serialization
// =============================================================================

// Diagram is the canonical serialization format for ZX diagrams.
// Used for JSON files, API responses and as the cache key source.
//
// IDs are the handles of the source graph. They are unique within a document
// but need not be dense, because removed vertices leave gaps.
type Diagram struct {
	Capacity int      `json:"capacity"`
	Wires    []Wire   `json:"wires"`
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Wire records the boundaries of one wire. A nil Input or Output means the
// boundary is absent.
type Wire struct {
	Wire   int    `json:"wire"`
	Input  *int   `json:"input,omitempty"`
	Output *int   `json:"output,omitempty"`
	State  string `json:"state"` // informational; ignored on import
}

// Vertex is a serialized diagram vertex.
type Vertex struct {
	ID       int       `json:"id"`
	Type     string    `json:"type"`               // boundary, z, x, y, hadamard
	Phase    string    `json:"phase,omitempty"`    // fraction of π, e.g. "3/2"; empty means 0
	Pos      *Position `json:"pos,omitempty"`      // nil when unplaced
	Category string    `json:"category,omitempty"` // informational; ignored on import
}

// Position is a layout coordinate in wire space (y is the wire index).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is a serialized undirected edge.
type Edge struct {
	ID       int    `json:"id"`
	Source   int    `json:"source"`
	Target   int    `json:"target"`
	Type     string `json:"type,omitempty"`     // simple (default) or hadamard
	Category string `json:"category,omitempty"` // informational; ignored on import
}

// =============================================================================
// zx.Graph ↔ Diagram Conversion
// =============================================================================

// FromGraph converts a zx.Graph to its serialization format.
// Vertices, edges and wires are emitted in ascending order, so equal graphs
// produce identical documents.
func FromGraph(g *zx.Graph) Diagram {
	out := Diagram{
		Capacity: g.Capacity(),
		Wires:    make([]Wire, 0, len(g.Wires())),
		Vertices: make([]Vertex, 0, g.NumVertices()),
		Edges:    make([]Edge, 0, g.NumEdges()),
	}

	for _, w := range g.Wires() {
		wj := Wire{Wire: w, State: g.WireState(w).String()}
		if in, ok := g.Input(w); ok {
			wj.Input = intPtr(int(in))
		}
		if o, ok := g.Output(w); ok {
			wj.Output = intPtr(int(o))
		}
		out.Wires = append(out.Wires, wj)
	}

	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		out.Vertices = append(out.Vertices, vertexFromZX(int(id), v))
	}

	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{
			ID:       int(e.ID),
			Source:   int(e.Source),
			Target:   int(e.Target),
			Type:     e.Type.String(),
			Category: string(e.Type.Category()),
		})
	}
	return out
}

// ToGraph rebuilds a zx.Graph from its serialization format.
// Handles are reassigned: boundaries first, in wire order, then the remaining
// vertices and edges in document order. Coordinates and phases are kept.
//
// Returns an INVALID_INPUT error for duplicate IDs, dangling references,
// unknown types or a wire boundary that is not a boundary vertex.
func ToGraph(d Diagram) (*zx.Graph, error) {
	byID := make(map[int]Vertex, len(d.Vertices))
	for _, vj := range d.Vertices {
		if _, dup := byID[vj.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate vertex id %d", vj.ID)
		}
		byID[vj.ID] = vj
	}

	g := zx.New(d.Capacity)
	ids := make(map[int]zx.VertexID, len(d.Vertices))

	for _, wj := range d.Wires {
		for _, b := range []struct {
			ref *int
			add func(int) (zx.VertexID, error)
		}{{wj.Input, g.AddInput}, {wj.Output, g.AddOutput}} {
			if b.ref == nil {
				continue
			}
			vj, ok := byID[*b.ref]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "wire %d: unknown vertex %d", wj.Wire, *b.ref)
			}
			if t, err := zx.ParseVertexType(vj.Type); err != nil || t != zx.TypeBoundary {
				return nil, errors.New(errors.ErrCodeInvalidInput, "wire %d: vertex %d is %s, not a boundary", wj.Wire, vj.ID, vj.Type)
			}
			if _, seen := ids[vj.ID]; seen {
				return nil, errors.New(errors.ErrCodeInvalidInput, "vertex %d is the boundary of more than one wire", vj.ID)
			}
			id, err := b.add(wj.Wire)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "wire %d", wj.Wire)
			}
			ids[vj.ID] = id
		}
	}

	for _, vj := range d.Vertices {
		v, err := vertexToZX(vj)
		if err != nil {
			return nil, err
		}
		id, registered := ids[vj.ID]
		if !registered {
			ids[vj.ID] = g.AddVertex(v)
			continue
		}
		if p, ok := v.Coords(); ok {
			_ = g.SetCoords(id, p.X, p.Y)
		}
	}

	for _, ej := range d.Edges {
		t, err := zx.ParseEdgeType(ej.Type)
		if err != nil {
			return nil, err
		}
		s, ok := ids[ej.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: unknown source %d", ej.ID, ej.Source)
		}
		tg, ok := ids[ej.Target]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: unknown target %d", ej.ID, ej.Target)
		}
		if _, err := g.AddEdgeOfType(s, tg, t); err != nil {
			return nil, fmt.Errorf("add edge %d: %w", ej.ID, err)
		}
	}
	return g, nil
}

// UnmarshalDiagram deserializes JSON bytes to a Diagram.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func vertexFromZX(id int, v zx.Vertex) Vertex {
	vj := Vertex{
		ID:       id,
		Type:     v.Type().String(),
		Category: string(v.Category()),
	}
	if !v.Phase().IsZero() {
		text, _ := v.Phase().MarshalText()
		vj.Phase = string(text)
	}
	if p, ok := v.Coords(); ok {
		vj.Pos = &Position{X: p.X, Y: p.Y}
	}
	return vj
}

func vertexToZX(vj Vertex) (zx.Vertex, error) {
	t, err := zx.ParseVertexType(vj.Type)
	if err != nil {
		return zx.Vertex{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "vertex %d", vj.ID)
	}
	v := zx.NewVertex(t)
	if vj.Phase != "" {
		p, err := zx.ParsePhase(vj.Phase)
		if err != nil {
			return zx.Vertex{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "vertex %d", vj.ID)
		}
		v = v.WithPhase(p)
	}
	if vj.Pos != nil {
		v = v.WithCoords(vj.Pos.X, vj.Pos.Y)
	}
	return v, nil
}

func intPtr(i int) *int { return &i }
