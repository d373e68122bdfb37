package zx

import (
	"slices"

	"github.com/emirpasic/gods/maps/treemap"
)

// VertexID is a stable handle to a vertex in a [Graph]. Handles are assigned
// in insertion order and are never reused, even after the vertex is removed.
type VertexID int

// EdgeID is a stable handle to an edge in a [Graph], with the same lifetime
// rules as [VertexID].
type EdgeID int

// Sentinel handles for "no vertex" and "no edge".
const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
)

// Edge is an undirected, typed connection between two vertices.
// Source and Target keep the order given at insertion but carry no direction.
type Edge struct {
	ID     EdgeID
	Source VertexID
	Target VertexID
	Type   EdgeType
}

// Other returns the endpoint of e opposite to v.
func (e Edge) Other(v VertexID) VertexID {
	if e.Source == v {
		return e.Target
	}
	return e.Source
}

type vertexSlot struct {
	v     Vertex
	live  bool
	wire  int      // wire index if v is a registered boundary, else -1
	edges []EdgeID // live incident edges, ascending; a self-loop appears once
}

type edgeSlot struct {
	e    Edge
	live bool
}

// Graph is a ZX diagram: an undirected multigraph of typed vertices plus two
// sparse maps from wire index to the wire's input and output boundary.
//
// Vertices and edges live in append-only arenas. Removing one tombstones its
// slot, so every other handle stays valid and keeps its meaning. Parallel
// edges and self-loops are allowed.
//
// Wires are allocated lazily: a wire index is unallocated until a boundary is
// recorded for it. The capacity of the wire range only grows.
//
// The zero value is not usable - use [New] or [NewWithWires].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	vertices []vertexSlot
	edges    []edgeSlot
	nv, ne   int

	inputs   *treemap.Map // wire -> VertexID
	outputs  *treemap.Map // wire -> VertexID
	capacity int
}

// New creates an empty graph able to address wires [0, capacity) without
// growing. No wire is allocated; see [Graph.AddWire]. A negative capacity is
// treated as zero.
func New(capacity int) *Graph {
	return &Graph{
		inputs:   treemap.NewWithIntComparator(),
		outputs:  treemap.NewWithIntComparator(),
		capacity: max(capacity, 0),
	}
}

// NewWithWires creates a graph whose wires 0..n-1 are all bare.
// Returns an *ArgumentError if n is not positive.
func NewWithWires(n int) (*Graph, error) {
	if n <= 0 {
		return nil, &ArgumentError{Op: "new graph", Msg: "wire count must be positive"}
	}
	g := New(n)
	for w := range n {
		if err := g.AddWire(w); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddVertex inserts v and returns its handle. The vertex is not attached to
// any wire; connect it with [Graph.AddEdge] or use [Graph.InsertOnWire].
func (g *Graph) AddVertex(v Vertex) VertexID {
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, vertexSlot{v: v, live: true, wire: -1})
	g.nv++
	return id
}

// AddEdge connects a and b with a simple edge.
// Returns a *LookupError if either vertex does not exist.
func (g *Graph) AddEdge(a, b VertexID) (EdgeID, error) {
	return g.AddEdgeOfType(a, b, EdgeSimple)
}

// AddEdgeOfType connects a and b with an edge of type t. No check is made for
// existing edges between the pair; a == b creates a self-loop.
// Returns a *LookupError if either vertex does not exist.
func (g *Graph) AddEdgeOfType(a, b VertexID, t EdgeType) (EdgeID, error) {
	for _, v := range [2]VertexID{a, b} {
		if !g.alive(v) {
			return NoEdge, vertexNotFound("add edge", v)
		}
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edgeSlot{e: Edge{ID: id, Source: a, Target: b, Type: t}, live: true})
	g.ne++
	g.vertices[a].edges = append(g.vertices[a].edges, id)
	if a != b {
		g.vertices[b].edges = append(g.vertices[b].edges, id)
	}
	return id, nil
}

// RemoveVertex removes the vertex and all its incident edges.
// Returns a *LookupError if the vertex does not exist, or a *StructuralError
// if it is the registered input or output of a wire.
func (g *Graph) RemoveVertex(id VertexID) error {
	if !g.alive(id) {
		return vertexNotFound("remove vertex", id)
	}
	if w := g.vertices[id].wire; w >= 0 {
		return &StructuralError{Op: "remove vertex", Wire: w, State: g.WireState(w),
			Msg: "vertex is a registered boundary"}
	}
	for _, e := range slices.Clone(g.vertices[id].edges) {
		g.removeEdge(e)
	}
	g.vertices[id] = vertexSlot{wire: -1}
	g.nv--
	return nil
}

// RemoveEdge removes exactly one edge between a and b, in either direction.
// When several exist, the one with the lowest handle goes first.
// Returns a *LookupError if no edge connects the pair.
func (g *Graph) RemoveEdge(a, b VertexID) error {
	ids := g.EdgesBetween(a, b)
	if len(ids) == 0 {
		return &LookupError{Op: "remove edge", Source: a, Target: b, Edge: NoEdge}
	}
	g.removeEdge(ids[0])
	return nil
}

// RemoveEdgeByID removes the edge with the given handle.
// Returns a *LookupError if it does not exist.
func (g *Graph) RemoveEdgeByID(id EdgeID) error {
	if !g.edgeAlive(id) {
		return &LookupError{Op: "remove edge", Source: NoVertex, Target: NoVertex, Edge: id}
	}
	g.removeEdge(id)
	return nil
}

func (g *Graph) removeEdge(id EdgeID) {
	e := g.edges[id].e
	g.edges[id] = edgeSlot{}
	g.ne--
	for _, v := range [2]VertexID{e.Source, e.Target} {
		s := &g.vertices[v]
		if i, ok := slices.BinarySearch(s.edges, id); ok {
			s.edges = slices.Delete(s.edges, i, i+1)
		}
	}
}

// SetCoords places the vertex at (x, y).
// Returns a *LookupError if the vertex does not exist.
func (g *Graph) SetCoords(id VertexID, x, y float64) error {
	if !g.alive(id) {
		return vertexNotFound("set coords", id)
	}
	g.vertices[id].v = g.vertices[id].v.WithCoords(x, y)
	return nil
}

// SetPhase replaces the phase of the vertex.
// Returns a *LookupError if the vertex does not exist.
func (g *Graph) SetPhase(id VertexID, p Phase) error {
	if !g.alive(id) {
		return vertexNotFound("set phase", id)
	}
	g.vertices[id].v = g.vertices[id].v.WithPhase(p)
	return nil
}

// IsWellFormed reports whether the diagram is ready for export: it has at
// least one non-boundary vertex and every non-boundary vertex has coordinates.
func (g *Graph) IsWellFormed() bool {
	interior := false
	for _, s := range g.vertices {
		if !s.live || s.v.IsBoundary() {
			continue
		}
		if _, ok := s.v.Coords(); !ok {
			return false
		}
		interior = true
	}
	return interior
}

// Vertex returns the vertex with the given handle and true, or the zero
// Vertex and false if it does not exist.
func (g *Graph) Vertex(id VertexID) (Vertex, bool) {
	if !g.alive(id) {
		return Vertex{}, false
	}
	return g.vertices[id].v, true
}

// Edge returns the edge with the given handle and true, or the zero Edge and
// false if it does not exist.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	if !g.edgeAlive(id) {
		return Edge{}, false
	}
	return g.edges[id].e, true
}

// VertexIDs returns the handles of all live vertices in ascending order.
func (g *Graph) VertexIDs() []VertexID {
	ids := make([]VertexID, 0, g.nv)
	for i, s := range g.vertices {
		if s.live {
			ids = append(ids, VertexID(i))
		}
	}
	return ids
}

// Edges returns all live edges in ascending handle order.
// The returned slice is a copy.
func (g *Graph) Edges() []Edge {
	es := make([]Edge, 0, g.ne)
	for _, s := range g.edges {
		if s.live {
			es = append(es, s.e)
		}
	}
	return es
}

// EdgesBetween returns the handles of all edges connecting a and b, in either
// direction, in ascending order. Returns nil if there are none.
func (g *Graph) EdgesBetween(a, b VertexID) []EdgeID {
	if !g.alive(a) || !g.alive(b) {
		return nil
	}
	var ids []EdgeID
	for _, id := range g.vertices[a].edges {
		if g.edges[id].e.Other(a) == b {
			ids = append(ids, id)
		}
	}
	return ids
}

// Neighbors returns the distinct vertices adjacent to id in ascending order.
// A vertex with a self-loop is its own neighbor.
func (g *Graph) Neighbors(id VertexID) []VertexID {
	if !g.alive(id) {
		return nil
	}
	var out []VertexID
	for _, e := range g.vertices[id].edges {
		out = append(out, g.edges[e].e.Other(id))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Degree returns the number of edge ends at id. A self-loop counts twice.
// Returns 0 if the vertex does not exist.
func (g *Graph) Degree(id VertexID) int {
	if !g.alive(id) {
		return 0
	}
	d := 0
	for _, e := range g.vertices[id].edges {
		d++
		if g.edges[e].e.Source == g.edges[e].e.Target {
			d++
		}
	}
	return d
}

// NumVertices returns the number of live vertices, boundaries included.
func (g *Graph) NumVertices() int { return g.nv }

// NumEdges returns the number of live edges.
func (g *Graph) NumEdges() int { return g.ne }

// NumSpiders returns the number of live Z, X and Y vertices.
func (g *Graph) NumSpiders() int {
	n := 0
	for _, s := range g.vertices {
		if s.live && s.v.Type().IsSpider() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of g. Handles are preserved, so an ID valid in g
// refers to the same element in the clone.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		vertices: make([]vertexSlot, len(g.vertices)),
		edges:    slices.Clone(g.edges),
		nv:       g.nv,
		ne:       g.ne,
		inputs:   treemap.NewWithIntComparator(),
		outputs:  treemap.NewWithIntComparator(),
		capacity: g.capacity,
	}
	for i, s := range g.vertices {
		s.edges = slices.Clone(s.edges)
		c.vertices[i] = s
	}
	copyBoundaries(c.inputs, g.inputs)
	copyBoundaries(c.outputs, g.outputs)
	return c
}

func copyBoundaries(dst, src *treemap.Map) {
	it := src.Iterator()
	for it.Next() {
		dst.Put(it.Key(), it.Value())
	}
}

func (g *Graph) alive(id VertexID) bool {
	return id >= 0 && int(id) < len(g.vertices) && g.vertices[id].live
}

func (g *Graph) edgeAlive(id EdgeID) bool {
	return id >= 0 && int(id) < len(g.edges) && g.edges[id].live
}
