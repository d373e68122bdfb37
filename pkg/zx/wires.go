package zx

import (
	"slices"
	"strconv"

	"github.com/emirpasic/gods/maps/treemap"
)

// WireState describes how far a wire has been built.
type WireState int

const (
	// WireUnallocated means the wire has neither an input nor an output.
	WireUnallocated WireState = iota
	// WirePartial means exactly one of the two boundaries exists. No builder
	// leaves a wire in this state, and operations that need a whole wire
	// reject it.
	WirePartial
	// WireBare means both boundaries exist and are directly connected: the
	// identity on that wire.
	WireBare
	// WireOccupied means both boundaries exist and no edge connects them
	// directly, so any path between them runs through interior vertices.
	WireOccupied
)

func (s WireState) String() string {
	switch s {
	case WireUnallocated:
		return "unallocated"
	case WirePartial:
		return "partial"
	case WireBare:
		return "bare"
	case WireOccupied:
		return "occupied"
	}
	return "unknown"
}

// Capacity returns the size of the addressable wire range. It is at least one
// more than the highest wire index ever recorded and never shrinks.
func (g *Graph) Capacity() int { return g.capacity }

// Input returns the input boundary of wire w and true, or NoVertex and false.
func (g *Graph) Input(w int) (VertexID, bool) { return boundary(g.inputs, w) }

// Output returns the output boundary of wire w and true, or NoVertex and false.
func (g *Graph) Output(w int) (VertexID, bool) { return boundary(g.outputs, w) }

func boundary(m *treemap.Map, w int) (VertexID, bool) {
	v, ok := m.Get(w)
	if !ok {
		return NoVertex, false
	}
	return v.(VertexID), true
}

// NumInputs returns the number of wires with an input boundary.
func (g *Graph) NumInputs() int { return g.inputs.Size() }

// NumOutputs returns the number of wires with an output boundary.
func (g *Graph) NumOutputs() int { return g.outputs.Size() }

// Wires returns, in ascending order, every wire index that has an input or an
// output boundary.
func (g *Graph) Wires() []int {
	ws := make([]int, 0, g.inputs.Size()+g.outputs.Size())
	for _, m := range [2]*treemap.Map{g.inputs, g.outputs} {
		for _, k := range m.Keys() {
			ws = append(ws, k.(int))
		}
	}
	slices.Sort(ws)
	return slices.Compact(ws)
}

// WireState reports the state of wire w. Negative and out-of-range indices
// are unallocated.
func (g *Graph) WireState(w int) WireState {
	in, hasIn := g.Input(w)
	out, hasOut := g.Output(w)
	switch {
	case !hasIn && !hasOut:
		return WireUnallocated
	case hasIn != hasOut:
		return WirePartial
	case len(g.EdgesBetween(in, out)) > 0:
		return WireBare
	default:
		return WireOccupied
	}
}

// AddInput creates a boundary vertex at (InputX, w) and registers it as the
// input of wire w, growing the capacity to at least w+1.
// Returns a *StructuralError if w already has an input, or an
// *ArgumentError if w is negative.
func (g *Graph) AddInput(w int) (VertexID, error) {
	return g.addBoundary("add input", g.inputs, w, InputX)
}

// AddOutput creates a boundary vertex at (OutputX, w) and registers it as
// the output of wire w, growing the capacity to at least w+1.
// Returns a *StructuralError if w already has an output, or an
// *ArgumentError if w is negative.
func (g *Graph) AddOutput(w int) (VertexID, error) {
	return g.addBoundary("add output", g.outputs, w, OutputX)
}

func (g *Graph) addBoundary(op string, m *treemap.Map, w int, x float64) (VertexID, error) {
	if w < 0 {
		return NoVertex, negativeWire(op, w)
	}
	if _, exists := m.Get(w); exists {
		return NoVertex, &StructuralError{Op: op, Wire: w, State: g.WireState(w),
			Msg: "boundary already present"}
	}
	g.grow(w)
	id := g.AddVertex(BoundaryVertex().WithCoords(x, float64(w)))
	g.vertices[id].wire = w
	m.Put(w, id)
	return id, nil
}

// AddWire makes wire w bare. An unallocated wire gets an input, an output
// and an edge between them; a bare wire is left untouched.
// Returns a *StructuralError if the wire is partial or occupied.
func (g *Graph) AddWire(w int) error {
	if err := g.checkAddWire(w); err != nil {
		return err
	}
	if g.WireState(w) == WireBare {
		return nil
	}
	in, err := g.AddInput(w)
	if err != nil {
		return err
	}
	out, err := g.AddOutput(w)
	if err != nil {
		return err
	}
	_, err = g.AddEdge(in, out)
	return err
}

func (g *Graph) checkAddWire(w int) error {
	if w < 0 {
		return negativeWire("add wire", w)
	}
	switch st := g.WireState(w); st {
	case WireUnallocated, WireBare:
		return nil
	default:
		return &StructuralError{Op: "add wire", Wire: w, State: st}
	}
}

// AddWires calls [Graph.AddWire] for each index. All indices are checked
// before any is added, so on error the graph is unchanged.
func (g *Graph) AddWires(ws ...int) error {
	for _, w := range ws {
		if err := g.checkAddWire(w); err != nil {
			return err
		}
	}
	for _, w := range ws {
		if err := g.AddWire(w); err != nil {
			return err
		}
	}
	return nil
}

// AddWiresExcluding adds every wire in ws that is not listed in excluded.
func (g *Graph) AddWiresExcluding(ws []int, excluded ...int) error {
	keep := make([]int, 0, len(ws))
	for _, w := range ws {
		if !slices.Contains(excluded, w) {
			keep = append(keep, w)
		}
	}
	return g.AddWires(keep...)
}

// RemoveWire deletes the direct edge between the input and output of wire w,
// leaving both boundaries in place. Use it to open a bare wire before wiring
// interior vertices by hand.
// Returns a *StructuralError unless the wire is bare.
func (g *Graph) RemoveWire(w int) error {
	in, out, err := g.bareWire("remove wire", w)
	if err != nil {
		return err
	}
	return g.RemoveEdge(in, out)
}

// InsertOnWire places v on bare wire w: the bare edge is removed, v is added
// and connected to the wire's input and output. A vertex without coordinates
// is placed at (SpiderX, w). Afterwards the wire is occupied with v as its
// only interior vertex.
// Returns a *StructuralError unless the wire is bare, in which case the graph
// is unchanged.
func (g *Graph) InsertOnWire(v Vertex, w int) (VertexID, error) {
	in, out, err := g.bareWire("insert on wire", w)
	if err != nil {
		return NoVertex, err
	}
	if err := g.RemoveEdge(in, out); err != nil {
		return NoVertex, err
	}
	if _, ok := v.Coords(); !ok {
		v = v.WithCoords(SpiderX, float64(w))
	}
	id := g.AddVertex(v)
	if _, err := g.AddEdge(in, id); err != nil {
		return NoVertex, err
	}
	if _, err := g.AddEdge(id, out); err != nil {
		return NoVertex, err
	}
	return id, nil
}

func (g *Graph) bareWire(op string, w int) (in, out VertexID, err error) {
	if st := g.WireState(w); st != WireBare {
		return NoVertex, NoVertex, &StructuralError{Op: op, Wire: w, State: st}
	}
	in, _ = g.Input(w)
	out, _ = g.Output(w)
	return in, out, nil
}

func (g *Graph) grow(w int) {
	if w+1 > g.capacity {
		g.capacity = w + 1
	}
}

func negativeWire(op string, w int) error {
	return &ArgumentError{Op: op, Msg: "negative wire index " + strconv.Itoa(w)}
}
