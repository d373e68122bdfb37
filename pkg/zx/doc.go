// Package zx provides the diagram data structure of the ZX-calculus: phases,
// typed vertices and a multigraph with per-wire boundary bookkeeping.
//
// # Overview
//
// A ZX diagram is an undirected multigraph. Interior vertices are spiders of
// three colors ([TypeZ], [TypeX], [TypeY]) carrying a [Phase], or unary
// [TypeHadamard] nodes. Each logical wire (qubit) is delimited by two
// [TypeBoundary] vertices, its input and its output, tracked by the [Graph]
// in sparse maps keyed by wire index.
//
// # Phases
//
// A [Phase] is an exact rational multiple of π normalized into [0, 2):
//
//	zx.NewPhase(-1, 2) == zx.PhaseMinus // 3π/2
//	zx.NewPhase(9, 2)  == zx.PhasePlus  // π/2
//	zx.NewPhase(2, 1).IsZero()         // true
//
// # Wires
//
// Every wire is in one of three states: unallocated, bare (input and output
// directly connected, the identity) or occupied (interior vertices between
// the boundaries). Wires are allocated lazily. [New] only reserves capacity;
// [Graph.AddWire] turns an unallocated wire into a bare one, and
// [Graph.InsertOnWire] places a vertex on a bare wire:
//
//	g := zx.New(2)
//	_ = g.AddWires(0, 1)
//	z, _ := g.InsertOnWire(zx.Z().WithPhase(zx.PhaseOne), 0)
//
// Referencing a wire beyond the current capacity grows it. Capacity never
// shrinks.
//
// # Handles
//
// [VertexID] and [EdgeID] are stable: they are never reused, and removing
// one element never changes what another handle refers to.
//
// # Errors
//
// Precondition failures are returned as typed errors that also carry a code
// from the errors package: [*ArgumentError], [*PauliFormatError],
// [*StructuralError] and [*LookupError].
package zx
