// Package gates builds standard ZX diagram fragments: Pauli operators,
// Clifford half-turns, general rotations, the Hadamard node, CX and CZ, and
// multi-leg Pauli gadgets.
//
// Every builder is a pure function returning a fresh, well-formed
// [zx.Graph]. On failure the graph is nil; no partially built diagram is ever
// returned.
//
// Every builder allocates each wire from 0 up to the highest wire it touches,
// leaving the ones it does not touch bare. No builder produces more than
// [MaxWires] wires.
//
// [Gate] and [Build] describe a diagram declaratively, for callers that read
// gate descriptions from flags, manifests or request bodies:
//
//	g, err := gates.Build(gates.Gate{Kind: gates.KindCX, Control: 0, Target: 1})
package gates
