package zx

import (
	"fmt"

	"github.com/matzehuels/zxdraw/pkg/errors"
)

// ArgumentError is returned when a parameter is invalid on its own, such as
// equal control and target wires or a non-positive wire count.
type ArgumentError struct {
	Op  string // operation that rejected the argument
	Msg string
}

func (e *ArgumentError) Error() string { return e.Op + ": " + e.Msg }

// Code implements errors.Coder.
func (e *ArgumentError) Code() errors.Code { return errors.ErrCodeInvalidArgument }

// PauliFormatError is returned when a Pauli string contains a character
// outside {I, X, Y, Z}. Pos is the zero-based rune index of Char.
type PauliFormatError struct {
	Char rune
	Pos  int
}

func (e *PauliFormatError) Error() string {
	return fmt.Sprintf("invalid Pauli character %q at position %d", e.Char, e.Pos)
}

// Code implements errors.Coder.
func (e *PauliFormatError) Code() errors.Code { return errors.ErrCodeInvalidPauli }

// StructuralError is returned when an operation needs a wire in a particular
// state and finds it in another. State is what was found.
type StructuralError struct {
	Op    string
	Wire  int
	State WireState
	Msg   string // optional detail
}

func (e *StructuralError) Error() string {
	s := fmt.Sprintf("%s: wire %d is %s", e.Op, e.Wire, e.State)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// Code implements errors.Coder.
func (e *StructuralError) Code() errors.Code { return errors.ErrCodeWireState }

// LookupError is returned when a vertex or edge handle does not refer to a
// live element, or when no edge connects the requested pair.
type LookupError struct {
	Op     string
	Source VertexID
	Target VertexID // NoVertex when only Source is involved
	Edge   EdgeID   // NoEdge unless an edge handle was looked up
}

func (e *LookupError) Error() string {
	switch {
	case e.Edge != NoEdge:
		return fmt.Sprintf("%s: no edge %d", e.Op, e.Edge)
	case e.Target == NoVertex:
		return fmt.Sprintf("%s: no vertex %d", e.Op, e.Source)
	default:
		return fmt.Sprintf("%s: no edge between %d and %d", e.Op, e.Source, e.Target)
	}
}

// Code implements errors.Coder.
func (e *LookupError) Code() errors.Code { return errors.ErrCodeNotFound }

func vertexNotFound(op string, id VertexID) error {
	return &LookupError{Op: op, Source: id, Target: NoVertex, Edge: NoEdge}
}
