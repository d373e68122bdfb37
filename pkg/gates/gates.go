package gates

import (
	"fmt"
	"strings"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// MaxWires is the widest diagram any builder produces. Requests for more
// wires fail with a *zx.ArgumentError.
const MaxWires = 1024

// Sign selects the direction of a Clifford half-turn.
type Sign int

const (
	// Plus is a +π/2 rotation.
	Plus Sign = iota
	// Minus is a -π/2 rotation, stored as 3π/2.
	Minus
)

// String returns "plus" or "minus".
func (s Sign) String() string {
	if s == Minus {
		return "minus"
	}
	return "plus"
}

// Phase returns the phase of the half-turn.
func (s Sign) Phase() zx.Phase {
	if s == Minus {
		return zx.PhaseMinus
	}
	return zx.PhasePlus
}

// ParseSign parses "plus", "+", "minus" or "-", case-insensitively.
func ParseSign(s string) (Sign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plus", "+", "":
		return Plus, nil
	case "minus", "-":
		return Minus, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown sign %q (want plus or minus)", s)
}

// Rotation builds a single spider of color t with the given phase on wire
// qubit. Wires 0..qubit are allocated and every wire but qubit stays bare.
func Rotation(t zx.VertexType, phase zx.Phase, qubit int) (*zx.Graph, error) {
	if err := checkColor("rotation", t); err != nil {
		return nil, err
	}
	return single("rotation", zx.Spider(t, phase), qubit)
}

// Pauli builds the Pauli operator of color t (a π spider) on wire qubit.
func Pauli(t zx.VertexType, qubit int) (*zx.Graph, error) {
	return Rotation(t, zx.PhaseOne, qubit)
}

// PauliZ builds a Pauli Z on wire qubit.
func PauliZ(qubit int) (*zx.Graph, error) { return Pauli(zx.TypeZ, qubit) }

// PauliX builds a Pauli X on wire qubit.
func PauliX(qubit int) (*zx.Graph, error) { return Pauli(zx.TypeX, qubit) }

// PauliY builds a Pauli Y on wire qubit.
func PauliY(qubit int) (*zx.Graph, error) { return Pauli(zx.TypeY, qubit) }

// Clifford builds the half-turn of color t and sign s on wire qubit: a
// spider with phase π/2 for [Plus] or 3π/2 for [Minus].
func Clifford(t zx.VertexType, s Sign, qubit int) (*zx.Graph, error) {
	return Rotation(t, s.Phase(), qubit)
}

// ZPlus builds a Z spider with phase π/2 on wire qubit.
func ZPlus(qubit int) (*zx.Graph, error) { return Clifford(zx.TypeZ, Plus, qubit) }

// ZMinus builds a Z spider with phase 3π/2 on wire qubit.
func ZMinus(qubit int) (*zx.Graph, error) { return Clifford(zx.TypeZ, Minus, qubit) }

// XPlus builds an X spider with phase π/2 on wire qubit.
func XPlus(qubit int) (*zx.Graph, error) { return Clifford(zx.TypeX, Plus, qubit) }

// XMinus builds an X spider with phase 3π/2 on wire qubit.
func XMinus(qubit int) (*zx.Graph, error) { return Clifford(zx.TypeX, Minus, qubit) }

// YPlus builds a Y spider with phase π/2 on wire qubit.
func YPlus(qubit int) (*zx.Graph, error) { return Clifford(zx.TypeY, Plus, qubit) }

// YMinus builds a Y spider with phase 3π/2 on wire qubit.
func YMinus(qubit int) (*zx.Graph, error) { return Clifford(zx.TypeY, Minus, qubit) }

// HadamardGate builds a single color-change node on wire qubit.
func HadamardGate(qubit int) (*zx.Graph, error) {
	return single("hadamard", zx.Hadamard(), qubit)
}

// Identity builds n bare wires. n must be in 1..[MaxWires].
func Identity(n int) (*zx.Graph, error) {
	if n > MaxWires {
		return nil, tooWide("identity", n)
	}
	g, err := zx.NewWithWires(n)
	if err != nil {
		return nil, &zx.ArgumentError{Op: "identity", Msg: fmt.Sprintf("wire count must be positive, got %d", n)}
	}
	return g, nil
}

func single(op string, v zx.Vertex, qubit int) (*zx.Graph, error) {
	if qubit < 0 {
		return nil, &zx.ArgumentError{Op: op, Msg: fmt.Sprintf("negative qubit %d", qubit)}
	}
	if qubit >= MaxWires {
		return nil, beyondLimit(op, qubit)
	}
	g, err := zx.NewWithWires(qubit + 1)
	if err != nil {
		return nil, err
	}
	if _, err := g.InsertOnWire(v.WithCoords(zx.SpiderX, float64(qubit)), qubit); err != nil {
		return nil, err
	}
	return g, nil
}

func tooWide(op string, n int) error {
	return &zx.ArgumentError{Op: op, Msg: fmt.Sprintf("%d wires exceeds the limit of %d", n, MaxWires)}
}

func beyondLimit(op string, wire int) error {
	return &zx.ArgumentError{Op: op, Msg: fmt.Sprintf("wire %d is beyond the limit of %d wires", wire, MaxWires)}
}

func checkColor(op string, t zx.VertexType) error {
	if !t.IsSpider() {
		return &zx.ArgumentError{Op: op, Msg: fmt.Sprintf("%s is not a spider color", t)}
	}
	return nil
}

// wireRange returns 0..n-1.
func wireRange(n int) []int {
	ws := make([]int, n)
	for i := range ws {
		ws[i] = i
	}
	return ws
}
