package gates

import (
	"unicode"

	"github.com/matzehuels/zxdraw/pkg/zx"
)

// ParsePauli maps each character of a Pauli string to a spider color. 'I'
// yields TypeBoundary, meaning "no leg". Matching is case-insensitive.
// Returns a *zx.PauliFormatError naming the first character outside
// {I, X, Y, Z} and its rune position.
func ParsePauli(s string) ([]zx.VertexType, error) {
	out := make([]zx.VertexType, 0, len(s))
	pos := 0
	for _, r := range s {
		switch unicode.ToUpper(r) {
		case 'I':
			out = append(out, zx.TypeBoundary)
		case 'Z':
			out = append(out, zx.TypeZ)
		case 'X':
			out = append(out, zx.TypeX)
		case 'Y':
			out = append(out, zx.TypeY)
		default:
			return nil, &zx.PauliFormatError{Char: r, Pos: pos}
		}
		pos++
	}
	return out, nil
}

// Gadget builds a Pauli (or phase) gadget: one Z hub carrying phase, placed
// at (HubX, last wire + HubOffset), and one zero-phase leg per non-identity
// character of pauli, inserted on that character's wire and joined to the
// hub. Identity wires stay bare.
//
// The string is validated before anything is built. Returns a
// *zx.PauliFormatError for a bad character and a *zx.ArgumentError for an
// empty string or one longer than [MaxWires].
func Gadget(pauli string, phase zx.Phase) (*zx.Graph, error) {
	if len(pauli) > MaxWires {
		return nil, tooWide("gadget", len(pauli))
	}
	legs, err := ParsePauli(pauli)
	if err != nil {
		return nil, err
	}
	if len(legs) == 0 {
		return nil, &zx.ArgumentError{Op: "gadget", Msg: "empty Pauli string"}
	}

	n := len(legs)
	g := zx.New(n)
	if err := g.AddWires(wireRange(n)...); err != nil {
		return nil, err
	}
	hub := g.AddVertex(zx.Z().WithPhase(phase).WithCoords(zx.HubX, float64(n-1)+zx.HubOffset))

	for q, t := range legs {
		if t == zx.TypeBoundary {
			continue
		}
		leg, err := g.InsertOnWire(zx.NewVertex(t).WithCoords(zx.SpiderX, float64(q)), q)
		if err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(leg, hub); err != nil {
			return nil, err
		}
	}
	return g, nil
}
