package gates

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// Kind names a builder.
type Kind string

// Supported gate kinds.
const (
	KindPauli    Kind = "pauli"
	KindClifford Kind = "clifford"
	KindRotation Kind = "rotation"
	KindHadamard Kind = "hadamard"
	KindIdentity Kind = "identity"
	KindCX       Kind = "cx"
	KindCZ       Kind = "cz"
	KindGadget   Kind = "gadget"
)

// Kinds returns all supported kinds in display order.
func Kinds() []Kind {
	return []Kind{KindPauli, KindClifford, KindRotation, KindHadamard,
		KindIdentity, KindCX, KindCZ, KindGadget}
}

// Gate is a declarative description of a diagram, decoded from CLI flags,
// TOML manifests or HTTP request bodies. Fields not used by Kind are ignored.
type Gate struct {
	Kind    Kind   `json:"kind" toml:"kind"`
	Color   string `json:"color,omitempty" toml:"color"` // z, x or y; defaults to z
	Sign    string `json:"sign,omitempty" toml:"sign"`   // plus or minus
	Qubit   int    `json:"qubit,omitempty" toml:"qubit"`
	Wires   int    `json:"wires,omitempty" toml:"wires"` // identity only
	Control int    `json:"control,omitempty" toml:"control"`
	Target  int    `json:"target,omitempty" toml:"target"`
	Pauli   string `json:"pauli,omitempty" toml:"pauli"`
	Phase   string `json:"phase,omitempty" toml:"phase"` // see zx.ParsePhase
}

// String returns a compact call-like form, e.g. "cx(0,1)" or "gadget(ZXY,π/2)".
// Unparseable fields are shown verbatim.
func (g Gate) String() string {
	switch g.Kind {
	case KindPauli, KindHadamard:
		return fmt.Sprintf("%s(%s%d)", g.Kind, colorPrefix(g), g.Qubit)
	case KindClifford:
		return fmt.Sprintf("%s(%s%s,%d)", g.Kind, colorPrefix(g), signOrDefault(g.Sign), g.Qubit)
	case KindRotation:
		return fmt.Sprintf("%s(%s%s,%d)", g.Kind, colorPrefix(g), phaseText(g.Phase), g.Qubit)
	case KindIdentity:
		return fmt.Sprintf("%s(%d)", g.Kind, g.Wires)
	case KindCX, KindCZ:
		return fmt.Sprintf("%s(%d,%d)", g.Kind, g.Control, g.Target)
	case KindGadget:
		return fmt.Sprintf("%s(%s,%s)", g.Kind, g.Pauli, phaseText(g.Phase))
	}
	return string(g.Kind)
}

func colorPrefix(g Gate) string {
	if g.Kind == KindHadamard {
		return ""
	}
	c := strings.ToLower(g.Color)
	if c == "" {
		c = "z"
	}
	return c + ","
}

func signOrDefault(s string) string {
	if sign, err := ParseSign(s); err == nil {
		return sign.String()
	}
	return s
}

func phaseText(s string) string {
	if p, err := zx.ParsePhase(s); err == nil {
		return p.String()
	}
	if s == "" {
		return "0"
	}
	return s
}

// Build dispatches g to the matching builder.
func Build(g Gate) (*zx.Graph, error) {
	switch g.Kind {
	case KindPauli:
		t, err := ParseColor(g.Color)
		if err != nil {
			return nil, err
		}
		return Pauli(t, g.Qubit)
	case KindClifford:
		t, err := ParseColor(g.Color)
		if err != nil {
			return nil, err
		}
		s, err := ParseSign(g.Sign)
		if err != nil {
			return nil, err
		}
		return Clifford(t, s, g.Qubit)
	case KindRotation:
		t, err := ParseColor(g.Color)
		if err != nil {
			return nil, err
		}
		p, err := parseOptionalPhase(g.Phase)
		if err != nil {
			return nil, err
		}
		return Rotation(t, p, g.Qubit)
	case KindHadamard:
		return HadamardGate(g.Qubit)
	case KindIdentity:
		return Identity(g.Wires)
	case KindCX:
		return CX(g.Control, g.Target)
	case KindCZ:
		return CZ(g.Control, g.Target)
	case KindGadget:
		p, err := parseOptionalPhase(g.Phase)
		if err != nil {
			return nil, err
		}
		return Gadget(g.Pauli, p)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown gate kind %q (want one of %s)", g.Kind, kindList())
}

// ParseColor parses a spider color. An empty string means Z.
func ParseColor(s string) (zx.VertexType, error) {
	if strings.TrimSpace(s) == "" {
		return zx.TypeZ, nil
	}
	t, err := zx.ParseVertexType(s)
	if err != nil {
		return 0, err
	}
	if !t.IsSpider() {
		return 0, &zx.ArgumentError{Op: "parse color", Msg: fmt.Sprintf("%q is not a spider color", s)}
	}
	return t, nil
}

// ParseKind parses a gate kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Kinds(), k) {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown gate kind %q (want one of %s)", s, kindList())
	}
	return k, nil
}

func parseOptionalPhase(s string) (zx.Phase, error) {
	if strings.TrimSpace(s) == "" {
		return zx.PhaseZero, nil
	}
	return zx.ParsePhase(s)
}

func kindList() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
