package gates

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/zxdraw/pkg/zx"
)

// hubOf returns the gadget hub: the interior vertex placed at HubX.
func hubOf(t *testing.T, g *zx.Graph) zx.VertexID {
	t.Helper()
	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		if p, _ := v.Coords(); !v.IsBoundary() && p.X == zx.HubX {
			return id
		}
	}
	t.Fatal("no hub")
	return zx.NoVertex
}

func TestGadget(t *testing.T) {
	tests := []struct {
		pauli     string
		wantLegs  int
		wantEdges int
		bare      []int
	}{
		{"ZXY", 3, 9, nil},
		{"IXZ", 2, 7, []int{0}},
		{"zxy", 3, 9, nil},
		{"IIII", 0, 4, []int{0, 1, 2, 3}},
		{"YiX", 2, 7, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.pauli, func(t *testing.T) {
			g, err := Gadget(tt.pauli, zx.PhasePlus)
			if err != nil {
				t.Fatal(err)
			}
			n := len(tt.pauli)
			if g.Capacity() != n || g.NumInputs() != n || g.NumOutputs() != n {
				t.Errorf("capacity/inputs/outputs = %d/%d/%d, want %d",
					g.Capacity(), g.NumInputs(), g.NumOutputs(), n)
			}
			if got := len(interior(g)); got != tt.wantLegs+1 {
				t.Errorf("%d interior vertices, want %d", got, tt.wantLegs+1)
			}
			if g.NumEdges() != tt.wantEdges {
				t.Errorf("NumEdges() = %d, want %d", g.NumEdges(), tt.wantEdges)
			}

			hub := hubOf(t, g)
			if g.Degree(hub) != tt.wantLegs {
				t.Errorf("hub degree = %d, want %d", g.Degree(hub), tt.wantLegs)
			}
			v, _ := g.Vertex(hub)
			if v.Type() != zx.TypeZ || v.Phase() != zx.PhasePlus {
				t.Errorf("hub = %v %v", v.Type(), v.Phase())
			}
			if p, _ := v.Coords(); p.Y != float64(n-1)+zx.HubOffset {
				t.Errorf("hub y = %v, want %v", p.Y, float64(n-1)+zx.HubOffset)
			}

			var bare []int
			for _, w := range g.Wires() {
				if g.WireState(w) == zx.WireBare {
					bare = append(bare, w)
				}
			}
			if diff := cmp.Diff(tt.bare, bare); diff != "" {
				t.Errorf("bare wires mismatch (-want +got):\n%s", diff)
			}
			if !g.IsWellFormed() {
				t.Error("not well-formed")
			}
		})
	}
}

func TestGadgetLegColors(t *testing.T) {
	g, err := Gadget("ZXY", zx.PhaseOne)
	if err != nil {
		t.Fatal(err)
	}
	hub := hubOf(t, g)
	want := map[int]zx.VertexType{0: zx.TypeZ, 1: zx.TypeX, 2: zx.TypeY}
	for _, leg := range g.Neighbors(hub) {
		v, _ := g.Vertex(leg)
		p, _ := v.Coords()
		if v.Type() != want[int(p.Y)] {
			t.Errorf("leg on wire %v has type %v, want %v", p.Y, v.Type(), want[int(p.Y)])
		}
		if !v.Phase().IsZero() {
			t.Errorf("leg on wire %v has phase %v", p.Y, v.Phase())
		}
	}
}

func TestGadgetBadCharacter(t *testing.T) {
	tests := []struct {
		pauli    string
		wantChar rune
		wantPos  int
	}{
		{"ZXH", 'H', 2},
		{"aZ", 'a', 0},
		{"IZ Z", ' ', 2},
		{"πZ", 'π', 0},
		{"ZπQ", 'π', 1},
	}

	for _, tt := range tests {
		t.Run(tt.pauli, func(t *testing.T) {
			g, err := Gadget(tt.pauli, zx.PhaseOne)
			if g != nil {
				t.Error("partial graph returned")
			}
			var pe *zx.PauliFormatError
			if !stderrors.As(err, &pe) {
				t.Fatalf("error = %v, want *PauliFormatError", err)
			}
			if pe.Char != tt.wantChar || pe.Pos != tt.wantPos {
				t.Errorf("error = %q at %d, want %q at %d", pe.Char, pe.Pos, tt.wantChar, tt.wantPos)
			}
		})
	}
}

func TestGadgetEmpty(t *testing.T) {
	var ae *zx.ArgumentError
	if _, err := Gadget("", zx.PhaseOne); !stderrors.As(err, &ae) {
		t.Errorf("Gadget(\"\") error = %v, want *ArgumentError", err)
	}
}
