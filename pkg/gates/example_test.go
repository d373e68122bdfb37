package gates_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

func ExampleCX() {
	g, _ := gates.CX(0, 1)
	fmt.Println("wires:", g.Wires())
	fmt.Println("vertices:", g.NumVertices())
	fmt.Println("edges:", g.NumEdges())
	// Output:
	// wires: [0 1]
	// vertices: 6
	// edges: 5
}

func ExamplePauliZ() {
	g, _ := gates.PauliZ(2)
	for _, w := range g.Wires() {
		fmt.Printf("wire %d: %s\n", w, g.WireState(w))
	}
	// Output:
	// wire 0: bare
	// wire 1: bare
	// wire 2: occupied
}

func ExampleGadget() {
	g, _ := gates.Gadget("IXZ", zx.PhasePlus)
	for _, w := range g.Wires() {
		fmt.Printf("wire %d: %s\n", w, g.WireState(w))
	}
	// Output:
	// wire 0: bare
	// wire 1: occupied
	// wire 2: occupied
}

func ExampleGadget_invalid() {
	_, err := gates.Gadget("ZXH", zx.PhaseOne)
	var pe *zx.PauliFormatError
	if errors.As(err, &pe) {
		fmt.Printf("bad character %q at %d\n", pe.Char, pe.Pos)
	}
	// Output:
	// bad character 'H' at 2
}
