package gates

import (
	"fmt"

	"github.com/matzehuels/zxdraw/pkg/zx"
)

// CX builds a controlled-NOT: a Z spider on the control wire joined to an X
// spider on the target wire. Every other wire up to max(control, target) is
// bare. Returns an *zx.ArgumentError if control == target, either is
// negative, or the diagram would need more than [MaxWires] wires.
func CX(control, target int) (*zx.Graph, error) {
	return controlled("cx", zx.TypeX, control, target)
}

// CZ builds a controlled-Z: two joined Z spiders on the control and target
// wires. Preconditions match [CX].
func CZ(control, target int) (*zx.Graph, error) {
	return controlled("cz", zx.TypeZ, control, target)
}

func controlled(op string, targetType zx.VertexType, control, target int) (*zx.Graph, error) {
	if control == target {
		return nil, &zx.ArgumentError{Op: op,
			Msg: fmt.Sprintf("control and target must differ, got control=%d target=%d", control, target)}
	}
	if control < 0 || target < 0 {
		return nil, &zx.ArgumentError{Op: op,
			Msg: fmt.Sprintf("negative wire index, got control=%d target=%d", control, target)}
	}

	if hi := max(control, target); hi >= MaxWires {
		return nil, beyondLimit(op, hi)
	}
	n := max(control, target) + 1
	g := zx.New(n)
	if err := g.AddWires(wireRange(n)...); err != nil {
		return nil, err
	}
	c, err := g.InsertOnWire(zx.Z().WithCoords(zx.SpiderX, float64(control)), control)
	if err != nil {
		return nil, err
	}
	t, err := g.InsertOnWire(zx.NewVertex(targetType).WithCoords(zx.SpiderX, float64(target)), target)
	if err != nil {
		return nil, err
	}
	if _, err := g.AddEdge(c, t); err != nil {
		return nil, err
	}
	return g, nil
}
