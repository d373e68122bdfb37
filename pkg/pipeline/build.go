package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/observability"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// Build runs the builder for gate and reports the run to the pipeline hooks.
func Build(ctx context.Context, gate gates.Gate) (*zx.Graph, error) {
	hooks := observability.Pipeline()
	kind := string(gate.Kind)
	hooks.OnBuildStart(ctx, kind)
	start := time.Now()

	g, err := gates.Build(gate)
	n := 0
	if g != nil {
		n = g.NumVertices()
	}
	hooks.OnBuildComplete(ctx, kind, n, time.Since(start), err)
	return g, err
}
