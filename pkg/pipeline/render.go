package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/graph"
	"github.com/matzehuels/zxdraw/pkg/observability"
	"github.com/matzehuels/zxdraw/pkg/render/nodelink"
	"github.com/matzehuels/zxdraw/pkg/render/tikz"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g *zx.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders g in a single format.
func RenderFormat(ctx context.Context, g *zx.Graph, format string, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := renderFormat(ctx, g, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func renderFormat(ctx context.Context, g *zx.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalDiagram(g)
	case FormatTikZ:
		var topts []tikz.Option
		if opts.Scale > 0 {
			topts = append(topts, tikz.WithScale(opts.Scale))
		}
		return tikz.Render(g, topts...)
	case FormatDOT:
		return []byte(toDOT(g, opts)), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, toDOT(g, opts))
	case FormatPNG:
		return nodelink.RenderPNG(ctx, toDOT(g, opts))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}

func toDOT(g *zx.Graph, opts Options) string {
	return nodelink.ToDOT(g, nodelink.Options{Scale: opts.Scale, Detailed: opts.Detailed})
}
