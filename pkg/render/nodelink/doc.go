// Package nodelink renders ZX diagrams as node-link drawings with Graphviz.
//
// # Overview
//
// Spiders are drawn as filled circles (Z green, X red, Y blue), Hadamard
// nodes as yellow squares and boundaries as small points. Phase labels use
// the π notation of zx.Phase. Hadamard edges are dashed.
//
// # Usage
//
// Convert a diagram to DOT, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Layout
//
// The generated DOT targets the neato engine. Vertices that carry layout
// coordinates are pinned in place, with the vertical axis flipped so that
// wire 0 is on top. [Options].Scale sets inches per layout unit.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No external Graphviz installation is required.
package nodelink
