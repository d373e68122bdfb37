// Package render groups the exporters that turn a zx.Graph into something a
// person can look at.
//
// # Overview
//
// Two renderers are provided:
//
//   - TikZ documents for LaTeX (in [tikz] subpackage)
//   - Node-link drawings via Graphviz (in [nodelink] subpackage)
//
// Both read the diagram through the exporter interface of package zx: vertex
// categories, edge categories and display coordinates. Neither mutates the
// graph.
//
// # TikZ
//
// The [tikz] subpackage writes a standalone document (or a bare
// tikzpicture) whose node styles are named after the vertex categories:
//
//	doc, err := tikz.Render(g)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits DOT with pinned positions and renders it
// in-process:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [tikz]: github.com/matzehuels/zxdraw/pkg/render/tikz
// [nodelink]: github.com/matzehuels/zxdraw/pkg/render/nodelink
package render
