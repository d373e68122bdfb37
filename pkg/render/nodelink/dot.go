package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/zxdraw/pkg/zx"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Scale is the number of inches per layout unit. Zero means 1.
	Scale float64
	// Detailed adds the vertex handle to every label.
	Detailed bool
}

type nodeStyle struct {
	shape, fill string
	size        float64
}

// Colors follow the usual ZX conventions: Z green, X red, Y blue.
var nodeStyles = map[zx.Category]nodeStyle{
	zx.CategoryBoundary: {shape: "point", fill: "black", size: 0.06},
	zx.CategoryHadamard: {shape: "square", fill: "#ffff00", size: 0.2},
	zx.CategoryZNode:    {shape: "circle", fill: "#ccffcc", size: 0.25},
	zx.CategoryXNode:    {shape: "circle", fill: "#ff8888", size: 0.25},
	zx.CategoryYNode:    {shape: "circle", fill: "#aaccff", size: 0.25},
	zx.CategoryZPhase:   {shape: "ellipse", fill: "#ccffcc", size: 0.4},
	zx.CategoryXPhase:   {shape: "ellipse", fill: "#ff8888", size: 0.4},
	zx.CategoryYPhase:   {shape: "ellipse", fill: "#aaccff", size: 0.4},
}

// ToDOT converts a diagram to Graphviz DOT for the neato engine. Every
// vertex with coordinates is pinned (pos="x,y!") in display space, so wire
// index grows downward. Unplaced vertices are left for neato to position.
//
// Hadamard edges are drawn dashed and blue.
func ToDOT(g *zx.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fixedsize=true, fontsize=10, penwidth=1];\n")
	buf.WriteString("  edge [penwidth=1.2];\n")
	buf.WriteString("\n")

	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(id), strings.Join(fmtAttrs(id, v, scale, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -- %s", nodeName(e.Source), nodeName(e.Target))
		if e.Type == zx.EdgeHadamard {
			buf.WriteString(" [style=dashed, color=\"#1f77b4\"]")
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id zx.VertexID) string { return "v" + strconv.Itoa(int(id)) }

func fmtLabel(id zx.VertexID, v zx.Vertex, detailed bool) string {
	label := ""
	if v.Type().IsSpider() && !v.Phase().IsZero() {
		label = v.Phase().String()
	}
	if detailed {
		if label != "" {
			label += "\n"
		}
		label += "#" + strconv.Itoa(int(id))
	}
	return label
}

func fmtAttrs(id zx.VertexID, v zx.Vertex, scale float64, detailed bool) []string {
	st := nodeStyles[v.Category()]
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(id, v, detailed)),
		"shape=" + st.shape,
		fmt.Sprintf("fillcolor=%q", st.fill),
		"width=" + fmtFloat(st.size),
		"height=" + fmtFloat(st.size),
	}
	if p, ok := v.Coords(); ok {
		d := p.Display()
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(d.X*scale), fmtFloat(d.Y*scale)))
	}
	return attrs
}

func fmtFloat(f float64) string {
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders DOT source to PNG using the embedded Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
