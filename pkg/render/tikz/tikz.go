package tikz

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

//go:embed template.tex
var documentTemplate string

var tmpl = template.Must(template.New("tikz").Parse(documentTemplate))

// Option configures TikZ output.
type Option func(*renderer)

type renderer struct {
	fragment bool
	scale    float64
}

// Fragment emits only the tikzpicture environment, without preamble or style
// definitions, for inclusion in an existing document.
func Fragment() Option { return func(r *renderer) { r.fragment = true } }

// WithScale sets the tikzpicture scale factor. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

type document struct {
	Standalone bool
	Scale      string
	Nodes      []string
	Draws      []string
}

// Write renders g as a TikZ document to w.
//
// Every vertex must carry coordinates; an unplaced vertex yields an
// INVALID_INPUT error and nothing is written.
func Write(w io.Writer, g *zx.Graph, opts ...Option) error {
	r := renderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	doc := document{
		Standalone: !r.fragment,
		Scale:      strconv.FormatFloat(r.scale, 'f', -1, 64),
	}
	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		p, ok := v.Coords()
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "tikz: vertex %d has no coordinates", id)
		}
		doc.Nodes = append(doc.Nodes, nodeLine(id, v, p.Display()))
	}
	for _, e := range g.Edges() {
		doc.Draws = append(doc.Draws, fmt.Sprintf("\t\t\\draw [style=%s] (%d) to (%d);",
			e.Type.Category(), e.Source, e.Target))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return fmt.Errorf("tikz: execute template: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Render returns g as a TikZ document.
func Render(g *zx.Graph, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PhaseLaTeX formats a phase as inline math in units of π:
// "" for zero, "$\pi$", "$\frac{\pi}{d}$" or "$\frac{n\pi}{d}$".
func PhaseLaTeX(p zx.Phase) string {
	n, d := p.Angle()
	one := n.IsInt64() && n.Int64() == 1
	switch {
	case n.Sign() == 0:
		return ""
	case one && d.IsInt64() && d.Int64() == 1:
		return `$\pi$`
	case one:
		return fmt.Sprintf(`$\frac{\pi}{%d}$`, d)
	case d.IsInt64() && d.Int64() == 1:
		return fmt.Sprintf(`$%d\pi$`, n)
	}
	return fmt.Sprintf(`$\frac{%d\pi}{%d}$`, n, d)
}

func nodeLine(id zx.VertexID, v zx.Vertex, p zx.Point) string {
	label := ""
	if v.Type().IsSpider() {
		label = PhaseLaTeX(v.Phase())
	}
	return fmt.Sprintf("\t\t\\node [style=%s] (%d) at (%s, %s) {%s};",
		v.Category(), id, coord(p.X), coord(p.Y), label)
}

func coord(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
