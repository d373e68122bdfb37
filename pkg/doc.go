// Package pkg provides the libraries behind zxdraw, a toolkit for building
// and drawing ZX-calculus diagrams.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [zx] - The diagram core: phases, vertices, edges and the graph arena
//     with its input/output boundary maps
//  2. [gates] - Builders for standard gates (Pauli, Clifford, CX, CZ, phase
//     gadgets) and the declarative Gate description
//  3. [render] and [graph] - Output formats: TikZ, Graphviz DOT/SVG/PNG and
//     the JSON document
//  4. [pipeline], [cache] and [observability] - build → render orchestration
//     with caching and hooks
//
// # Architecture
//
// The typical data flow:
//
//	gates.Gate (CLI flags, TOML manifest, HTTP body)
//	         ↓
//	    [gates] package (build a zx.Graph)
//	         ↓
//	    [graph] package (JSON document, diagram hash)
//	         ↓
//	    [render] packages (tikz, nodelink)
//	         ↓
//	    TeX/DOT/SVG/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/zxdraw/pkg/gates"
//	    "github.com/matzehuels/zxdraw/pkg/render/tikz"
//	)
//
//	g, err := gates.CX(0, 1)
//	if err != nil {
//	    return err
//	}
//	return tikz.Write(os.Stdout, g)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Gate:    gates.Gate{Kind: gates.KindGadget, Pauli: "ZXY", Phase: "1/2"},
//	    Formats: []string{"tikz", "svg"},
//	})
//
// # Packages
//
// The core packages ([zx], [gates]) have no dependencies beyond the
// standard library, ordered maps and the error codes in [errors]; they do
// not log and are safe to use from any number of goroutines as long as each
// graph is owned by one goroutine at a time.
package pkg
