// Package pipeline provides the build → render pipeline for zxdraw.
//
// The CLI and the HTTP service share this package so that a gate description
// produces the same bytes, and the same cache keys, no matter where it comes
// from.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Turn a [gates.Gate] into a zx.Graph
//  2. Render: Export the graph in each requested format (JSON, TikZ, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Gate:    gates.Gate{Kind: gates.KindCX, Control: 0, Target: 1},
//	    Formats: []string{"tikz", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tex := result.Artifacts["tikz"]
//
// Run individual stages:
//
//	g, err := runner.Build(ctx, opts)
//	artifacts, err := pipeline.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/zxdraw/pkg/cache"
	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatTikZ = "tikz"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatTikZ

type formatInfo struct {
	ext, contentType string
}

var formats = map[string]formatInfo{
	FormatJSON: {".json", "application/json"},
	FormatTikZ: {".tex", "application/x-tex"},
	FormatDOT:  {".dot", "text/vnd.graphviz"},
	FormatSVG:  {".svg", "image/svg+xml"},
	FormatPNG:  {".png", "image/png"},
}

// Formats returns the supported formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string { return formats[format].ext }

// ContentType returns the MIME type for a format.
func ContentType(format string) string { return formats[format].contentType }

// ValidateFormat checks that a format is supported. Formats are lowercase.
func ValidateFormat(format string) error {
	if _, ok := formats[format]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(fs []string) error {
	for _, f := range fs {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Gate    gates.Gate `json:"gate"`
	Refresh bool       `json:"refresh,omitempty"` // bypass cache reads

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`    // inches (DOT) or tikz scale per layout unit
	Detailed bool     `json:"detailed,omitempty"` // show vertex handles in DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Formats are lowercased and de-duplicated, keeping the first occurrence.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Gate.Kind == "" {
		return errors.New(errors.ErrCodeInvalidInput, "gate kind is required")
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "scale must be positive, got %g", o.Scale)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	seen := make(map[string]bool, len(o.Formats))
	normalized := o.Formats[:0:0]
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if seen[f] {
			continue
		}
		seen[f] = true
		normalized = append(normalized, f)
	}
	o.Formats = normalized
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatSVG, FormatPNG:
		k.Scale, k.Detailed = o.Scale, o.Detailed
	case FormatTikZ:
		k.Scale = o.Scale
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built diagram.
	Graph *zx.Graph

	// DiagramHash is the SHA-256 of the diagram's JSON document.
	DiagramHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Formats returns the rendered formats in sorted order.
func (r *Result) Formats() []string {
	formats := make([]string, 0, len(r.Artifacts))
	for f := range r.Artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Wires       int
	VertexCount int
	SpiderCount int
	EdgeCount   int
	Bytes       int // total artifact size
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit     bool // diagram came from cache
	RenderHit    bool // every artifact came from cache
	ArtifactHits int  // number of artifacts served from cache
}

func statsFor(g *zx.Graph) Stats {
	return Stats{
		Wires:       len(g.Wires()),
		VertexCount: g.NumVertices(),
		SpiderCount: g.NumSpiders(),
		EdgeCount:   g.NumEdges(),
	}
}
