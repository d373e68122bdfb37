package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/zxdraw/pkg/cache"
	"github.com/matzehuels/zxdraw/pkg/graph"
	"github.com/matzehuels/zxdraw/pkg/observability"
	"github.com/matzehuels/zxdraw/pkg/zx"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	g, doc, hit, err := r.build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", opts.Gate, err)
	}
	result.Graph = g
	result.DiagramHash = cache.Hash(doc)
	result.Stats = statsFor(g)
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.BuildHit = hit

	r.Logger.Info("built diagram",
		"gate", opts.Gate.String(),
		"vertices", result.Stats.VertexCount,
		"edges", result.Stats.EdgeCount,
		"cached", hit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hits, err := r.render(ctx, g, doc, hit, result.DiagramHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtifactHits = hits
	result.CacheInfo.RenderHit = hits == len(opts.Formats)
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build builds the diagram for opts.Gate, consulting the cache first.
func (r *Runner) Build(ctx context.Context, opts Options) (*zx.Graph, error) {
	g, _, _, err := r.build(ctx, opts)
	return g, err
}

// build returns the graph together with its JSON document, which is also
// the cached form and the source of the diagram hash.
func (r *Runner) build(ctx context.Context, opts Options) (*zx.Graph, []byte, bool, error) {
	gateJSON, err := json.Marshal(opts.Gate)
	if err != nil {
		return nil, nil, false, err
	}
	key := r.Keyer.DiagramKey(string(gateJSON))

	if !opts.Refresh {
		if data, hit := r.get(ctx, "diagram", key); hit {
			if g, err := graph.ReadDiagram(bytes.NewReader(data)); err == nil {
				return g, data, true, nil
			}
			r.Logger.Debug("discarding unreadable cached diagram", "key", key)
		}
	}

	g, err := Build(ctx, opts.Gate)
	if err != nil {
		return nil, nil, false, err
	}
	doc, err := graph.MarshalDiagram(g)
	if err != nil {
		return nil, nil, false, err
	}
	r.set(ctx, "diagram", key, doc)
	return g, doc, false, nil
}

// render produces every requested format, serving what it can from the
// cache. The JSON artifact is the diagram document itself, so it counts as
// a hit exactly when the diagram did.
func (r *Runner) render(ctx context.Context, g *zx.Graph, doc []byte, docHit bool, hash string, opts Options) (map[string][]byte, int, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := 0
	for _, format := range opts.Formats {
		if format == FormatJSON {
			artifacts[format] = doc
			if docHit {
				hits++
			}
			continue
		}
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit := r.get(ctx, "artifact", key); hit {
				artifacts[format] = data
				hits++
				continue
			}
		}
		data, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, 0, err
		}
		r.set(ctx, "artifact", key, data)
		artifacts[format] = data
	}
	return artifacts, hits, nil
}

// get reads from the cache. Cache errors are logged and treated as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
