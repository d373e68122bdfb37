package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/zxdraw/pkg/cache"
	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"tikz", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestFormats(t *testing.T) {
	want := []string{"dot", "json", "png", "svg", "tikz"}
	if diff := cmp.Diff(want, Formats()); diff != "" {
		t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
	}
	if Extension(FormatTikZ) != ".tex" || ContentType(FormatSVG) != "image/svg+xml" {
		t.Error("unexpected format metadata")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{
		Gate:    gates.Gate{Kind: gates.KindCX, Target: 1},
		Formats: []string{"SVG", " tikz", "svg"},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"svg", "tikz"}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Logger == nil {
		t.Error("Logger default not applied")
	}

	empty := Options{Gate: gates.Gate{Kind: gates.KindCZ, Target: 1}}
	_ = empty.ValidateAndSetDefaults()
	if diff := cmp.Diff([]string{DefaultFormat}, empty.Formats); diff != "" {
		t.Errorf("default formats mismatch:\n%s", diff)
	}

	if err := (&Options{}).ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing kind: got %v", err)
	}
	bad := Options{Gate: gates.Gate{Kind: gates.KindCX}, Formats: []string{"pdf"}}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 2, Detailed: true}
	tests := []struct {
		format string
		want   cache.ArtifactKeyOpts
	}{
		{FormatJSON, cache.ArtifactKeyOpts{Format: "json"}},
		{FormatTikZ, cache.ArtifactKeyOpts{Format: "tikz", Scale: 2}},
		{FormatSVG, cache.ArtifactKeyOpts{Format: "svg", Scale: 2, Detailed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, opts.ArtifactKeyOpts(tt.format)); diff != "" {
				t.Errorf("ArtifactKeyOpts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	g, err := gates.Gadget("ZX", gates.Plus.Phase())
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(context.Background(), g, Options{Formats: []string{"json", "tikz", "dot"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(artifacts["json"], []byte(`"capacity": 2`)) {
		t.Errorf("json artifact:\n%s", artifacts["json"])
	}
	if !bytes.Contains(artifacts["tikz"], []byte(`\begin{tikzpicture}`)) {
		t.Error("tikz artifact is not a tikzpicture")
	}
	if !bytes.HasPrefix(artifacts["dot"], []byte("graph G {")) {
		t.Error("dot artifact is not DOT")
	}
}

func TestRenderFormat_Unsupported(t *testing.T) {
	g, _ := gates.PauliZ(0)
	_, err := RenderFormat(context.Background(), g, "pdf", Options{})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderFormat(pdf) = %v, want UNSUPPORTED", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)

	opts := Options{
		Gate:    gates.Gate{Kind: gates.KindCX, Control: 0, Target: 2},
		Formats: []string{"json", "tikz", "dot"},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.RenderHit || first.CacheInfo.ArtifactHits != 0 {
		t.Errorf("first run should miss, got %+v", first.CacheInfo)
	}
	wantStats := Stats{Wires: 3, VertexCount: 8, SpiderCount: 2, EdgeCount: 6}
	got := first.Stats
	got.Bytes, got.BuildTime, got.RenderTime = 0, 0, 0
	if diff := cmp.Diff(wantStats, got); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
	if len(first.DiagramHash) != 64 {
		t.Errorf("DiagramHash = %q", first.DiagramHash)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !second.CacheInfo.BuildHit || !second.CacheInfo.RenderHit || second.CacheInfo.ArtifactHits != 3 {
		t.Errorf("second run should hit, got %+v", second.CacheInfo)
	}
	if second.DiagramHash != first.DiagramHash {
		t.Error("diagram hash changed between runs")
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("%s artifact differs between cached and fresh run", f)
		}
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.BuildHit || third.CacheInfo.ArtifactHits != 0 {
		t.Errorf("refresh must bypass the cache, got %+v", third.CacheInfo)
	}
}

func TestRunnerExecute_BuildError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Gate: gates.Gate{Kind: gates.KindGadget, Pauli: "ZQ"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidPauli) {
		t.Errorf("Execute() error = %v, want INVALID_PAULI", err)
	}
	if !strings.Contains(err.Error(), "gadget(ZQ") {
		t.Errorf("error should name the gate: %v", err)
	}
}

func TestRunnerExecute_SVG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Gate:    gates.Gate{Kind: gates.KindCZ, Control: 1, Target: 0},
		Formats: []string{"svg"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact missing <svg> tag")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, kind string, _ int, _ time.Duration, err error) {
	h.record("build:" + kind)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.record("render:" + format)
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.record("hit:" + keyType)
}

func TestRunnerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Gate:    gates.Gate{Kind: gates.KindHadamard, Qubit: 0},
		Formats: []string{"json", "dot"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"build:hadamard", "render:dot"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}
