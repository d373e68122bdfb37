package observability

import (
	"context"
	"testing"
	"time"
)

type recorder struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks
	events []string
}

func (r *recorder) OnBuildComplete(_ context.Context, kind string, n int, _ time.Duration, _ error) {
	r.events = append(r.events, "build:"+kind)
}

func (r *recorder) OnCacheMiss(_ context.Context, keyType string) {
	r.events = append(r.events, "miss:"+keyType)
}

func (r *recorder) OnResponse(_ context.Context, method, route string, _ int, _ time.Duration) {
	r.events = append(r.events, method+" "+route)
}

func TestRegistry(t *testing.T) {
	Reset()
	defer Reset()
	ctx := context.Background()

	// defaults accept every event
	Pipeline().OnBuildStart(ctx, "cx")
	Pipeline().OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnRequest(ctx, "GET", "/healthz")

	r := &recorder{}
	SetPipelineHooks(r)
	SetCacheHooks(r)
	SetHTTPHooks(r)
	SetPipelineHooks(nil) // ignored

	Pipeline().OnBuildComplete(ctx, "gadget", 7, time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "diagram")
	HTTP().OnResponse(ctx, "POST", "/v1/diagrams", 200, time.Millisecond)

	want := []string{"build:gadget", "miss:diagram", "POST /v1/diagrams"}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, r.events[i], want[i])
		}
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore the no-op pipeline hooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore the no-op HTTP hooks")
	}
}
