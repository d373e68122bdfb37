package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/matzehuels/zxdraw/pkg/observability"
)

// Metrics implements the observability hooks on top of Prometheus
// collectors registered in its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	builds         *prometheus.CounterVec
	buildVertices  prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewMetrics creates the zxdraw collectors and registers them, together
// with the Go and process collectors, in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxdraw_diagrams_built_total",
				Help: "Diagrams built, by gate kind and result",
			},
			[]string{"kind", "result"},
		),
		buildVertices: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "zxdraw_diagram_vertices",
				Help:    "Vertex count of built diagrams",
				Buckets: prometheus.ExponentialBuckets(2, 2, 8),
			},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxdraw_renders_total",
				Help: "Artifacts rendered, by format and result",
			},
			[]string{"format", "result"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zxdraw_render_duration_seconds",
				Help:    "Time spent rendering one artifact",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		renderBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxdraw_render_bytes_total",
				Help: "Bytes of rendered artifacts",
			},
			[]string{"format"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxdraw_cache_events_total",
				Help: "Cache hits, misses and writes, by key type",
			},
			[]string{"key_type", "event"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxdraw_http_requests_total",
				Help: "HTTP requests, by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zxdraw_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.builds, m.buildVertices, m.renders, m.renderDuration, m.renderBytes,
		m.cacheEvents, m.requests, m.requestLatency,
	)
	return m
}

// Install registers m as the process-wide pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnBuildStart(context.Context, string) {}

func (m *Metrics) OnBuildComplete(_ context.Context, kind string, vertexCount int, _ time.Duration, err error) {
	m.builds.WithLabelValues(kind, result(err)).Inc()
	if err == nil {
		m.buildVertices.Observe(float64(vertexCount))
	}
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	m.renderBytes.WithLabelValues(format).Add(float64(size))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
