package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/zxdraw/pkg/cache"
	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/observability"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

func newTestServer(t *testing.T) (*httptest.Server, *Metrics) {
	t.Helper()
	logger := log.New(io.Discard)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := NewMetrics()
	m.Install()
	t.Cleanup(observability.Reset)

	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, logger), m, logger).Handler())
	t.Cleanup(srv.Close)
	return srv, m
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("response request ID %q is not a UUID", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv, _ := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestGates(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/gates")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body gatesBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(gates.Kinds(), body.Kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(pipeline.Formats(), body.Formats); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagram(t *testing.T) {
	srv, _ := newTestServer(t)
	gate := `{"kind":"cx","control":0,"target":1}`

	resp := post(t, srv.URL+"/v1/diagrams?format=tikz", gate)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-tex" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(CacheHeader) != "miss" {
		t.Errorf("first request X-Cache = %q, want miss", resp.Header.Get(CacheHeader))
	}
	if len(resp.Header.Get(DiagramHashHeader)) != 64 {
		t.Errorf("missing diagram hash header")
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`\node [style=x_node]`)) {
		t.Errorf("tikz body:\n%s", body)
	}

	again := post(t, srv.URL+"/v1/diagrams?format=tikz", gate)
	if again.Header.Get(CacheHeader) != "hit" {
		t.Errorf("second request X-Cache = %q, want hit", again.Header.Get(CacheHeader))
	}
}

func TestDiagramQueryOptions(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/v1/diagrams?format=dot&detailed=true&scale=0.5", `{"kind":"pauli","color":"x","qubit":0}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("#2")) {
		t.Errorf("detailed DOT should label handles:\n%s", body)
	}
}

func TestDiagramErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		query      string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"malformed body", "", `{"kind":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "", `{"kind":"cx","colour":"z"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown format", "?format=gif", `{"kind":"cx","target":1}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad scale", "?scale=-1", `{"kind":"cx","target":1}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"same wires", "", `{"kind":"cz","control":2,"target":2}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidArgument},
		{"bad pauli", "", `{"kind":"gadget","pauli":"ZQ"}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidPauli},
		{"too many wires", "", `{"kind":"cx","control":0,"target":100000000}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidArgument},
		{"wide identity", "", `{"kind":"identity","wires":2000000000}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidArgument},
		{"wide qubit", "", `{"kind":"hadamard","qubit":5000}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidArgument},
		{"long pauli", "", `{"kind":"gadget","pauli":"` + strings.Repeat("Z", gates.MaxWires+1) + `"}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/diagrams"+tt.query, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.wantCode, body.Message)
			}
		})
	}
}

func TestDiagramFinePhase(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := post(t, srv.URL+"/v1/diagrams?format=tikz", `{"kind":"rotation","phase":"1/100000000000000000000"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `\frac{\pi}{100000000000000000000}`) {
		t.Errorf("phase label missing:\n%s", body)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(context.Canceled); got != http.StatusInternalServerError {
		t.Errorf("uncoded error status = %d", got)
	}
	if got := statusFor(errors.New(errors.ErrCodeWireState, "x")); got != http.StatusUnprocessableEntity {
		t.Errorf("WIRE_STATE status = %d", got)
	}
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	post(t, srv.URL+"/v1/diagrams?format=dot", `{"kind":"hadamard","qubit":1}`)
	post(t, srv.URL+"/v1/diagrams", `{"kind":"gadget","pauli":"Q"}`)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	for _, want := range []string{
		`zxdraw_diagrams_built_total{kind="hadamard",result="ok"} 1`,
		`zxdraw_diagrams_built_total{kind="gadget",result="error"} 1`,
		`zxdraw_renders_total{format="dot",result="ok"} 1`,
		`zxdraw_cache_events_total{event="miss",key_type="diagram"}`,
		`zxdraw_http_requests_total{method="POST",route="/v1/diagrams",status="200"} 1`,
		`zxdraw_http_requests_total{method="POST",route="/v1/diagrams",status="422"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
