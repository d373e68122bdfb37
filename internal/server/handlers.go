package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/zxdraw/pkg/buildinfo"
	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

// Response headers set on rendered artifacts.
const (
	DiagramHashHeader = "X-Diagram-Hash"
	CacheHeader       = "X-Cache"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthBody struct {
	Status string `json:"status"`
	buildinfo.Info
}

type gatesBody struct {
	Kinds   []gates.Kind `json:"kinds"`
	Formats []string     `json:"formats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleGates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gatesBody{Kinds: gates.Kinds(), Formats: pipeline.Formats()})
}

// handleDiagram renders the gate in the request body. Query parameters:
// format (default tikz), scale, detailed and refresh.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var gate gates.Gate
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&gate); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode gate"))
		return
	}

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Gate = gate
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := res.Formats()[0]
	data := res.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(DiagramHashHeader, res.DiagramHash)
	if res.CacheInfo.RenderHit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.DefaultFormat}}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	for name, dst := range map[string]*bool{"detailed": &opts.Detailed, "refresh": &opts.Refresh} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
			}
			*dst = b
		}
	}
	return opts, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidArgument, errors.ErrCodeInvalidPauli, errors.ErrCodeWireState, errors.ErrCodeNotFound:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
		body = errorBody{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	if body.Code == "" {
		body.Code = errors.ErrCodeInternal
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
