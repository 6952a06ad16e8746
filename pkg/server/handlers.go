package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hierpart/pkg/buildinfo"
	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
	hpio "github.com/matzehuels/hierpart/pkg/io"
	"github.com/matzehuels/hierpart/pkg/observability"
	"github.com/matzehuels/hierpart/pkg/pipeline"
)

type compareRequest struct {
	A       hpio.Document `json:"a"`
	B       hpio.Document `json:"b"`
	Mean    string        `json:"mean,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`
}

type compareResponse struct {
	ID           string  `json:"id"`
	Normalized   float64 `json:"normalized"`
	Cross        float64 `json:"cross"`
	SelfA        float64 `json:"self_a"`
	SelfB        float64 `json:"self_b"`
	Mean         string  `json:"mean"`
	FingerprintA string  `json:"fingerprint_a"`
	FingerprintB string  `json:"fingerprint_b"`
	Cached       bool    `json:"cached"`
}

type showResponse struct {
	Universe    int              `json:"universe"`
	Fingerprint string           `json:"fingerprint"`
	Complete    bool             `json:"complete"`
	MaxDepth    int              `json:"max_depth"`
	Depth       hierpart.Summary `json:"depth"`
	Branching   hierpart.Summary `json:"branching"`
	Modules     []moduleInfo     `json:"modules"`
}

type moduleInfo struct {
	ID       int      `json:"id"`
	Parent   *int     `json:"parent,omitempty"`
	Depth    int      `json:"depth"`
	Elements []string `json:"elements"`
	Children []int    `json:"children"`
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    herrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.decode(w, r, &req) {
		return
	}
	a, err := req.A.Partition()
	if err != nil {
		s.writeError(w, r, herrors.Wrap(herrors.GetCode(err), err, "tree a: %s", herrors.UserMessage(err)))
		return
	}
	b, err := req.B.Partition()
	if err != nil {
		s.writeError(w, r, herrors.Wrap(herrors.GetCode(err), err, "tree b: %s", herrors.UserMessage(err)))
		return
	}

	mean := req.Mean
	if mean == "" {
		mean = s.opts.Mean
	}
	res, err := s.runner.Compare(r.Context(), a, b, pipeline.Options{
		Mean:    mean,
		Refresh: req.Refresh,
		Logger:  s.logger.With("request_id", middleware.GetReqID(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{
		ID:           res.ID,
		Normalized:   res.Score.Normalized,
		Cross:        res.Score.Cross,
		SelfA:        res.Score.SelfA,
		SelfB:        res.Score.SelfB,
		Mean:         res.Mean,
		FingerprintA: res.FingerprintA,
		FingerprintB: res.FingerprintB,
		Cached:       res.CacheHit,
	})
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	var doc hpio.Document
	if !s.decode(w, r, &doc) {
		return
	}
	p, err := doc.Partition()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := showResponse{
		Universe:    p.UniverseSize(),
		Fingerprint: pipeline.Fingerprint(p),
		Complete:    p.Complete(),
		MaxDepth:    p.MaxDepth(),
		Depth:       p.DepthStats(),
		Branching:   p.BranchingStats(false),
		Modules:     make([]moduleInfo, 0, p.Len()),
	}
	for id, elems := range p.Show() {
		m := moduleInfo{ID: int(id), Depth: p.Depth(id), Elements: elems, Children: []int{}}
		if parent := p.Parent(id); parent != hierpart.NoModule {
			pid := int(parent)
			m.Parent = &pid
		}
		for _, c := range p.Children(id) {
			m.Children = append(m.Children, int(c))
		}
		resp.Modules = append(resp.Modules, m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into dst, writing the error response itself when
// it fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorStatus(w, r, http.StatusRequestEntityTooLarge,
				herrors.New(herrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, r, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "decode request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorStatus(w, r, statusFor(err), err)
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	code := herrors.GetCode(err)
	if code == "" {
		code = herrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: herrors.UserMessage(err)},
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusFor maps an error code to an HTTP status. Malformed input is 400;
// well-formed trees that break the hierarchy rules or cannot be compared
// are 422.
func statusFor(err error) int {
	switch herrors.GetCode(err) {
	case herrors.ErrCodeNotASubset, herrors.ErrCodeOverlap,
		herrors.ErrCodeUniverseMismatch, herrors.ErrCodeUnknownModule:
		return http.StatusUnprocessableEntity
	case herrors.ErrCodeNotFound, herrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case herrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case herrors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	}
	if herrors.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
