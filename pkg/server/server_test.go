package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hierpart/pkg/cache"
	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/observability"
	"github.com/matzehuels/hierpart/pkg/pipeline"
)

const treeX = `{"modules":[
	{"id":0,"elements":["a","b","c","d","e","f"]},
	{"id":1,"parent":0,"elements":["a","b","c"]},
	{"id":2,"parent":0,"elements":["d","e","f"]},
	{"id":3,"parent":1,"elements":["a"]},
	{"id":4,"parent":1,"elements":["b","c"]},
	{"id":5,"parent":4,"elements":["b"]},
	{"id":6,"parent":4,"elements":["c"]}]}`

const treeY = `{"modules":[
	{"id":0,"elements":["a","b","c","d","e","f"]},
	{"id":1,"parent":0,"elements":["a","b","c"]},
	{"id":2,"parent":0,"elements":["d","e","f"]},
	{"id":3,"parent":2,"elements":["f"]},
	{"id":4,"parent":2,"elements":["d","e"]},
	{"id":5,"parent":4,"elements":["d"]},
	{"id":6,"parent":4,"elements":["e"]}]}`

const treeOther = `{"modules":[{"id":0,"elements":["a","b","z"]}]}`

const treeOverlap = `{"modules":[
	{"id":0,"elements":["a","b","c","d"]},
	{"id":1,"parent":0,"elements":["a","b","c"]},
	{"id":2,"parent":0,"elements":["c","d"]}]}`

var selfX = math.Ln2 + 0.5*math.Log(3)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { _ = runner.Close() })
	opts.Logger = logger
	return New(runner, opts)
}

func compareBody(a, b, mean string) string {
	body := `{"a":` + a + `,"b":` + b
	if mean != "" {
		body += `,"mean":"` + mean + `"`
	}
	return body + "}"
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
	assert.True(t, strings.HasPrefix(rec.Header().Get("Server"), "hierpart/"))
}

func TestCompareTutorial(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/v1/compare", compareBody(treeX, treeY, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got compareResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.InDelta(t, math.Ln2, got.Cross, 1e-9)
	assert.InDelta(t, selfX, got.SelfA, 1e-9)
	assert.InDelta(t, selfX, got.SelfB, 1e-9)
	assert.InDelta(t, math.Ln2/selfX, got.Normalized, 1e-9)
	assert.Equal(t, "max", got.Mean)
	assert.False(t, got.Cached)

	// The reversed comparison shares the cache entry.
	rec = do(t, s, http.MethodPost, "/v1/compare", compareBody(treeY, treeX, "max"))
	require.Equal(t, http.StatusOK, rec.Code)
	var again compareResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&again))
	assert.True(t, again.Cached)
	assert.InDelta(t, got.Normalized, again.Normalized, 1e-12)
	assert.Equal(t, got.FingerprintA, again.FingerprintB)
}

func TestCompareIdentical(t *testing.T) {
	s := newTestServer(t, Options{Mean: "geometric"})

	rec := do(t, s, http.MethodPost, "/v1/compare", compareBody(treeX, treeX, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var got compareResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.InDelta(t, 1.0, got.Normalized, 1e-12)
	assert.Equal(t, "geometric", got.Mean)
}

func TestCompareErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   herrors.Code
	}{
		{"universe mismatch", compareBody(treeX, treeOther, ""), http.StatusUnprocessableEntity, herrors.ErrCodeUniverseMismatch},
		{"overlap", compareBody(treeOverlap, treeX, ""), http.StatusUnprocessableEntity, herrors.ErrCodeOverlap},
		{"no root", compareBody(`{"modules":[]}`, treeX, ""), http.StatusBadRequest, herrors.ErrCodeInvalidFormat},
		{"unknown mean", compareBody(treeX, treeY, "median"), http.StatusBadRequest, herrors.ErrCodeInvalidInput},
		{"malformed", `{"a":`, http.StatusBadRequest, herrors.ErrCodeInvalidFormat},
		{"unknown field", `{"c":{}}`, http.StatusBadRequest, herrors.ErrCodeInvalidFormat},
	}
	s := newTestServer(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/compare", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, Options{MaxBodyBytes: 64})

	rec := do(t, s, http.MethodPost, "/v1/compare", compareBody(treeX, treeY, ""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, herrors.ErrCodeInvalidInput, decodeError(t, rec).Error.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/v1/compare", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestShow(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/v1/show", treeX)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got showResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 6, got.Universe)
	assert.Equal(t, 3, got.MaxDepth)
	assert.True(t, got.Complete)
	assert.Len(t, got.Fingerprint, 64)
	require.Len(t, got.Modules, 7)
	assert.Nil(t, got.Modules[0].Parent)
	assert.Equal(t, []int{1, 2}, got.Modules[0].Children)
	require.NotNil(t, got.Modules[5].Parent)
	assert.Equal(t, 4, *got.Modules[5].Parent)
	assert.Equal(t, 3, got.Modules[5].Depth)
	assert.Empty(t, got.Modules[6].Children)
	assert.Equal(t, 4, got.Depth.Count)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{herrors.New(herrors.ErrCodeInvalidElement, "x"), http.StatusBadRequest},
		{herrors.New(herrors.ErrCodeNotASubset, "x"), http.StatusUnprocessableEntity},
		{herrors.New(herrors.ErrCodeNetwork, "x"), http.StatusServiceUnavailable},
		{herrors.New(herrors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{herrors.New(herrors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "%v", tt.err)
	}
}

type countingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	requests int
	routes   []string
	errors   int
}

func (h *countingHTTPHooks) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *countingHTTPHooks) OnResponse(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func (h *countingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &countingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t, Options{})
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodPost, "/v1/compare", compareBody(treeX, treeOther, ""))

	assert.Equal(t, 2, hooks.requests)
	assert.Equal(t, []string{"/healthz", "/v1/compare"}, hooks.routes)
	assert.Equal(t, 1, hooks.errors)
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t, Options{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
