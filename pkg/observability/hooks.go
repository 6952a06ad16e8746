// Package observability lets callers instrument hierpart without tying it to
// a metrics or tracing backend.
//
// Three hook interfaces cover the instrumented paths: [CompareHooks] for tree
// loading and comparison in the pipeline, [CacheHooks] for result cache
// traffic, and [HTTPHooks] for requests served by the API. Each defaults to
// a no-op. Register implementations once at startup:
//
//	observability.SetCompareHooks(myCompareHooks{})
//	observability.SetCacheHooks(myCacheHooks{})
//
// and emit from library code through the accessors:
//
//	observability.Compare().OnCompareStart(ctx, universe, modulesA, modulesB)
//	observability.Compare().OnCompareComplete(ctx, normalized, cached, duration, err)
//
// The CLI registers hooks that log at debug level when --verbose is set.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Compare Hooks
// =============================================================================

// CompareHooks receives events from the comparison pipeline.
type CompareHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, modules int, duration time.Duration, err error)

	// Compare events
	OnCompareStart(ctx context.Context, universe, modulesA, modulesB int)
	OnCompareComplete(ctx context.Context, normalized float64, cached bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit. keyType is "compare" or "self".
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a request that failed with err.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCompareHooks is a no-op implementation of CompareHooks.
type NoopCompareHooks struct{}

func (NoopCompareHooks) OnLoadStart(context.Context, string)                                    {}
func (NoopCompareHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)      {}
func (NoopCompareHooks) OnCompareStart(context.Context, int, int, int)                          {}
func (NoopCompareHooks) OnCompareComplete(context.Context, float64, bool, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// hooks holds the registered implementations. Registration normally happens
// once before any work starts, but reads stay safe if it does not.
var hooks = struct {
	sync.RWMutex
	compare CompareHooks
	cache   CacheHooks
	http    HTTPHooks
}{
	compare: NoopCompareHooks{},
	cache:   NoopCacheHooks{},
	http:    NoopHTTPHooks{},
}

// SetCompareHooks registers comparison hooks. A nil h is ignored.
func SetCompareHooks(h CompareHooks) {
	if h == nil {
		return
	}
	hooks.Lock()
	hooks.compare = h
	hooks.Unlock()
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.Lock()
	hooks.cache = h
	hooks.Unlock()
}

// SetHTTPHooks registers HTTP server hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.Lock()
	hooks.http = h
	hooks.Unlock()
}

// Compare returns the registered comparison hooks.
func Compare() CompareHooks {
	hooks.RLock()
	defer hooks.RUnlock()
	return hooks.compare
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.RLock()
	defer hooks.RUnlock()
	return hooks.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooks.RLock()
	defer hooks.RUnlock()
	return hooks.http
}

// Reset restores the no-op defaults. Tests that register hooks call it in
// cleanup.
func Reset() {
	hooks.Lock()
	defer hooks.Unlock()
	hooks.compare = NoopCompareHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.http = NoopHTTPHooks{}
}
