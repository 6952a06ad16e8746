package pipeline

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hierpart/pkg/cache"
	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
	"github.com/matzehuels/hierpart/pkg/hmi"
	hpio "github.com/matzehuels/hierpart/pkg/io"
	"github.com/matzehuels/hierpart/pkg/observability"
)

// Runner executes comparisons with caching.
// Both CLI and API use it so that caching behaves the same everywhere.
//
// The Runner holds no per-comparison state. Multiple goroutines can safely
// use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	}
}

// Load reads a tree from path. An empty format is inferred from the file
// extension.
func (r *Runner) Load(ctx context.Context, path string, format hpio.Format) (*hierpart.Partition[string], error) {
	observability.Compare().OnLoadStart(ctx, path)
	start := time.Now()

	var (
		p   *hierpart.Partition[string]
		err error
	)
	if format == "" {
		p, err = hpio.Import(path)
	} else {
		p, err = hpio.ImportAs(path, format)
	}

	modules := 0
	if p != nil {
		modules = p.Len()
	}
	observability.Compare().OnLoadComplete(ctx, path, modules, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded tree", "path", path, "modules", p.Len(), "elements", p.UniverseSize())
	return p, nil
}

// CompareFiles loads both trees, inferring their formats, and compares them.
func (r *Runner) CompareFiles(ctx context.Context, pathA, pathB string, opts Options) (*Result, error) {
	a, err := r.Load(ctx, pathA, "")
	if err != nil {
		return nil, err
	}
	b, err := r.Load(ctx, pathB, "")
	if err != nil {
		return nil, err
	}
	return r.Compare(ctx, a, b, opts)
}

// Compare computes the normalized HMI of a and b.
//
// The comparison is symmetric, so compare(a, b) and compare(b, a) share one
// cache entry; SelfA and SelfB always refer to the arguments as given.
func (r *Runner) Compare(ctx context.Context, a, b *hierpart.Partition[string], opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	start := time.Now()
	observability.Compare().OnCompareStart(ctx, a.UniverseSize(), a.Len(), b.Len())

	res, err := r.compare(ctx, a, b, opts, logger)
	if err != nil {
		observability.Compare().OnCompareComplete(ctx, 0, false, time.Since(start), err)
		return nil, err
	}
	res.Duration = time.Since(start)
	observability.Compare().OnCompareComplete(ctx, res.Score.Normalized, res.CacheHit, res.Duration, nil)

	logger.Info("compared trees",
		"id", res.ID,
		"normalized", strconv.FormatFloat(res.Score.Normalized, 'f', 6, 64),
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) compare(ctx context.Context, a, b *hierpart.Partition[string], opts Options, logger *log.Logger) (*Result, error) {
	if !hierpart.SameUniverse(a, b) {
		return nil, herrors.Wrap(herrors.ErrCodeUniverseMismatch, hmi.ErrUniverseMismatch,
			"%d elements vs %d elements", a.UniverseSize(), b.UniverseSize())
	}

	res := &Result{
		ID:           uuid.NewString(),
		Mean:         opts.Mean,
		FingerprintA: Fingerprint(a),
		FingerprintB: Fingerprint(b),
	}
	lo, hi := res.FingerprintA, res.FingerprintB
	swapped := hi < lo
	if swapped {
		lo, hi = hi, lo
	}
	key := r.Keyer.CompareKey(lo, hi, cache.CompareKeyOpts{Mean: opts.Mean})

	if !opts.Refresh {
		var stored hmi.Score
		if r.lookup(ctx, logger, "compare", key, &stored) {
			if swapped {
				stored = stored.Swap()
			}
			res.Score = stored
			res.CacheHit = true
			return res, nil
		}
	}

	hmiOpts := []hmi.Option{hmi.WithMean(opts.mean())}
	if opts.Trace {
		hmiOpts = append(hmiOpts, hmi.WithLogger(logger))
	}

	cross, err := hmi.Mutual(a, b, hmiOpts...)
	if err != nil {
		return nil, err
	}
	selfA, err := r.self(ctx, logger, a, res.FingerprintA, opts)
	if err != nil {
		return nil, err
	}
	selfB := selfA
	if res.FingerprintB != res.FingerprintA {
		if selfB, err = r.self(ctx, logger, b, res.FingerprintB, opts); err != nil {
			return nil, err
		}
	}
	res.Score = hmi.Normalize(cross, selfA, selfB, hierpart.Equivalent(a, b), hmiOpts...)

	stored := res.Score
	if swapped {
		stored = stored.Swap()
	}
	r.store(ctx, logger, "compare", key, stored, opts.TTL)
	return res, nil
}

// self returns HMI(p, p), consulting the cache first.
func (r *Runner) self(ctx context.Context, logger *log.Logger, p *hierpart.Partition[string], fingerprint string, opts Options) (float64, error) {
	key := r.Keyer.SelfKey(fingerprint)
	var v float64
	if !opts.Refresh && r.lookup(ctx, logger, "self", key, &v) {
		return v, nil
	}
	v, err := hmi.Mutual(p, p)
	if err != nil {
		return 0, err
	}
	r.store(ctx, logger, "self", key, v, opts.TTL)
	return v, nil
}

func (r *Runner) lookup(ctx context.Context, logger *log.Logger, keyType, key string, dst any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("cache entry unreadable", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
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
