package cache

import (
	"context"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open creates the backend named by opts.Backend. An empty backend opens
// the file cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, herrors.New(herrors.ErrCodeUnsupported, "unknown cache backend %q", opts.Backend)
}
