// Package config loads hierpart's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/hierpart/config.toml (falling back to
// ~/.config/hierpart/config.toml). Every key is optional:
//
//	[compare]
//	mean = "max"            # or "geometric"
//
//	[cache]
//	backend = "file"        # file, redis, mongo or none
//	ttl = "720h"
//	dir = "/home/me/.cache/hierpart"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "hierpart"
//	namespace = "team-a"    # prefixes every key on a shared backend
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 8388608
//	read_timeout = "30s"
//
//	[log]
//	level = "info"
//
// Command-line flags override the file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierpart/pkg/cache"
	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hmi"
)

const appName = "hierpart"

// Config is the full configuration.
type Config struct {
	Compare CompareConfig `toml:"compare"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// CompareConfig holds comparison defaults.
type CompareConfig struct {
	Mean string `toml:"mean"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir,omitempty"`
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
	MongoURI      string   `toml:"mongo_uri,omitempty"`
	MongoDatabase string   `toml:"mongo_database,omitempty"`
	Namespace     string   `toml:"namespace,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	ReadTimeout  Duration `toml:"read_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return herrors.Wrap(herrors.ErrCodeInvalidInput, err, "duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration that works without a file.
func Default() Config {
	return Config{
		Compare: CompareConfig{Mean: "max"},
		Cache: CacheConfig{
			Backend:       cache.BackendFile,
			TTL:           Duration{30 * 24 * time.Hour},
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 8 << 20,
			ReadTimeout:  Duration{30 * time.Second},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory using the XDG standard
// (~/.cache/hierpart/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path over the defaults. An empty path means
// [Path]; a missing default file is not an error, a missing explicit one is.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, herrors.Wrap(herrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, herrors.New(herrors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Decode parses TOML from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "decode config")
	}
	return cfg, cfg.Validate()
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports settings outside their allowed values.
func (c Config) Validate() error {
	if _, err := hmi.ParseMean(c.Compare.Mean); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return herrors.New(herrors.ErrCodeInvalidInput,
			"cache backend %q (want file, redis, mongo or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return herrors.New(herrors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return herrors.New(herrors.ErrCodeInvalidInput, "server max_body_bytes must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "log level %q", c.Log.Level)
	}
	return lvl, nil
}

// Mean parses Compare.Mean.
func (c Config) Mean() hmi.Mean {
	m, _ := hmi.ParseMean(c.Compare.Mean)
	return m
}

// CacheOptions converts the cache section for [cache.Open]. An empty Dir is
// replaced by [CacheDir].
func (c Config) CacheOptions() (cache.Options, error) {
	dir := c.Cache.Dir
	if dir == "" && c.Cache.Backend == cache.BackendFile {
		d, err := CacheDir()
		if err != nil {
			return cache.Options{}, herrors.Wrap(herrors.ErrCodeInvalidPath, err, "cache dir")
		}
		dir = d
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoOptions{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
	}, nil
}

// Keyer returns the cache keyer for the configured namespace. Without a
// namespace keys are unprefixed.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Namespace+":")
}
