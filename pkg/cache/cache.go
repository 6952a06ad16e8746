// Package cache stores comparison results keyed by tree fingerprints.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [MongoCache]: a MongoDB collection with a TTL index, for servers
//   - [NullCache]: stores nothing, for disabling the cache
//
// All backends treat a zero TTL as "never expires" and report a missing or
// expired entry as a miss (ok == false) rather than an error.
//
// # Keys
//
// A [Keyer] derives keys from tree fingerprints. [ScopedKeyer] prefixes every
// key so several tenants can share one backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value stored under key. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A zero ttl keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// CompareKey keys the result of comparing two trees.
	CompareKey(fingerprintA, fingerprintB string, opts CompareKeyOpts) string
	// SelfKey keys the self-information of one tree.
	SelfKey(fingerprint string) string
}

// CompareKeyOpts holds the comparison settings that change the result.
type CompareKeyOpts struct {
	Mean string `json:"mean"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CompareKey returns "compare:<sha256 of fingerprints and options>".
func (DefaultKeyer) CompareKey(fingerprintA, fingerprintB string, opts CompareKeyOpts) string {
	data, _ := json.Marshal([]any{fingerprintA, fingerprintB, opts})
	return "compare:" + Digest(data)
}

// SelfKey returns "self:<fingerprint>".
func (DefaultKeyer) SelfKey(fingerprint string) string {
	return "self:" + fingerprint
}

// Digest returns the hex SHA-256 of data. Tree fingerprints and file cache
// names are built from it.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
