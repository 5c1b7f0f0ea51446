// Package cache stores rendered artifacts (netlists, DOT sources, SVG
// diagrams) keyed by content hash.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP server and [NullCache] when caching is disabled. A [Keyer]
// derives the keys so that the backends never see raw circuits.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/netweave/pkg/observability"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported by ok == false
	// with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Fetch returns the cached value for key, or computes, stores and returns
// it. hit reports whether the value came from the cache.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) (data []byte, hit bool, err error) {
	hooks, kind := observability.Cache(), keyKind(key)
	if data, ok, err := c.Get(ctx, key); err != nil {
		return nil, false, err
	} else if ok {
		hooks.OnCacheHit(ctx, kind)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, kind)
	if data, err = compute(); err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return nil, false, err
	}
	hooks.OnCacheSet(ctx, kind, len(data))
	return data, false, nil
}

// keyKind returns the kind segment of a "[scope]kind:hash" key.
func keyKind(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// Keyer derives cache keys for the artifacts netweave produces.
type Keyer interface {
	// NetlistKey identifies a circuit written in a dialect.
	NetlistKey(circuitHash, dialect string) string

	// GraphKey identifies the DOT source of a circuit's dependency graph.
	GraphKey(circuitHash string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendering of a DOT source.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the DOT generation options that change the output.
type GraphKeyOpts struct {
	Detailed bool `json:"detailed"`
}

// ArtifactKeyOpts are the rendering options that change the output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer builds keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) NetlistKey(circuitHash, dialect string) string {
	return hashKey("netlist", circuitHash, dialect)
}

func (DefaultKeyer) GraphKey(circuitHash string, opts GraphKeyOpts) string {
	return hashKey("graph", circuitHash, opts)
}

func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}

var _ Keyer = DefaultKeyer{}
