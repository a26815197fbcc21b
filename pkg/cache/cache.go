// Package cache stores decoded and resampled images between runs.
//
// Decoding a large container file and resampling it with a Lanczos filter is
// the slowest step of a run, and the input folder rarely changes between
// runs. Entries are keyed by the hash of the raw file bytes plus every
// parameter that affects the decoded pixels, so an edited file or a new scale
// factor is a plain miss.
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// when caching is disabled.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL is how long a decoded image stays cached.
const DefaultTTL = 30 * 24 * time.Hour

// ImageKeyOpts are the load parameters that change decoded pixels.
type ImageKeyOpts struct {
	Scale  float64 `json:"scale"`
	Format string  `json:"format"` // lowercase extension the file was decoded as
}

// Keyer generates cache keys.
type Keyer interface {
	// ImageKey generates a key for a decoded image.
	ImageKey(contentHash string, opts ImageKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ImageKey returns "image:<hash of content hash and opts>".
func (DefaultKeyer) ImageKey(contentHash string, opts ImageKeyOpts) string {
	return hashKey("image", contentHash, opts.Format, strconv.FormatFloat(opts.Scale, 'g', -1, 64))
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
