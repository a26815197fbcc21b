package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by the
// decoder generation so that a change in decoding behavior invalidates
// entries written by older builds.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ImageKey generates a prefixed key for a decoded image.
func (k *ScopedKeyer) ImageKey(contentHash string, opts ImageKeyOpts) string {
	return k.prefix + k.inner.ImageKey(contentHash, opts)
}
