package cache

// ScopedKeyer wraps a Keyer with a prefix for key-space isolation.
// This keeps cache entries for different Conan remotes separate, so a
// package cached from one remote is never served for another.
//
// Example usage:
//
//	// Remote-specific keys
//	centerKeyer := NewScopedKeyer(NewDefaultKeyer(), "remote:conancenter:")
//
//	// Unscoped keys
//	globalKeyer := NewDefaultKeyer()
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// GraphKey generates a prefixed key for dependency graph caching.
func (k *ScopedKeyer) GraphKey(remote, ref string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(remote, ref, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
