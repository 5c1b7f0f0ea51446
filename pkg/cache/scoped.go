package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating entries written by
// different releases or tenants that share one backend.
//
// Example usage:
//
//	// Entries written by this build only
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "netweave:v1.2.0:")
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

// NetlistKey generates a prefixed key for written netlists.
func (k *ScopedKeyer) NetlistKey(circuitHash, dialect string) string {
	return k.prefix + k.inner.NetlistKey(circuitHash, dialect)
}

// GraphKey generates a prefixed key for DOT sources.
func (k *ScopedKeyer) GraphKey(circuitHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(circuitHash, opts)
}

// ArtifactKey generates a prefixed key for rendered diagrams.
func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}
