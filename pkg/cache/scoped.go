package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// backend without key collisions.
//
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:bathroom:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(catalogHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutKey, opts)
}

// WallKey generates a prefixed wall key.
func (k *ScopedKeyer) WallKey(wall string) string {
	return k.prefix + k.inner.WallKey(wall)
}
