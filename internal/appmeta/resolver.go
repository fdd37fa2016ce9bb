// Package appmeta resolves display metadata (name, icon) for notification
// sources. Implementations are best-effort: a failed lookup degrades to the
// source id, it never fails a summary.
package appmeta

import "sync"

// Resolver looks up display metadata for a source id.
type Resolver interface {
	// ResolveName returns the human-readable name for a source, falling
	// back to the source id itself when unknown.
	ResolveName(sourceID string) string

	// ResolveIcon returns an opaque icon handle for a source. The second
	// return is false when no icon is available.
	ResolveIcon(sourceID string) (string, bool)
}

// StaticResolver resolves from fixed tables. Useful for configuration-fed
// deployments and for tests.
type StaticResolver struct {
	Names map[string]string
	Icons map[string]string
}

var _ Resolver = (*StaticResolver)(nil)

func (r *StaticResolver) ResolveName(sourceID string) string {
	if name, ok := r.Names[sourceID]; ok && name != "" {
		return name
	}
	return sourceID
}

func (r *StaticResolver) ResolveIcon(sourceID string) (string, bool) {
	icon, ok := r.Icons[sourceID]
	return icon, ok && icon != ""
}

// cacheEntry holds one resolved name/icon pair.
type cacheEntry struct {
	name    string
	icon    string
	hasIcon bool
}

// Cached wraps a Resolver with a bounded lookup cache. When the cache
// reaches capacity it is flushed whole; resolution is cheap enough that a
// cold restart costs little, and the bound keeps a long-running capture
// process from growing without limit.
type Cached struct {
	inner      Resolver
	maxEntries int

	mu      sync.Mutex
	entries map[string]cacheEntry
}

var _ Resolver = (*Cached)(nil)

// NewCached wraps inner with a cache holding at most maxEntries sources.
func NewCached(inner Resolver, maxEntries int) *Cached {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &Cached{
		inner:      inner,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
	}
}

func (c *Cached) ResolveName(sourceID string) string {
	return c.resolve(sourceID).name
}

func (c *Cached) ResolveIcon(sourceID string) (string, bool) {
	e := c.resolve(sourceID)
	return e.icon, e.hasIcon
}

// Invalidate drops the cached entry for one source, forcing the next lookup
// through to the inner resolver.
func (c *Cached) Invalidate(sourceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sourceID)
}

// Reset empties the cache.
func (c *Cached) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports how many sources are currently cached.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cached) resolve(sourceID string) cacheEntry {
	c.mu.Lock()
	if e, ok := c.entries[sourceID]; ok {
		c.mu.Unlock()
		return e
	}
	c.mu.Unlock()

	// Resolve outside the lock; inner lookups may be slow.
	e := cacheEntry{name: c.inner.ResolveName(sourceID)}
	e.icon, e.hasIcon = c.inner.ResolveIcon(sourceID)

	c.mu.Lock()
	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[sourceID] = e
	c.mu.Unlock()

	return e
}
