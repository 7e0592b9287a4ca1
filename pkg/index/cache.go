package index

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kittclouds/bce/pkg/bceerr"
)

// CacheRegistry is the in-process cache of §4.4 and §5: an LRU of
// memoized derived values keyed by string, sized by the cache_size
// configuration knob, plus a set of registered
// invalidator callbacks other components rely on to drop their own
// cached state when the registry is flushed on write or reconfiguration.
type CacheRegistry struct {
	mu           sync.RWMutex
	values       *lru.Cache[string, any]
	invalidators map[string]func()
}

// NewCacheRegistry creates a registry backed by an LRU of the given
// size. size must be >= 0 per §6; 0 disables memoization (every Get
// misses) without disabling the invalidator mechanism.
func NewCacheRegistry(size int) (*CacheRegistry, error) {
	if size < 0 {
		return nil, bceerr.New(bceerr.Configuration, "cache_size must be >= 0")
	}
	capacity := size
	if capacity == 0 {
		capacity = 1 // lru.New requires a positive size; size-0 behavior is emulated in Get/Put.
	}
	c, err := lru.New[string, any](capacity)
	if err != nil {
		return nil, bceerr.Wrap(bceerr.Cache, err, "failed to construct LRU cache")
	}
	r := &CacheRegistry{values: c, invalidators: make(map[string]func())}
	if size == 0 {
		r.values = nil
	}
	return r, nil
}

// Get returns the cached value for key, if present.
func (r *CacheRegistry) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.values == nil {
		return nil, false
	}
	return r.values.Get(key)
}

// Put stores value under key, evicting the least-recently-used entry if
// the cache is at capacity.
func (r *CacheRegistry) Put(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		return
	}
	r.values.Add(key, value)
}

// RegisterInvalidator associates a named zero-arg callback that
// InvalidateAll will call on every flush. Registering under a name
// already in use replaces the previous callback.
func (r *CacheRegistry) RegisterInvalidator(name string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidators[name] = fn
}

// InvalidateAll purges the LRU and runs every registered invalidator.
// The engine calls it each time it publishes a new snapshot: at
// construction, on Reload, and after every successful save (§4.4, §3.5).
func (r *CacheRegistry) InvalidateAll() {
	r.mu.Lock()
	if r.values != nil {
		r.values.Purge()
	}
	fns := make([]func(), 0, len(r.invalidators))
	for _, fn := range r.invalidators {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Invalidate runs a single named invalidator, returning a Cache-kind
// error if the name is unregistered. The error is only returned; the
// registry does not log it.
func (r *CacheRegistry) Invalidate(name string) error {
	r.mu.RLock()
	fn, ok := r.invalidators[name]
	r.mu.RUnlock()
	if !ok {
		return bceerr.New(bceerr.Cache, "unknown invalidator: "+name)
	}
	fn()
	return nil
}
