package transport

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/txn2/catalog-go/pkg/asset"
)

// Cached wraps a Client with read-through caching of asset lookups.
// Mutations pass straight through and evict the entries they touch, so a
// read after a write through the same Cached never returns the stale copy.
type Cached struct {
	client Client
	ttl    time.Duration

	mu        sync.RWMutex
	guidCache map[string]*cacheEntry[asset.Asset]
	qnCache   map[string]*cacheEntry[asset.Asset]
}

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// CacheConfig configures the cache.
type CacheConfig struct {
	TTL time.Duration
}

// NewCached creates a caching wrapper around a client.
func NewCached(client Client, cfg CacheConfig) *Cached {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{
		client:    client,
		ttl:       ttl,
		guidCache: make(map[string]*cacheEntry[asset.Asset]),
		qnCache:   make(map[string]*cacheEntry[asset.Asset]),
	}
}

// GetByGUID retrieves an asset with caching.
func (c *Cached) GetByGUID(ctx context.Context, guid string) (asset.Asset, error) {
	c.mu.RLock()
	if entry, ok := c.guidCache[guid]; ok && !entry.isExpired() {
		c.mu.RUnlock()
		return entry.value, nil
	}
	c.mu.RUnlock()

	result, err := c.client.GetByGUID(ctx, guid)
	if err != nil {
		return asset.Asset{}, err
	}

	c.mu.Lock()
	c.store(result)
	c.mu.Unlock()

	return result, nil
}

// GetByQualifiedName retrieves an asset with caching.
func (c *Cached) GetByQualifiedName(ctx context.Context, typeName, qualifiedName string) (asset.Asset, error) {
	key := qnKey(typeName, qualifiedName)

	c.mu.RLock()
	if entry, ok := c.qnCache[key]; ok && !entry.isExpired() {
		c.mu.RUnlock()
		return entry.value, nil
	}
	c.mu.RUnlock()

	result, err := c.client.GetByQualifiedName(ctx, typeName, qualifiedName)
	if err != nil {
		return asset.Asset{}, err
	}

	c.mu.Lock()
	c.store(result)
	c.mu.Unlock()

	return result, nil
}

// Save passes through and evicts every asset the mutation touched.
func (c *Cached) Save(ctx context.Context, req SaveRequest) (*MutationResult, error) {
	result, err := c.client.Save(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, a := range result.CreatedAssets {
		c.evict(a)
	}
	for _, a := range result.UpdatedAssets {
		c.evict(a)
	}
	for _, a := range result.PartiallyUpdatedAssets {
		c.evict(a)
	}
	c.mu.Unlock()

	return result, nil
}

// Delete passes through and evicts the deleted assets.
func (c *Cached) Delete(ctx context.Context, guid string, mode DeleteMode) (*DeletionResult, error) {
	result, err := c.client.Delete(ctx, guid, mode)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	delete(c.guidCache, guid)
	for _, a := range result.DeletedAssets {
		c.evict(a)
	}
	c.mu.Unlock()

	return result, nil
}

// Restore passes through and evicts the restored assets.
func (c *Cached) Restore(ctx context.Context, u *asset.Update) (*MutationResult, error) {
	result, err := c.client.Restore(ctx, u)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, a := range result.UpdatedAssets {
		c.evict(a)
	}
	c.mu.Unlock()

	return result, nil
}

// Search passes through uncached since queries vary too much. The wrapped
// client must implement Searcher.
func (c *Cached) Search(ctx context.Context, q Query) iter.Seq2[asset.Asset, error] {
	if s, ok := c.client.(Searcher); ok {
		return s.Search(ctx, q)
	}
	return func(yield func(asset.Asset, error) bool) {
		yield(asset.Asset{}, fmt.Errorf("search: client %T does not support search", c.client))
	}
}

func (c *Cached) store(a asset.Asset) {
	entry := &cacheEntry[asset.Asset]{value: a, expiresAt: time.Now().Add(c.ttl)}
	if a.GUID != "" {
		c.guidCache[a.GUID] = entry
	}
	if qn := a.ResolveQualifiedName(); qn != "" {
		c.qnCache[qnKey(a.TypeName, qn)] = entry
	}
}

func (c *Cached) evict(a asset.Asset) {
	delete(c.guidCache, a.GUID)
	delete(c.qnCache, qnKey(a.TypeName, a.ResolveQualifiedName()))
}

// Invalidate clears the cache.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guidCache = make(map[string]*cacheEntry[asset.Asset])
	c.qnCache = make(map[string]*cacheEntry[asset.Asset])
}

// Verify interface compliance.
var _ Client = (*Cached)(nil)
