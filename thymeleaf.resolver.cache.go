package thymeleaf

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CacheConfig configures a CachingResolver.
type CacheConfig struct {
	// TTL is how long a resolved template is served from memory.
	// Default: 5 minutes.
	TTL time.Duration

	// MaxEntries bounds the number of cached templates; the least recently
	// used entry is evicted first. 0 means unbounded.
	MaxEntries int

	// Logger receives invalidation events. Default: nil (no logging)
	Logger *zap.Logger
}

// CachingResolver wraps another resolver and keeps resolved sources in memory.
// Failed lookups are not cached.
type CachingResolver struct {
	next   TemplateResolver
	config CacheConfig
	now    func() time.Time
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]*cachedTemplate
}

type cachedTemplate struct {
	source     string
	resolvedAt time.Time
	usedAt     time.Time
}

// NewCachingResolver wraps next with a cache.
func NewCachingResolver(next TemplateResolver, config CacheConfig) *CachingResolver {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingResolver{
		next:    next,
		config:  config,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]*cachedTemplate),
	}
}

// key returns the cache key for name, normalized when the wrapped resolver
// is a NameNormalizer.
func (r *CachingResolver) key(name string) string {
	if n, ok := r.next.(NameNormalizer); ok {
		return n.NormalizeName(name)
	}
	return name
}

// Resolve returns the cached source if it is still fresh, otherwise it
// resolves through the wrapped resolver and caches the result.
func (r *CachingResolver) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := r.key(name)

	r.mu.Lock()
	if entry, ok := r.entries[key]; ok {
		now := r.now()
		if now.Sub(entry.resolvedAt) < r.config.TTL {
			entry.usedAt = now
			r.mu.Unlock()
			return entry.source, nil
		}
		delete(r.entries, key)
	}
	r.mu.Unlock()

	source, err := r.next.Resolve(ctx, name)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.MaxEntries > 0 && len(r.entries) >= r.config.MaxEntries {
		r.evictLeastRecentlyUsed()
	}
	now := r.now()
	r.entries[key] = &cachedTemplate{source: source, resolvedAt: now, usedAt: now}
	return source, nil
}

// Invalidate drops one template from the cache.
func (r *CachingResolver) Invalidate(name string) {
	r.mu.Lock()
	delete(r.entries, r.key(name))
	r.mu.Unlock()

	r.logger.Debug(LogMsgCacheInvalidated, zap.String(LogFieldTemplate, name))
}

// Clear drops every cached template.
func (r *CachingResolver) Clear() {
	r.mu.Lock()
	r.entries = make(map[string]*cachedTemplate)
	r.mu.Unlock()

	r.logger.Debug(LogMsgCacheInvalidated)
}

// Len returns the number of cached templates, fresh or not.
func (r *CachingResolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// evictLeastRecentlyUsed removes one entry. Caller must hold the lock.
func (r *CachingResolver) evictLeastRecentlyUsed() {
	var (
		oldestName string
		oldest     *cachedTemplate
	)
	for name, entry := range r.entries {
		if oldest == nil || entry.usedAt.Before(oldest.usedAt) {
			oldestName, oldest = name, entry
		}
	}
	if oldest != nil {
		delete(r.entries, oldestName)
	}
}
