package refreshcache

import (
	"context"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-lazy-record/cache"
	"github.com/goliatone/go-lazy-record/record"
)

// Interface assertion to ensure CachedRefresher satisfies the refresh
// protocol.
var _ record.Refresher = (*CachedRefresher)(nil)

// CachedRefresher decorates a base refresher with read-through caching.
// Refreshes are keyed by the record's schema name plus its identity
// values, so distinct records pointing at the same origin entity share one
// fetch within the TTL. The loaded flag observed at fetch time is cached
// alongside the payload and restored on hits.
type CachedRefresher struct {
	base record.Refresher
	svc  cache.Service
	keys cache.KeySerializer

	// active tracks keys this decorator has served, for type-wide
	// invalidation.
	active *xsync.MapOf[string, struct{}]
}

// New wraps base with caching backed by svc, keyed via keys.
func New(base record.Refresher, svc cache.Service, keys cache.KeySerializer) *CachedRefresher {
	return &CachedRefresher{
		base:   base,
		svc:    svc,
		keys:   keys,
		active: xsync.NewMapOf[string, struct{}](),
	}
}

// Refresh implements record.Refresher. A cache hit returns the stored
// payload and restores the fully-loaded flag on the record; a miss calls
// the base refresher, which may mark the record loaded itself, and caches
// both the data and the flag it left behind. Base errors propagate
// unchanged and nothing is cached for them.
func (c *CachedRefresher) Refresh(ctx context.Context, rec *record.Record) (map[string]any, error) {
	key := c.refreshKey(rec)
	c.active.Store(key, struct{}{})

	payload, err := c.svc.GetOrFetch(ctx, key, func(ctx context.Context) (cache.Payload, error) {
		data, err := c.base.Refresh(ctx, rec)
		if err != nil {
			return cache.Payload{}, err
		}
		return cache.Payload{Data: data, Loaded: rec.FullyLoaded()}, nil
	})
	if err != nil {
		return nil, err
	}
	if payload.Loaded {
		rec.MarkFullyLoaded()
	}
	return payload.Data, nil
}

// Invalidate drops the cached payload for one record so its next refresh
// reaches the base refresher.
func (c *CachedRefresher) Invalidate(ctx context.Context, rec *record.Record) error {
	key := c.refreshKey(rec)
	c.active.Delete(key)
	return c.svc.Delete(ctx, key)
}

// InvalidateType drops every cached payload served for the named schema.
func (c *CachedRefresher) InvalidateType(ctx context.Context, schemaName string) error {
	prefix := schemaName + cache.KeySeparator
	var stale []string
	c.active.Range(func(key string, _ struct{}) bool {
		if key == schemaName || strings.HasPrefix(key, prefix) {
			stale = append(stale, key)
		}
		return true
	})
	for _, key := range stale {
		c.active.Delete(key)
	}
	return c.svc.InvalidateKeys(ctx, stale)
}

// refreshKey builds the cache key from the schema name and identity
// values. Identity values are read with Peek: key building must never
// trigger the refresh it is keying.
func (c *CachedRefresher) refreshKey(rec *record.Record) string {
	ids := rec.Schema().IdentityNames()
	args := make([]any, 0, len(ids))
	for _, name := range ids {
		v, _ := rec.Peek(name)
		args = append(args, v)
	}
	return c.keys.SerializeKey(rec.Schema().Name(), args...)
}
