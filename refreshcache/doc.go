// Package refreshcache provides a caching decorator for record refreshers.
//
// # Overview
//
// A record's refresher typically fronts a network call. When many record
// instances point at the same origin entity - the same user id resolved in
// different requests - each instance would otherwise pay for its own
// fetch. CachedRefresher wraps any record.Refresher with read-through
// caching so repeated refreshes within the TTL are served from memory.
//
// # Keying
//
// Cache keys combine the record's schema name with its identity-flagged
// property values, serialized deterministically by a cache.KeySerializer.
// Identity values are resolved without triggering a refresh; a schema with
// no identity properties caches one payload per type.
//
// # Loaded-Flag Handling
//
// The fully-loaded flag is part of the refresh protocol: a base refresher
// marks the record complete when no further fetches are meaningful. On a
// cache miss the decorator records the flag the base left behind; on a hit
// it restores that flag onto the current record, so cached records behave
// exactly as if they had performed the fetch.
//
// # Invalidation
//
// Served keys are tracked in a concurrent registry. Invalidate drops a
// single record's payload; InvalidateType drops everything served for one
// schema. Base refresher errors propagate unchanged and are never cached.
//
// # Usage
//
//	container, err := di.NewContainerWithDefaults()
//	if err != nil {
//		return err
//	}
//	cached := container.NewCachedRefresher(userAPI)
//	rec, err := record.New(userSchema, attrs, record.WithRefresher(cached))
package refreshcache
