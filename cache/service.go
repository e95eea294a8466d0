package cache

import "context"

// Payload is the cached unit for one refresh: the fetched source data plus
// whether the origin declared the record fully loaded at fetch time. The
// flag rides along so a cache hit can restore it on records that never saw
// the real fetch.
type Payload struct {
	Data   map[string]any
	Loaded bool
}

// FetchFn is the function signature Service expects when fetching a refresh
// payload from the source of truth.
type FetchFn func(ctx context.Context) (Payload, error)

// Service exposes the read-through caching operations the refresh decorator
// needs. It is exported so embedding code can provide alternate cache
// backends.
type Service interface {
	// GetOrFetch returns the cached payload for key, invoking fetch and
	// caching its result on a miss.
	GetOrFetch(ctx context.Context, key string, fetch FetchFn) (Payload, error)

	// Delete removes a single entry so the next GetOrFetch refetches.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// InvalidateKeys removes multiple entries in one call.
	InvalidateKeys(ctx context.Context, keys []string) error
}
