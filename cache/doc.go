// Package cache defines the caching surface used to decorate record
// refreshers.
//
// The Service interface provides read-through semantics for refresh
// payloads: GetOrFetch returns a cached Payload or invokes the fetch
// function against the source of truth and caches the result. Payloads
// carry the fetched source data together with the fully-loaded flag the
// origin reported, so a cache hit can restore both.
//
// KeySerializer builds stable cache keys from a record type name and its
// identity values. The default implementation serializes reflectively with
// deterministic map ordering and digests oversized segments with xxhash.
//
// The default Service backend is a sturdyc adapter constructed from Config
// by the pkg/di container; alternate backends only need to satisfy the
// Service interface.
package cache
