// Package record implements lazily materialized record instances.
//
// # Overview
//
// A record binds a shared schema (see the schema package) to per-instance
// state: raw source data supplied at construction or merged in by a
// refresh, a computed-value cache, and a write overlay for explicit
// assignments. Field values may be supplied up front, derived from renamed
// source keys, transformed on read, defaulted, or fetched on demand the
// first time they are accessed - callers see one uniform read/write
// surface either way.
//
// # Resolution Order
//
// Every read follows the same layered lookup:
//
//  1. Write overlay - explicit Set values win, returned verbatim
//  2. Computed cache - previously resolved values, returned as-is
//  3. Refresh trigger - a miss on a not-fully-loaded record invokes the
//     refresher exactly once before resolution is re-attempted
//  4. Source data - raw values located by the descriptor's ordered source
//     keys, passed through the transform, then cached
//  5. Default - concrete value or lazy generator, cached; transformed only
//     when the descriptor opts in
//
// A terminal miss fails with MissingAttributeError from Read, or resolves
// to nil from the lenient Get accessor.
//
// # Refresh Protocol
//
// The Refresher collaborator is the extension point for on-demand data:
//
//	type userAPI struct{ client *api.Client }
//
//	func (u *userAPI) Refresh(ctx context.Context, rec *record.Record) (map[string]any, error) {
//		data, err := u.client.FetchUser(ctx, rec.Get("id"))
//		if err != nil {
//			return nil, err
//		}
//		rec.MarkFullyLoaded()
//		return data, nil
//	}
//
// Refresh runs synchronously from the resolver's point of view; its errors
// propagate unchanged out of Read and Reload. Reload merges the returned
// mapping into the source data (new keys win), clears the computed cache,
// and preserves explicit writes.
//
// # Snapshots
//
// MarshalBinary and UnmarshalBinary persist an instance's source data,
// overlay, and loaded flag as msgpack. The computed cache is not carried
// over; derived values are rebuilt lazily after restore.
//
// # Concurrency
//
// Records are single-owner, synchronous-access objects with no internal
// locking. When an embedding application shares one instance across
// goroutines, synchronization is the caller's responsibility. The caching
// layers in the cache and refreshcache packages, which are shared across
// instances, are safe for concurrent use.
package record
