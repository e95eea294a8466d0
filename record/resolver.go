package record

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lazy-record/schema"
)

// Resolver is the per-instance attribute resolution engine. It owns the raw
// source data, the computed-value cache, and the explicit-write overlay,
// and implements the layered lookup a read follows:
//
//	overlay > computed cache > (one refresh on miss) > source by key > default
//
// Source-derived and default values pass through the descriptor's transform
// (defaults only when opted in) and land in the computed cache, so
// transform and default run at most once per resolution. Explicit writes
// are authoritative and never transformed.
//
// A Resolver is exclusively owned by one record instance and provides no
// internal locking.
type Resolver struct {
	schema   *schema.Schema
	source   map[string]any
	computed map[string]any
	overlay  map[string]any
	loaded   bool

	// refreshing guards against a refresh re-entering resolution and
	// triggering itself again. One refresh per miss, no retry loop.
	refreshing bool

	// owner is passed to transforms and default generators.
	owner schema.Instance

	// reload is installed by the owning record when a refresher is
	// configured. Nil means misses never trigger a refresh.
	reload func(ctx context.Context) error
}

// NewResolver builds a resolver over a defensive copy of source. Required
// fields are not verified here; VerifyRequired is a separate explicit step
// so construction ordering stays controllable.
func NewResolver(s *schema.Schema, source map[string]any) *Resolver {
	src := make(map[string]any, len(source))
	for k, v := range source {
		src[k] = v
	}
	return &Resolver{
		schema:   s,
		source:   src,
		computed: make(map[string]any),
		overlay:  make(map[string]any),
	}
}

// VerifyRequired checks every required property against the source data
// only. Defaults and overlay writes do not satisfy it: the check answers
// "was this key present in the initial payload". It reports the first
// missing property by its declared name.
func (r *Resolver) VerifyRequired() error {
	for _, name := range r.schema.RequiredNames() {
		d, _ := r.schema.Lookup(name)
		if _, ok := r.sourceValue(d); !ok {
			return &RequiredAttributeError{Schema: r.schema.Name(), Property: name}
		}
	}
	return nil
}

// Read resolves a property value following the layered lookup order. A
// miss on a not-fully-loaded record triggers exactly one refresh before
// resolution is re-attempted; a terminal miss fails with
// MissingAttributeError naming the primary source key.
func (r *Resolver) Read(ctx context.Context, name string) (any, error) {
	d, ok := r.schema.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrUnknownAttribute, name, r.schema.Name())
	}
	if v, ok := r.overlay[name]; ok {
		return v, nil
	}
	if v, ok := r.computed[name]; ok {
		return v, nil
	}
	if _, ok := r.sourceValue(d); !ok && !r.loaded && !r.refreshing && r.reload != nil {
		r.refreshing = true
		err := r.reload(ctx)
		r.refreshing = false
		if err != nil {
			return nil, err
		}
	}
	return r.materialize(name, d)
}

// Peek resolves a property without ever triggering a refresh. It reports
// false instead of failing when no value can be produced. Equality checks
// and refresh cache keys use it to stay out of the refresh path.
func (r *Resolver) Peek(name string) (any, bool) {
	d, ok := r.schema.Lookup(name)
	if !ok {
		return nil, false
	}
	if v, ok := r.overlay[name]; ok {
		return v, true
	}
	if v, ok := r.computed[name]; ok {
		return v, true
	}
	v, err := r.materialize(name, d)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Write places v in the overlay. Subsequent reads return it verbatim: the
// transform applies only to source- and default-derived values, never to
// explicit writes.
func (r *Resolver) Write(name string, v any) error {
	if _, ok := r.schema.Lookup(name); !ok {
		return fmt.Errorf("%w: %q on %s", ErrUnknownAttribute, name, r.schema.Name())
	}
	r.overlay[name] = v
	return nil
}

// MergeReload merges freshly fetched source data (new keys win), discards
// the computed cache wholesale so stale derived values are recomputed, and
// preserves the overlay: explicit writes survive reloads until a fresh
// Write replaces them.
func (r *Resolver) MergeReload(data map[string]any) {
	for k, v := range data {
		r.source[k] = v
	}
	r.computed = make(map[string]any)
}

// ToMap returns the record's attributes by property name. When strict, it
// forces resolution of every declared property, triggering refreshes,
// defaults, and transforms as needed, and fails on the first unresolvable
// one. Otherwise it returns only what is already computed or written,
// silently omitting anything not yet loaded.
func (r *Resolver) ToMap(ctx context.Context, strict bool) (map[string]any, error) {
	out := make(map[string]any, r.schema.Len())
	if strict {
		for _, name := range r.schema.Names() {
			v, err := r.Read(ctx, name)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	}
	for name, v := range r.computed {
		out[name] = v
	}
	for name, v := range r.overlay {
		out[name] = v
	}
	return out, nil
}

// FullyLoaded reports whether the refresh protocol has marked the record
// complete. While false, cache misses keep triggering refreshes.
func (r *Resolver) FullyLoaded() bool { return r.loaded }

// MarkLoaded flags the record as fully loaded. Refresher implementations
// call this (through the record) when no further refreshes are meaningful.
func (r *Resolver) MarkLoaded() { r.loaded = true }

// materialize produces and caches a value from source or default.
func (r *Resolver) materialize(name string, d *schema.Descriptor) (any, error) {
	if raw, ok := r.sourceValue(d); ok {
		v, err := d.ApplyTransform(r.owner, raw)
		if err != nil {
			return nil, err
		}
		r.computed[name] = v
		return v, nil
	}
	if d.HasDefault() {
		v := d.Default(r.owner)
		if d.TransformsDefault() {
			tv, err := d.ApplyTransform(r.owner, v)
			if err != nil {
				return nil, err
			}
			v = tv
		}
		r.computed[name] = v
		return v, nil
	}
	return nil, &MissingAttributeError{Schema: r.schema.Name(), Key: d.PrimaryKey()}
}

// sourceValue looks the property up in the raw source data, trying the
// descriptor's candidate keys left to right.
func (r *Resolver) sourceValue(d *schema.Descriptor) (any, bool) {
	for _, key := range d.SourceKeys() {
		if v, ok := r.source[key]; ok {
			return v, true
		}
	}
	return nil, false
}
