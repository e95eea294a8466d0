package record

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/goliatone/go-lazy-record/schema"
)

// Interface assertion: records satisfy the instance view that transforms
// and default generators receive.
var _ schema.Instance = (*Record)(nil)

// Record is the public-facing lazy record instance. It binds a shared
// schema to a per-instance Resolver and exposes the read/write/reload
// surface record types hand to their own callers.
//
// Records are single-owner, synchronous-access objects. Concurrent
// mutation of one instance requires external synchronization.
type Record struct {
	schema    *schema.Schema
	resolver  *Resolver
	refresher Refresher
}

// Option configures a Record at construction time.
type Option func(*Record)

// WithRefresher installs the data-fetching collaborator invoked when a
// read misses on a not-fully-loaded record and by Reload.
func WithRefresher(r Refresher) Option {
	return func(rec *Record) { rec.refresher = r }
}

// New constructs a record over the initial attribute payload and verifies
// required properties against it. Verification happens before any refresh
// could run; a RequiredAttributeError means the instance is not usable.
func New(s *schema.Schema, attrs map[string]any, opts ...Option) (*Record, error) {
	rec := &Record{schema: s, resolver: NewResolver(s, attrs)}
	for _, opt := range opts {
		opt(rec)
	}
	rec.bind(rec.resolver)
	if err := rec.resolver.VerifyRequired(); err != nil {
		return nil, err
	}
	return rec, nil
}

// bind wires a resolver to this record: the record is the instance context
// for transforms and defaults, and the refresh hook is installed only when
// a refresher exists.
func (r *Record) bind(res *Resolver) {
	res.owner = r
	if r.refresher != nil {
		res.reload = r.refresh
	}
}

// Schema returns the shared schema this record was declared against.
func (r *Record) Schema() *schema.Schema { return r.schema }

// Read resolves a property strictly. It fails with ErrUnknownAttribute for
// undeclared names, MissingAttributeError when no value can be produced
// after any refresh attempt, and propagates refresher errors unchanged.
func (r *Record) Read(ctx context.Context, name string) (any, error) {
	return r.resolver.Read(ctx, name)
}

// Get is the lenient accessor: a missing value resolves to nil instead of
// an error, and refresh failures also surface as nil (use Read when they
// matter). Reading an undeclared name is a programming error and panics.
func (r *Record) Get(name string) any {
	v, err := r.resolver.Read(context.Background(), name)
	if err != nil {
		if errors.Is(err, ErrUnknownAttribute) {
			panic(err)
		}
		return nil
	}
	return v
}

// Peek resolves a property without triggering a refresh, reporting false
// when no value can be produced yet.
func (r *Record) Peek(name string) (any, bool) {
	return r.resolver.Peek(name)
}

// Set writes v directly to the overlay. The value is returned verbatim by
// subsequent reads, with no transform applied: an explicit write is
// authoritative.
func (r *Record) Set(name string, v any) error {
	return r.resolver.Write(name, v)
}

// SetAll writes every entry of values to the overlay. It stops at the
// first undeclared name.
func (r *Record) SetAll(values map[string]any) error {
	for name, v := range values {
		if err := r.resolver.Write(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Reload invokes the refresher and merges its result: new source keys win,
// the computed cache is discarded, explicit writes persist. It returns the
// record itself so calls chain. Refresher errors propagate unchanged.
func (r *Record) Reload(ctx context.Context) (*Record, error) {
	if r.refresher == nil {
		return r, ErrNoRefresher
	}
	if err := r.refresh(ctx); err != nil {
		return r, err
	}
	return r, nil
}

// refresh runs one refresh cycle. It is also the resolver's miss hook.
func (r *Record) refresh(ctx context.Context) error {
	data, err := r.refresher.Refresh(ctx, r)
	if err != nil {
		return err
	}
	r.resolver.MergeReload(data)
	return nil
}

// FullyLoaded reports whether the refresher has marked this record
// complete.
func (r *Record) FullyLoaded() bool { return r.resolver.FullyLoaded() }

// MarkFullyLoaded flags the record as complete so cache misses stop
// triggering refreshes. Refresher implementations call this when no
// further fetches are meaningful.
func (r *Record) MarkFullyLoaded() { r.resolver.MarkLoaded() }

// ToMap returns the attributes by property name; see Resolver.ToMap for
// strict versus lenient semantics.
func (r *Record) ToMap(ctx context.Context, strict bool) (map[string]any, error) {
	return r.resolver.ToMap(ctx, strict)
}

// Equal compares two records. Records of different schemas are never
// equal. With identity-flagged properties declared, records are equal iff
// every identity property resolves to an equal value on both sides;
// resolution uses Peek so equality never triggers a refresh. Without
// identity properties, equality falls back to instance identity.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.schema != other.schema {
		return false
	}
	ids := r.schema.IdentityNames()
	if len(ids) == 0 {
		return r == other
	}
	for _, name := range ids {
		av, aok := r.resolver.Peek(name)
		bv, bok := other.resolver.Peek(name)
		if !aok || !bok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

// ReadAs is a type-safe wrapper over Read. A nil resolved value yields the
// zero value of T; a non-nil value of the wrong type fails with
// ErrInvalidAttributeType.
func ReadAs[T any](ctx context.Context, r *Record, name string) (T, error) {
	var zero T
	v, err := r.Read(ctx, name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: attribute %q is %T", ErrInvalidAttributeType, name, v)
	}
	return t, nil
}
