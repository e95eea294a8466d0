package schema

// Instance is the view of an owning record that transforms and default
// generators receive. It is deliberately narrow: derivation code may read
// other attributes leniently but never mutate the record mid-resolution.
type Instance interface {
	Get(name string) any
}

// Transform converts a raw source value into its resolved form. It receives
// the owning instance explicitly so derived properties can reference
// sibling attributes.
type Transform func(inst Instance, v any) (any, error)

// Generator produces a default value lazily, in the context of the owning
// instance. It runs at most once per resolution.
type Generator func(inst Instance) any

// Descriptor is the immutable metadata for one declared property.
// Descriptors are created by Schema.Declare and never mutated afterwards.
type Descriptor struct {
	name             string
	sourceKeys       []string
	required         bool
	hasDefault       bool
	defaultValue     any
	defaultFunc      Generator
	transform        Transform
	transformDefault bool
	identity         bool
}

// Option configures a Descriptor at declaration time.
type Option func(*Descriptor)

// Required marks the property as mandatory in the initial source payload.
// Mutually exclusive with WithDefault, WithDefaultFunc, and Nullable.
func Required() Option {
	return func(d *Descriptor) { d.required = true }
}

// From sets the ordered source keys to try when resolving the property.
// The first key present in the source data wins. A single key is just the
// one-element case. Without From, the property name is the source key.
func From(keys ...string) Option {
	return func(d *Descriptor) { d.sourceKeys = append([]string(nil), keys...) }
}

// WithDefault supplies a concrete default value used when no source value
// is present.
func WithDefault(v any) Option {
	return func(d *Descriptor) {
		d.hasDefault = true
		d.defaultValue = v
		d.defaultFunc = nil
	}
}

// WithDefaultFunc supplies a generator invoked lazily, with the owning
// instance, when no source value is present.
func WithDefaultFunc(fn Generator) Option {
	return func(d *Descriptor) {
		d.hasDefault = true
		d.defaultValue = nil
		d.defaultFunc = fn
	}
}

// Nullable is shorthand for WithDefault(nil): the property resolves to nil
// rather than failing when absent.
func Nullable() Option {
	return WithDefault(nil)
}

// WithTransform applies fn to source-derived values before caching.
// Explicit writes bypass the transform; defaults do too unless
// TransformDefault is also set.
func WithTransform(fn Transform) Option {
	return func(d *Descriptor) { d.transform = fn }
}

// TransformDefault opts the property into running its transform over
// default values as well as source values. Off by default.
func TransformDefault() Option {
	return func(d *Descriptor) { d.transformDefault = true }
}

// Identity flags the property for record equality: records compare equal
// iff every identity-flagged property resolves to an equal value.
func Identity() Option {
	return func(d *Descriptor) { d.identity = true }
}

// Name returns the declared property name.
func (d *Descriptor) Name() string { return d.name }

// SourceKeys returns a copy of the ordered source key candidates.
func (d *Descriptor) SourceKeys() []string {
	return append([]string(nil), d.sourceKeys...)
}

// PrimaryKey returns the first source key candidate. It is the key reported
// by missing-attribute errors.
func (d *Descriptor) PrimaryKey() string { return d.sourceKeys[0] }

// Required reports whether the initial payload must contain the property.
func (d *Descriptor) Required() bool { return d.required }

// HasDefault reports whether a default value or generator is configured.
func (d *Descriptor) HasDefault() bool { return d.hasDefault }

// Identity reports whether the property participates in record equality.
func (d *Descriptor) Identity() bool { return d.identity }

// TransformsDefault reports whether defaults pass through the transform.
func (d *Descriptor) TransformsDefault() bool { return d.transformDefault }

// Default produces the default value, invoking the generator with the
// owning instance when one is configured.
func (d *Descriptor) Default(inst Instance) any {
	if d.defaultFunc != nil {
		return d.defaultFunc(inst)
	}
	return d.defaultValue
}

// ApplyTransform runs the configured transform over v, or returns v
// unchanged when no transform is declared.
func (d *Descriptor) ApplyTransform(inst Instance, v any) (any, error) {
	if d.transform == nil {
		return v, nil
	}
	return d.transform(inst, v)
}

// clone returns a detached copy so child schemas never share descriptor
// backing arrays with their parent.
func (d *Descriptor) clone() *Descriptor {
	cp := *d
	cp.sourceKeys = append([]string(nil), d.sourceKeys...)
	return &cp
}
