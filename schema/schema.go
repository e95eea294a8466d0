package schema

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// propertyName constrains declared names to identifier-ish tokens so they
// stay usable as map keys, cache key segments, and JSON field names.
var propertyName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Schema is the ordered property registry for one record type. It is
// mutated only by declaration calls at definition time; instances treat it
// as immutable afterwards.
type Schema struct {
	name  string
	order []string
	props map[string]*Descriptor
}

// New creates an empty schema. The name identifies the record type in
// error messages, equality checks, and refresh cache keys.
func New(name string) *Schema {
	return &Schema{
		name:  name,
		props: make(map[string]*Descriptor),
	}
}

// Name returns the record type name.
func (s *Schema) Name() string { return s.name }

// Declare registers a property descriptor and returns the canonical
// property name. Re-declaring an existing name replaces its descriptor in
// place, keeping the original declaration order. Invalid declarations fail
// with a ConfigurationError.
func (s *Schema) Declare(name string, opts ...Option) (string, error) {
	if err := validation.Validate(name,
		validation.Required,
		validation.Match(propertyName),
	); err != nil {
		return "", &ConfigurationError{Schema: s.name, Property: name, Reason: err.Error()}
	}

	d := &Descriptor{name: name, sourceKeys: []string{name}}
	for _, opt := range opts {
		opt(d)
	}

	if d.required && d.hasDefault {
		return "", &ConfigurationError{
			Schema:   s.name,
			Property: name,
			Reason:   "required and default are mutually exclusive",
		}
	}
	if len(d.sourceKeys) == 0 {
		return "", &ConfigurationError{Schema: s.name, Property: name, Reason: "empty source key list"}
	}
	for _, key := range d.sourceKeys {
		if err := validation.Validate(key, validation.Required); err != nil {
			return "", &ConfigurationError{Schema: s.name, Property: name, Reason: "empty source key"}
		}
	}

	if _, exists := s.props[name]; !exists {
		s.order = append(s.order, name)
	}
	s.props[name] = d
	return name, nil
}

// MustDeclare is Declare for definition-time use: it panics on a
// configuration error, matching the fail-fast contract for invalid
// declarations.
func (s *Schema) MustDeclare(name string, opts ...Option) string {
	canonical, err := s.Declare(name, opts...)
	if err != nil {
		panic(err)
	}
	return canonical
}

// Extend returns a detached snapshot copy of the schema under a new type
// name. Declarations on the child never mutate the parent and vice versa.
func (s *Schema) Extend(name string) *Schema {
	child := New(name)
	child.order = append([]string(nil), s.order...)
	for prop, d := range s.props {
		child.props[prop] = d.clone()
	}
	return child
}

// Lookup returns the descriptor for a declared property name.
func (s *Schema) Lookup(name string) (*Descriptor, bool) {
	d, ok := s.props[name]
	return d, ok
}

// Names returns the property names in declaration order.
func (s *Schema) Names() []string {
	return append([]string(nil), s.order...)
}

// RequiredNames returns the declared names of required properties, in
// declaration order.
func (s *Schema) RequiredNames() []string {
	var out []string
	for _, name := range s.order {
		if s.props[name].required {
			out = append(out, name)
		}
	}
	return out
}

// IdentityNames returns the declared names of identity-flagged properties,
// in declaration order.
func (s *Schema) IdentityNames() []string {
	var out []string
	for _, name := range s.order {
		if s.props[name].identity {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of declared properties.
func (s *Schema) Len() int { return len(s.order) }
