package record

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAttribute is returned when a read or write names a property
	// the record's schema never declared.
	ErrUnknownAttribute = errors.New("lazyrecord: unknown attribute")

	// ErrNoRefresher is returned by Reload when the record was constructed
	// without a refresher.
	ErrNoRefresher = errors.New("lazyrecord: no refresher configured")

	// ErrInvalidAttributeType is returned by ReadAs when the resolved value
	// does not have the requested type.
	ErrInvalidAttributeType = errors.New("lazyrecord: invalid attribute type")

	// ErrSchemaMismatch is returned when restoring a snapshot taken from a
	// record of a different type.
	ErrSchemaMismatch = errors.New("lazyrecord: snapshot schema mismatch")
)

// RequiredAttributeError reports a required property whose source key was
// absent from the initial payload. Construction fails before any refresh is
// attempted; the instance is not usable.
type RequiredAttributeError struct {
	Schema   string
	Property string
}

// Error implements the error interface.
func (e *RequiredAttributeError) Error() string {
	return fmt.Sprintf("%s: required attribute %q missing from source data", e.Schema, e.Property)
}

// MissingAttributeError reports a read that produced no value after any
// refresh attempt. It identifies the resolved source key rather than the
// property name: the key is what is missing from the caller's perspective.
// The lenient Get accessor converts it to a nil result.
type MissingAttributeError struct {
	Schema string
	Key    string
}

// Error implements the error interface.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: missing attribute for source key %q", e.Schema, e.Key)
}
