package schema

import "fmt"

// ConfigurationError reports an invalid property declaration. It is raised
// at definition time and is never recoverable at runtime.
type ConfigurationError struct {
	Schema   string
	Property string
	Reason   string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("schema %q: property %q: %s", e.Schema, e.Property, e.Reason)
}
