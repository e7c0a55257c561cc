package serializer

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates a misconfigured schema: an owner field that
// was never declared, a flatten group borrowing an unknown field, and so on.
// It is raised at schema construction, never at request time, and is not
// recoverable; treat it as a startup fault.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return "serializer configuration: " + e.Message
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ErrMissingRelation is returned when a non-optional flatten group's related
// record is absent on the read path.
var ErrMissingRelation = errors.New("missing related record")
