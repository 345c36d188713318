package field

import (
	"errors"
	"fmt"
)

// Configuration errors surfaced at registration time. Queries never fail:
// a point outside every fragment's reach is a normal result, not an error.
var (
	// ErrZeroAxis indicates a segment axis with no usable length.
	ErrZeroAxis = errors.New("field: segment axis has zero length")

	// ErrNegativeRadius indicates a negative ring, tube, or influence radius.
	ErrNegativeRadius = errors.New("field: radius must be non-negative")

	// ErrDuplicateSegment indicates a registration under an id already in use.
	ErrDuplicateSegment = errors.New("field: segment id already registered")

	// ErrEmptyID indicates a registration without an identifier.
	ErrEmptyID = errors.New("field: segment id must not be empty")
)

// ConfigError wraps a configuration error with the offending segment id.
type ConfigError struct {
	ID      string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("segment %q: %v", e.ID, e.Wrapped)
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }
