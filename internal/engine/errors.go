package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyContent is returned when the input normalizes to an empty string.
var ErrEmptyContent = errors.New("content is empty after normalization")

// ConfigurationError reports options that can never produce a valid
// threadstorm, such as a character limit too small to hold a numbering
// suffix. It is raised before any packing work begins.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// PackingOverflowError reports that the suffix-width fixed-point iteration
// failed to converge within its bound. This indicates a pathological
// configuration, not a transient condition; retrying never helps.
type PackingOverflowError struct {
	MaxChars   int
	Iterations int
}

func (e *PackingOverflowError) Error() string {
	return fmt.Sprintf("packing failed to converge after %d iterations (max_chars_per_post=%d)",
		e.Iterations, e.MaxChars)
}
