package amrproj

import "fmt"

// ConfigurationError reports an invalid projection request: a direction
// that is not a principal axis, a mask whose length does not match the
// dataset's cell count, or mass weighting requested against a dataset
// that carries no mass variable.
//
// ConfigurationError is always returned before any output grid is
// allocated.
type ConfigurationError struct {
	// Field names the offending request parameter ("direction",
	// "mask", "weighting", ...).
	Field string

	// Reason describes the violated contract.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("amrproj: invalid %s: %s", e.Field, e.Reason)
}

// configErrorf builds a ConfigurationError with a formatted reason.
func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DataConsistencyError reports that two arrays which must stay
// row-aligned after masking (coordinates, levels, weights, per-variable
// values) came back with different lengths. The projection aborts
// before rasterization; lengths are never silently truncated or padded.
type DataConsistencyError struct {
	// Array names the mismatched array (usually a variable name).
	Array string

	// Got and Want are the observed and required lengths.
	Got, Want int
}

func (e *DataConsistencyError) Error() string {
	return fmt.Sprintf("amrproj: %s has %d rows, want %d: dataset broke the shared cell-ordering contract",
		e.Array, e.Got, e.Want)
}
