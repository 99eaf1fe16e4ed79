// Package hierarchy enumerates legal C++ class hierarchies built from single,
// multiple and virtual inheritance, and answers path and ambiguity queries
// about them.
package hierarchy

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrInvalidOptions indicates search options that cannot describe any hierarchy.
	ErrInvalidOptions = errors.New("hierarchy: invalid options")

	// ErrClassOutOfRange indicates a class index outside the hierarchy.
	ErrClassOutOfRange = errors.New("hierarchy: class index out of range")

	// ErrStop may be returned by a Walk callback to end the search early.
	// Walk returns nil in that case.
	ErrStop = errors.New("hierarchy: stop walk")
)

// OptionError provides detailed information about rejected search options.
type OptionError struct {
	Field   string // Option name
	Value   int    // Offending value
	Message string // Description of the problem
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("hierarchy: invalid option %s=%d: %s", e.Field, e.Value, e.Message)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOptions }
