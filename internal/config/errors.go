package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration contradictions.
var (
	// ErrDiamondRandomOverride indicates random overrides were requested
	// together with diamond inheritance.
	ErrDiamondRandomOverride = errors.New("config: random override cannot be combined with diamond inheritance")
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string // Field name as spelled in the YAML file
	Message string // Description of the problem
	Err     error  // Underlying error, if any
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: invalid %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }
