package typography

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ConfigError through errors.Is.
var ErrInvalidConfig = errors.New("invalid typography config")

// ConfigError reports the first Config field that failed validation.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("typography: %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
