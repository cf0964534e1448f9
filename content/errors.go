package content

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("post not found")
	ErrEmptySlug     = errors.New("empty slug")
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// LoadError wraps a failure to load one content file.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (path=%s): %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
