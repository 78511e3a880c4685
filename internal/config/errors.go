package config

import (
	"errors"
	"fmt"
)

var ErrConfigNotFound = errors.New("local config file not found")

// LoadError reports a local config file that exists but could not be read.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
