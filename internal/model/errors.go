package model

import (
	"errors"
	"fmt"
)

// ErrInsufficientPanelData is returned when a fixed-effects fit is requested
// on a dataset where no country has more than one year of observations.
var ErrInsufficientPanelData = errors.New("insufficient panel data: no country has two or more time periods")

// ConfigurationError reports an invalid analysis configuration. The requested
// operation aborts before any computation; cached datasets are untouched.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError builds a ConfigurationError for a field.
func NewConfigurationError(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ModelFitError reports a degenerate regression input (singular design matrix,
// too few observations). It is local to the requested model: the caller may
// still fit the other specification or read the engineered dataset.
type ModelFitError struct {
	Model string
	Cause string
	Err   error
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("model fit failed (%s): %s", e.Model, e.Cause)
}

func (e *ModelFitError) Unwrap() error { return e.Err }
