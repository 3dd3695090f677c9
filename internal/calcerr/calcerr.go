// Package calcerr defines the error taxonomy shared by the probability engine
// and its collaborators. Every error is fatal to the computation that raised it.
package calcerr

import "fmt"

// #region codes
// Code is a machine-readable error category.
type Code string

const (
	CodeConfiguration   Code = "CONFIGURATION"
	CodeParse           Code = "PARSE"
	CodeSourceExhausted Code = "SOURCE_EXHAUSTED"
	CodeDomain          Code = "DOMAIN"
	CodeIO              Code = "IO"
)

// #endregion codes

// #region error
// Error is the structured engine error.
type Error struct {
	Code     Code              // category
	Message  string            // human-readable detail
	Metadata map[string]string // e.g. "trial", "field", "value"
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// #endregion error

// #region sentinels
// Sentinels for errors.Is checks. Only the code is compared.
var (
	ErrConfiguration   = &Error{Code: CodeConfiguration}
	ErrParse           = &Error{Code: CodeParse}
	ErrSourceExhausted = &Error{Code: CodeSourceExhausted}
	ErrDomain          = &Error{Code: CodeDomain}
	ErrIO              = &Error{Code: CodeIO}
)

// #endregion sentinels

// #region constructors
// Configuration reports a contradictory or non-terminating setup.
func Configuration(format string, args ...any) *Error {
	return &Error{Code: CodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Parse reports a malformed numeric field.
func Parse(field, value string, cause error) *Error {
	return &Error{
		Code:     CodeParse,
		Message:  fmt.Sprintf("field %s: cannot parse %q", field, value),
		Metadata: map[string]string{"field": field, "value": value},
		Cause:    cause,
	}
}

// SourceExhausted reports that override rows ran out at the given trial.
func SourceExhausted(trial int) *Error {
	return &Error{
		Code:     CodeSourceExhausted,
		Message:  fmt.Sprintf("override source has no row for trial %d", trial),
		Metadata: map[string]string{"trial": fmt.Sprint(trial)},
	}
}

// Domain reports a probability outside the normalizable range.
func Domain(value float64) *Error {
	return &Error{
		Code:     CodeDomain,
		Message:  fmt.Sprintf("probability %v is outside [0, 100]", value),
		Metadata: map[string]string{"value": fmt.Sprint(value)},
	}
}

// NegativeCost reports a per-trial cost below zero.
func NegativeCost(value float64) *Error {
	return &Error{
		Code:     CodeDomain,
		Message:  fmt.Sprintf("cost %v is negative", value),
		Metadata: map[string]string{"value": fmt.Sprint(value)},
	}
}

// IO wraps a failure to read an external source.
func IO(message string, cause error) *Error {
	return &Error{Code: CodeIO, Message: message, Cause: cause}
}

// WithTrial returns a copy of err annotated with the trial index, if err is an *Error.
func WithTrial(err error, trial int) error {
	e, ok := err.(*Error)
	if !ok {
		return fmt.Errorf("trial %d: %w", trial, err)
	}
	meta := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta["trial"] = fmt.Sprint(trial)
	return &Error{
		Code:     e.Code,
		Message:  fmt.Sprintf("trial %d: %s", trial, e.Message),
		Metadata: meta,
		Cause:    e.Cause,
	}
}

// #endregion constructors
