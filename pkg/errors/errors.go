// Package errors provides custom error types for the astropy name resolution
// system. These errors enable programmatic error checking and carry enough
// diagnostic context to reconstruct what was attempted against which mirrors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the astropy system
var (
	// ErrNotFound indicates that a requested object or resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMirrorUnavailable indicates that a Sesame mirror could not be reached
	// or returned a non-success status
	ErrMirrorUnavailable = errors.New("mirror unavailable")

	// ErrNoEmbeddedCoordinate indicates that an object name carries no
	// decodable embedded coordinate
	ErrNoEmbeddedCoordinate = errors.New("no embedded coordinate")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error, such as an invalid mirror
// list or an unrecognized database selector. Setters that detect one leave
// the previous configuration value in effect.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents a failure to extract a coordinate from a mirror
// response body. It means the mirror was reachable but had no match for the
// name; the resolution client converts it into fallback control flow and it
// is never surfaced raw to callers.
type ParseError struct {
	Format  string // "sesame"
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, message string, err error) *ParseError {
	return &ParseError{Format: format, Message: message, Err: err}
}

// TransportError represents a failure to fetch a URL: the mirror was
// unreachable or answered with a non-success status. Like ParseError it is
// recorded per mirror and triggers fallback rather than escaping resolve.
type TransportError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error fetching %s (status %d): %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport error fetching %s: %s", e.URL, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrMirrorUnavailable
}

// NewTransportError creates a new TransportError
func NewTransportError(url string, statusCode int, message string, err error) *TransportError {
	return &TransportError{
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResolveAttempt records one mirror query that did not yield a coordinate:
// the exact URL that was fetched and the reason it failed. Parse failures
// and transport failures are both recorded here without distinction.
type ResolveAttempt struct {
	URL    string
	Reason string
}

// NameResolveError is the terminal failure of name resolution, raised after
// every mirror has been exhausted (or after embedded-coordinate extraction
// failed in extraction-only mode). It is the only error kind callers of
// Resolve should expect to observe.
type NameResolveError struct {
	Name     string
	Attempts []ResolveAttempt
}

// Error implements the error interface. The message enumerates every
// attempted URL, so the database-selector code in effect (e.g. "SNV" under
// the "all" selector) is visible to operators diagnosing which remote
// databases were actually queried.
func (e *NameResolveError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("unable to find coordinates for name %q", e.Name)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.URL, a.Reason))
	}
	return fmt.Sprintf("unable to find coordinates for name %q using %s",
		e.Name, strings.Join(parts, "; "))
}

// Is implements errors.Is support
func (e *NameResolveError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNameResolveError creates a new NameResolveError
func NewNameResolveError(name string, attempts []ResolveAttempt) *NameResolveError {
	return &NameResolveError{Name: name, Attempts: attempts}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMirrorUnavailable checks if an error indicates mirror unavailability
func IsMirrorUnavailable(err error) bool {
	return errors.Is(err, ErrMirrorUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
