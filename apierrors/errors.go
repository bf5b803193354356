package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidDocument indicates a document does not have the expected shape.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidMethodEntry indicates a method value is not an operation.
	ErrInvalidMethodEntry = errors.New("invalid method entry")

	// ErrParse indicates the serialized input could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Document sides used in the Document field of errors raised by the differ.
const (
	DocumentOld = "old"
	DocumentNew = "new"
)

// DocumentError reports a document whose shape the differ cannot work with,
// for example a "paths" value that is not a keyed mapping.
type DocumentError struct {
	// Document is "old" or "new" when known
	Document string
	// Path is the path template involved, empty for document-level problems
	Path string
	// Field is the offending field (e.g. "paths", "components.schemas")
	Field string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DocumentError) Error() string {
	msg := "invalid document"
	if e.Document != "" {
		msg = "invalid " + e.Document + " document"
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" at path %q", e.Path)
	}
	if e.Field != "" {
		msg += " (field " + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DocumentError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// MethodEntryError reports a method value under a path that is present but
// is not operation-shaped, or an operation with a malformed field.
type MethodEntryError struct {
	// Document is "old" or "new" when known
	Document string
	// Path is the path template holding the method
	Path string
	// Method is the lowercase method key
	Method string
	// Field is the offending operation field, empty when the whole entry is bad
	Field string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MethodEntryError) Error() string {
	msg := "invalid method entry"
	if e.Document != "" {
		msg += " in " + e.Document + " document"
	}
	if e.Method != "" || e.Path != "" {
		msg += fmt.Sprintf(" %s %s", e.Method, e.Path)
	}
	if e.Field != "" {
		msg += " (field " + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MethodEntryError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MethodEntryError) Is(target error) bool {
	return target == ErrInvalidMethodEntry
}

// ParseError represents a failure to read or decode a document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Format is "json" or "yaml" when known
	Format string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// WithDocument returns err with its Document side set when err is a
// DocumentError or MethodEntryError that does not name one yet.
// Other errors are returned unchanged.
func WithDocument(err error, side string) error {
	var de *DocumentError
	if errors.As(err, &de) && de.Document == "" {
		cp := *de
		cp.Document = side
		return &cp
	}
	var me *MethodEntryError
	if errors.As(err, &me) && me.Document == "" {
		cp := *me
		cp.Document = side
		return &cp
	}
	return err
}
