package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryContent Category = "content"
	CategoryServer  Category = "server"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// FolioError is a structured error with a code, an offending key,
// suggestions and documentation.
type FolioError struct {
	// Code is a unique error identifier (e.g., "F101").
	Code string

	// Category is the error type (config, content, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Key is the configuration key or content path the error refers to.
	Key string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FolioError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Key)
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FolioError) Unwrap() error {
	return e.Wrapped
}

// WithKey records the config key or content path the error is about.
func (e *FolioError) WithKey(key string) *FolioError {
	e.Key = key
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FolioError) WithSuggestion(s string) *FolioError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *FolioError) WithDetail(d string) *FolioError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *FolioError) Wrap(err error) *FolioError {
	e.Wrapped = err
	return e
}

// New creates a FolioError from a registered error code.
func New(code string) *FolioError {
	template, ok := registry[code]
	if !ok {
		return &FolioError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FolioError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new FolioError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FolioError {
	return &FolioError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FolioError.
// An error that already is (or wraps) a FolioError is returned as is.
func FromError(err error, code string) *FolioError {
	if err == nil {
		return nil
	}
	var fe *FolioError
	if stderrors.As(err, &fe) {
		return fe
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is a FolioError with the given code.
func HasCode(err error, code string) bool {
	var fe *FolioError
	if stderrors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
