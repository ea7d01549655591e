package form

import (
	"fmt"
	"regexp"
)

// Validator is an interface for form field validation.
type Validator interface {
	// Validate checks if the value is valid.
	// Returns nil if valid, or an error with a message if invalid.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Required validates that the value is non-empty. Whitespace counts as
// content.
func Required(msg string) Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MaxLength validates that a string has at most n characters.
func MaxLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if len([]rune(value)) > n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// emailPattern requires one @ and a dot in the domain part, with no
// whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email validates that the value is a valid email address.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Invalid email address"
	}
	return matcher(emailPattern, msg)
}

func matcher(re *regexp.Regexp, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}
