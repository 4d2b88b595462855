package domain

import (
	"strings"
	"unicode"
)

// ValidationError carries field-keyed validation messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate enforces the registration password rules: confirmation match,
// minimum length 8, at least one digit, at least one letter.
func (r *RegisterRequest) Validate() *ValidationError {
	fields := make(map[string]string)

	if r.Password != r.Password2 {
		fields["password"] = "Passwords do not match"
	} else if len(r.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters long"
	} else {
		hasDigit := false
		hasLetter := false
		for _, ch := range r.Password {
			if unicode.IsDigit(ch) {
				hasDigit = true
			}
			if unicode.IsLetter(ch) {
				hasLetter = true
			}
		}
		if !hasDigit {
			fields["password"] = "Password must contain at least one digit"
		} else if !hasLetter {
			fields["password"] = "Password must contain at least one letter"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
