package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// GORM v1.25+ wraps some of these as gorm.ErrDuplicatedKey; older driver
// paths surface database-specific message text.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || // postgres
		strings.Contains(s, "UNIQUE constraint") || // sqlite
		strings.Contains(s, "Duplicate entry") // mysql
}

// isNotFound checks if the error is a "record not found" error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
