package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is wrapped with the entity name, e.g. "project: not found".
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a violated uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// isUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY
// constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err came from a RESTRICT foreign key.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
