package service

import (
	"errors"

	"github.com/alexanderramin/estimator/internal/repository"
)

// ErrValidation marks input the caller must fix. Wrapped errors carry the
// specific reason.
var ErrValidation = errors.New("validation failed")

// IsNotFound reports whether err came from a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// IsConflict reports whether err came from a uniqueness violation or a
// delete blocked by a referencing row.
func IsConflict(err error) bool {
	return errors.Is(err, repository.ErrConflict)
}
