package domain

import (
	"fmt"
	"math"
)

// ModuleHours is the base effort for one unit of work, split by fixed role.
type ModuleHours struct {
	Frontend float64
	Backend  float64
	QA       float64
}

// Total returns frontend + backend + qa.
func (h ModuleHours) Total() float64 {
	return h.Frontend + h.Backend + h.QA
}

// ForRole returns the hours for one of the fixed roles, or 0 for any other role.
func (h ModuleHours) ForRole(role Role) float64 {
	switch role {
	case RoleFrontend:
		return h.Frontend
	case RoleBackend:
		return h.Backend
	case RoleQA:
		return h.QA
	default:
		return 0
	}
}

// RoleHours is open-ended extra effort for a role beyond the fixed three.
type RoleHours struct {
	Role  Role
	Hours float64
}

// Validate rejects negative or non-finite components.
func (h ModuleHours) Validate() error {
	if !NonNegative(h.Frontend) || !NonNegative(h.Backend) || !NonNegative(h.QA) {
		return fmt.Errorf("hours must be finite and non-negative")
	}
	return nil
}

// NonNegative reports whether v is a finite number >= 0. NaN and ±Inf fail.
func NonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
