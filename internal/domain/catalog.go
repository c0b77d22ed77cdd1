package domain

import (
	"fmt"
	"time"
)

// CatalogEntry is a reusable estimation module. Entries are reference data:
// the estimation engine reads them and never mutates them.
type CatalogEntry struct {
	ID          string
	Code        string
	Name        string
	Description string
	Hours       ModuleHours
	RoleHours   []RoleHours
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InfrastructureItem is a priced catalog item (hosting, licences, ...).
type InfrastructureItem struct {
	ID          string
	Code        string
	Name        string
	Description string
	UnitCost    float64
}

// CatalogByCode indexes entries by code. Later duplicates win.
func CatalogByCode(entries []CatalogEntry) map[string]CatalogEntry {
	out := make(map[string]CatalogEntry, len(entries))
	for _, e := range entries {
		out[e.Code] = e
	}
	return out
}

// Validate checks the fields a catalog entry needs before it can be stored.
func (m *CatalogEntry) Validate() error {
	if m.Code == "" {
		return fmt.Errorf("module code is required")
	}
	if m.Name == "" {
		return fmt.Errorf("module name is required")
	}
	if err := m.Hours.Validate(); err != nil {
		return err
	}
	for _, rh := range m.RoleHours {
		if rh.Role == "" {
			return fmt.Errorf("role hours need a role")
		}
		if !NonNegative(rh.Hours) {
			return fmt.Errorf("role %s hours must be finite and non-negative", rh.Role)
		}
	}
	return nil
}
