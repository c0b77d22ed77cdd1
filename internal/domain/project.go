package domain

import (
	"fmt"
	"time"
)

// Project holds project-wide coefficient defaults.
type Project struct {
	ID               string
	Name             string
	Description      string
	UncertaintyLevel string
	UIUXLevel        string
	LegacyCode       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the fields a project needs before it can be stored.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.UncertaintyLevel == "" {
		return fmt.Errorf("uncertainty level is required")
	}
	if p.UIUXLevel == "" {
		return fmt.Errorf("uiux level is required")
	}
	return nil
}

// ProjectModule is a catalog module attached to a project. Nil overrides
// inherit the catalog value or the project default.
type ProjectModule struct {
	ID               string
	ProjectID        string
	ModuleID         string
	CustomName       string
	OverrideFrontend *float64
	OverrideBackend  *float64
	OverrideQA       *float64
	UncertaintyLevel *string
	UIUXLevel        *string
	LegacyCode       *bool

	// Module is the joined catalog entry; populated by repositories that load
	// project modules for estimation.
	Module *CatalogEntry
}

// DisplayName returns the custom name when set, otherwise the catalog name.
func (pm *ProjectModule) DisplayName() string {
	if pm.Module != nil {
		return CoalesceStr(pm.CustomName, pm.Module.Name)
	}
	return pm.CustomName
}

// Rate is the hourly cost of one (role, level) pair.
type Rate struct {
	ID         string
	Role       Role
	Level      Level
	HourlyRate float64
}

// Assignment selects the level staffing one role of a project module.
type Assignment struct {
	ID              string
	ProjectID       string
	ProjectModuleID string
	Role            Role
	Level           Level
}

// InfrastructureLine is a quantity of an infrastructure item attached to a
// project. Item is nil when the catalog reference is missing.
type InfrastructureLine struct {
	ID                   string
	ProjectID            string
	InfrastructureItemID string
	Quantity             int
	Item                 *InfrastructureItem
}
