package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithLegacyCode() ProjectOption {
	return func(p *domain.Project) {
		p.LegacyCode = true
	}
}

func WithProjectLevels(uncertainty, uiux string) ProjectOption {
	return func(p *domain.Project) {
		p.UncertaintyLevel = uncertainty
		p.UIUXLevel = uiux
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:               uuid.New().String(),
		Name:             name,
		UncertaintyLevel: domain.DefaultUncertaintyLevel,
		UIUXLevel:        domain.DefaultUIUXLevel,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalog module options
type ModuleOption func(*domain.CatalogEntry)

func WithHours(frontend, backend, qa float64) ModuleOption {
	return func(m *domain.CatalogEntry) {
		m.Hours = domain.ModuleHours{Frontend: frontend, Backend: backend, QA: qa}
	}
}

func WithRoleHours(role domain.Role, hours float64) ModuleOption {
	return func(m *domain.CatalogEntry) {
		m.RoleHours = append(m.RoleHours, domain.RoleHours{Role: role, Hours: hours})
	}
}

func WithDescription(d string) ModuleOption {
	return func(m *domain.CatalogEntry) {
		m.Description = d
	}
}

func WithModuleName(name string) ModuleOption {
	return func(m *domain.CatalogEntry) {
		m.Name = name
	}
}

func NewTestModule(code string, opts ...ModuleOption) *domain.CatalogEntry {
	m := &domain.CatalogEntry{
		ID:    uuid.New().String(),
		Code:  code,
		Name:  code + " module",
		Hours: domain.ModuleHours{Frontend: 8, Backend: 10, QA: 3},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Project module options
type ProjectModuleOption func(*domain.ProjectModule)

func WithOverrides(frontend, backend, qa *float64) ProjectModuleOption {
	return func(pm *domain.ProjectModule) {
		pm.OverrideFrontend = frontend
		pm.OverrideBackend = backend
		pm.OverrideQA = qa
	}
}

func WithModuleLevels(uncertainty, uiux *string) ProjectModuleOption {
	return func(pm *domain.ProjectModule) {
		pm.UncertaintyLevel = uncertainty
		pm.UIUXLevel = uiux
	}
}

func WithModuleLegacy(legacy bool) ProjectModuleOption {
	return func(pm *domain.ProjectModule) {
		pm.LegacyCode = &legacy
	}
}

func WithCustomName(name string) ProjectModuleOption {
	return func(pm *domain.ProjectModule) {
		pm.CustomName = name
	}
}

func NewTestProjectModule(projectID, moduleID string, opts ...ProjectModuleOption) *domain.ProjectModule {
	pm := &domain.ProjectModule{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		ModuleID:  moduleID,
	}
	for _, opt := range opts {
		opt(pm)
	}
	return pm
}

func NewTestRate(role domain.Role, level domain.Level, hourly float64) *domain.Rate {
	return &domain.Rate{
		ID:         uuid.New().String(),
		Role:       role,
		Level:      level,
		HourlyRate: hourly,
	}
}

func NewTestInfrastructureItem(code string, unitCost float64) *domain.InfrastructureItem {
	return &domain.InfrastructureItem{
		ID:       uuid.New().String(),
		Code:     code,
		Name:     code + " item",
		UnitCost: unitCost,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Str returns a pointer to v.
func Str(v string) *string {
	return &v
}
