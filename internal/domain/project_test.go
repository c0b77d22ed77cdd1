package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_Validate(t *testing.T) {
	p := &Project{Name: "Shop", UncertaintyLevel: "known", UIUXLevel: "mvp"}
	assert.NoError(t, p.Validate())

	p.Name = ""
	assert.ErrorContains(t, p.Validate(), "name is required")

	p = &Project{Name: "Shop", UIUXLevel: "mvp"}
	assert.ErrorContains(t, p.Validate(), "uncertainty level")
}

func TestProjectModule_DisplayName(t *testing.T) {
	pm := &ProjectModule{Module: &CatalogEntry{Name: "Catalog"}}
	assert.Equal(t, "Catalog", pm.DisplayName())

	pm.CustomName = "Product catalog"
	assert.Equal(t, "Product catalog", pm.DisplayName())

	assert.Equal(t, "", (&ProjectModule{}).DisplayName())
}

func TestModuleHours_TotalAndForRole(t *testing.T) {
	h := ModuleHours{Frontend: 6, Backend: 10, QA: 3}
	assert.Equal(t, 19.0, h.Total())
	assert.Equal(t, 10.0, h.ForRole(RoleBackend))
	assert.Equal(t, 0.0, h.ForRole(RolePM))
}

func TestCoalesceHelpers(t *testing.T) {
	empty := ""
	val := "award"
	assert.Equal(t, "mvp", StrFromPtrWithDefault("mvp", nil, &empty))
	assert.Equal(t, "award", StrFromPtrWithDefault("mvp", &val))

	yes := true
	assert.True(t, BoolFromPtrWithDefault(false, nil, &yes))
	assert.False(t, BoolFromPtrWithDefault(false))

	f := 4.5
	assert.Equal(t, 4.5, Float64FromPtrWithDefault(1, nil, &f))
	assert.Equal(t, 1.0, Float64FromPtrWithDefault(1, nil))
}

func TestCatalogEntry_Validate(t *testing.T) {
	m := &CatalogEntry{Code: "auth", Name: "Auth", Hours: ModuleHours{Frontend: 8, Backend: 10, QA: 3}}
	assert.NoError(t, m.Validate())

	m.Hours.QA = -1
	assert.ErrorContains(t, m.Validate(), "non-negative")

	m.Hours.QA = 3
	m.RoleHours = []RoleHours{{Role: RolePM, Hours: -2}}
	assert.ErrorContains(t, m.Validate(), "pm")

	assert.ErrorContains(t, (&CatalogEntry{Name: "x"}).Validate(), "code is required")
}

func TestModuleHours_ValidateRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name    string
		hours   ModuleHours
		wantErr bool
	}{
		{"zero", ModuleHours{}, false},
		{"positive", ModuleHours{Frontend: 6, Backend: 10, QA: 3}, false},
		{"negative", ModuleHours{Backend: -1}, true},
		{"nan", ModuleHours{Frontend: math.NaN()}, true},
		{"positive inf", ModuleHours{QA: math.Inf(1)}, true},
		{"negative inf", ModuleHours{Backend: math.Inf(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hours.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogEntry_ValidateRejectsNonFiniteRoleHours(t *testing.T) {
	m := &CatalogEntry{Code: "x", Name: "X", RoleHours: []RoleHours{{Role: RolePM, Hours: math.NaN()}}}
	assert.ErrorContains(t, m.Validate(), "role pm hours")

	m.RoleHours[0].Hours = math.Inf(1)
	assert.Error(t, m.Validate())

	m.RoleHours[0].Hours = 4
	assert.NoError(t, m.Validate())
}
