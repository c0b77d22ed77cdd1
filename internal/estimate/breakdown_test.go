package estimate

import (
	"testing"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkRows_FixedRolesThenExtraRoles(t *testing.T) {
	cfg := DefaultConfig()
	pm := moduleWithHours("pm-1", domain.ModuleHours{Frontend: 10, Backend: 20, QA: 5})
	pm.CustomName = "Storefront"
	pm.Module.RoleHours = []domain.RoleHours{
		{Role: domain.RolePM, Hours: 4},
		{Role: domain.RoleUX, Hours: 0},
	}

	rows := BuildWorkRows(cfg, Input{
		Project: neutralProject(),
		Modules: []domain.ProjectModule{pm},
		Rates: NewRateTable([]domain.Rate{
			{Role: domain.RoleBackend, Level: domain.LevelSenior, HourlyRate: 50},
			{Role: domain.RolePM, Level: domain.LevelMiddle, HourlyRate: 30},
		}),
	})

	require.Len(t, rows, 4)
	assert.Equal(t, "Storefront", rows[0].ModuleName)
	assert.Equal(t, domain.RoleFrontend, rows[0].Role)
	assert.Equal(t, domain.LevelMiddle, rows[0].Level)
	assert.Equal(t, 0.0, rows[0].Cost)

	assert.Equal(t, domain.RoleBackend, rows[1].Role)
	assert.Equal(t, domain.LevelSenior, rows[1].Level)
	assert.InDelta(t, 1000.0, rows[1].Cost, 1e-9)

	assert.Equal(t, domain.RolePM, rows[3].Role)
	assert.InDelta(t, 120.0, rows[3].Cost, 1e-9)
}

func TestBuildInfraRows_MissingItem(t *testing.T) {
	rows := BuildInfraRows([]domain.InfrastructureLine{
		{Quantity: 2, Item: &domain.InfrastructureItem{Name: "CDN", UnitCost: 15}},
		{Quantity: 4},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, InfraRow{Name: "CDN", Quantity: 2, UnitCost: 15, TotalCost: 30}, rows[0])
	assert.Equal(t, InfraRow{Name: "Infrastructure", Quantity: 4}, rows[1])
}
