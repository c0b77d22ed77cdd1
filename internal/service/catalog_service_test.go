package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/testutil"
)

func TestCatalogService_CreateNormalizesCode(t *testing.T) {
	r := setupRepos(t)
	svc := NewCatalogService(r.modules, r.uow)
	ctx := context.Background()

	m := &domain.CatalogEntry{Code: " Loyalty ", Name: "Loyalty", Hours: domain.ModuleHours{Frontend: 4, Backend: 6, QA: 2}}
	require.NoError(t, svc.Create(ctx, m))

	fetched, err := svc.GetByCode(ctx, "LOYALTY")
	require.NoError(t, err)
	assert.Equal(t, "loyalty", fetched.Code)
	assert.Equal(t, 12.0, fetched.Hours.Total())
}

func TestCatalogService_Validation(t *testing.T) {
	r := setupRepos(t)
	svc := NewCatalogService(r.modules, r.uow)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry domain.CatalogEntry
	}{
		{"missing code", domain.CatalogEntry{Name: "x"}},
		{"missing name", domain.CatalogEntry{Code: "x"}},
		{"negative hours", domain.CatalogEntry{Code: "x", Name: "x", Hours: domain.ModuleHours{Backend: -1}}},
		{"nan hours", domain.CatalogEntry{Code: "x", Name: "x", Hours: domain.ModuleHours{Frontend: math.NaN()}}},
		{"infinite role hours", domain.CatalogEntry{Code: "x", Name: "x",
			RoleHours: []domain.RoleHours{{Role: domain.RolePM, Hours: math.Inf(1)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tt.entry
			err := svc.Create(ctx, &entry)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_CreateRollsBackOnRoleHoursFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	// Exec #1 inserts the module row, #2 the first role-hours row.
	uow := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 2, Err: errors.New("disk full")}
	svc := NewCatalogService(r.modules, uow)

	m := testutil.NewTestModule("loyalty",
		testutil.WithRoleHours(domain.RolePM, 3),
		testutil.WithRoleHours(domain.RoleUX, 2),
	)
	require.ErrorContains(t, svc.Create(ctx, m), "disk full")

	_, err := r.modules.GetByCode(ctx, "loyalty")
	assert.True(t, IsNotFound(err))
}

func TestCatalogService_UpdateRollsBackOnRoleHoursFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	m := testutil.NewTestModule("loyalty", testutil.WithModuleName("Loyalty"), testutil.WithRoleHours(domain.RolePM, 4))
	require.NoError(t, NewCatalogService(r.modules, r.uow).Create(ctx, m))

	// Exec #1 updates the row, #2 clears role hours, #3 inserts the new ones.
	uow := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 3, Err: errors.New("disk full")}
	svc := NewCatalogService(r.modules, uow)

	changed := *m
	changed.Name = "Bonus program"
	changed.RoleHours = []domain.RoleHours{{Role: domain.RoleUX, Hours: 6}}
	require.ErrorContains(t, svc.Update(ctx, &changed), "disk full")

	stored, err := r.modules.GetByCode(ctx, "loyalty")
	require.NoError(t, err)
	assert.Equal(t, "Loyalty", stored.Name)
	assert.Equal(t, []domain.RoleHours{{Role: domain.RolePM, Hours: 4}}, stored.RoleHours)
}

func TestCatalogService_DuplicateIsConflict(t *testing.T) {
	r := setupRepos(t)
	svc := NewCatalogService(r.modules, r.uow)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testutil.NewTestModule("auth")))
	err := svc.Create(ctx, testutil.NewTestModule("auth"))
	assert.True(t, IsConflict(err))
}

func TestProjectModuleService_AttachByCode(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	require.NoError(t, r.projects.Create(ctx, proj))
	require.NoError(t, r.modules.Create(ctx, testutil.NewTestModule("cart", testutil.WithModuleName("Cart"))))

	svc := NewProjectModuleService(r.projects, r.modules, r.projectModules)
	pm, err := svc.AttachByCode(ctx, proj.ID, "cart")
	require.NoError(t, err)
	require.NotNil(t, pm.Module)
	assert.Equal(t, "Cart", pm.DisplayName())

	_, err = svc.AttachByCode(ctx, proj.ID, "missing")
	assert.True(t, IsNotFound(err))

	_, err = svc.AttachByCode(ctx, "no-project", "cart")
	assert.True(t, IsNotFound(err))

	list, err := svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProjectModuleService_RejectsNegativeOverride(t *testing.T) {
	r := setupRepos(t)
	mod := testutil.NewTestModule("orders")
	_, pm := seedProjectModule(t, r, mod)

	svc := NewProjectModuleService(r.projects, r.modules, r.projectModules)
	pm.OverrideBackend = testutil.Float(-3)
	err := svc.Update(context.Background(), pm)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "backend")

	pm.OverrideBackend = testutil.Float(math.Inf(1))
	assert.ErrorIs(t, svc.Update(context.Background(), pm), ErrValidation)
}

func TestRateAndAssignmentServices(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj, pm := seedProjectModule(t, r, testutil.NewTestModule("auth"))

	rates := NewRateService(r.rates)
	_, err := rates.Set(ctx, domain.RoleFrontend, domain.LevelSenior, 60)
	require.NoError(t, err)
	_, err = rates.Set(ctx, domain.RoleFrontend, domain.LevelSenior, 65)
	require.NoError(t, err)
	_, err = rates.Set(ctx, domain.RoleQA, domain.LevelMiddle, -1)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = rates.Set(ctx, domain.RoleQA, domain.LevelMiddle, math.NaN())
	assert.ErrorIs(t, err, ErrValidation)

	list, err := rates.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 65.0, list[0].HourlyRate)

	assignments := NewAssignmentService(r.projectModules, r.assignments)
	a, err := assignments.Assign(ctx, pm.ID, domain.RoleFrontend, domain.LevelSenior)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, a.ProjectID)

	_, err = assignments.Assign(ctx, "missing", domain.RoleFrontend, domain.LevelSenior)
	assert.True(t, IsNotFound(err))

	require.NoError(t, assignments.Unassign(ctx, pm.ID, domain.RoleFrontend))
	got, err := assignments.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInfrastructureService_Lines(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Shop")
	require.NoError(t, r.projects.Create(ctx, proj))

	svc := NewInfrastructureService(r.projects, r.items, r.lines)
	item := &domain.InfrastructureItem{Code: "VPS", Name: "VPS", UnitCost: 1200}
	require.NoError(t, svc.CreateItem(ctx, item))
	assert.Equal(t, "vps", item.Code)

	line, err := svc.AddLine(ctx, proj.ID, item.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.SetQuantity(ctx, line.ID, 5))
	assert.ErrorIs(t, svc.SetQuantity(ctx, line.ID, -1), ErrValidation)

	_, err = svc.AddLine(ctx, proj.ID, "missing-item", 1)
	assert.True(t, IsNotFound(err))

	lines, err := svc.ListLines(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)

	require.NoError(t, svc.RemoveLine(ctx, line.ID))
	assert.True(t, IsNotFound(svc.RemoveLine(ctx, line.ID)))
}
