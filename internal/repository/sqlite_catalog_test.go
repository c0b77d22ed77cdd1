package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/testutil"
)

func TestCatalogRepo_CreateAndGetByCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	m := testutil.NewTestModule("payments",
		testutil.WithHours(6, 12, 3),
		testutil.WithDescription("Acquiring, invoices, webhooks"),
		testutil.WithRoleHours(domain.RolePM, 4),
		testutil.WithRoleHours(domain.RoleUX, 2),
	)
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByCode(ctx, "payments")
	require.NoError(t, err)
	assert.Equal(t, m.ID, fetched.ID)
	assert.Equal(t, domain.ModuleHours{Frontend: 6, Backend: 12, QA: 3}, fetched.Hours)
	assert.Equal(t, "Acquiring, invoices, webhooks", fetched.Description)
	assert.Equal(t, []domain.RoleHours{
		{Role: domain.RolePM, Hours: 4},
		{Role: domain.RoleUX, Hours: 2},
	}, fetched.RoleHours)
}

func TestCatalogRepo_DuplicateCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestModule("auth")))
	err := repo.Create(ctx, testutil.NewTestModule("auth"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCatalogRepo_ListKeepsInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	for _, code := range []string{"search", "auth", "core"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestModule(code)))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "search", entries[0].Code)
	assert.Equal(t, "auth", entries[1].Code)
	assert.Equal(t, "core", entries[2].Code)
}

func TestCatalogRepo_UpdateReplacesRoleHours(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	m := testutil.NewTestModule("admin", testutil.WithRoleHours(domain.RolePM, 5))
	require.NoError(t, repo.Create(ctx, m))

	m.Hours = domain.ModuleHours{Frontend: 14, Backend: 16, QA: 5}
	m.RoleHours = []domain.RoleHours{{Role: domain.RoleUX, Hours: 3}}
	require.NoError(t, repo.Update(ctx, m))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, fetched.Hours.Total())
	assert.Equal(t, []domain.RoleHours{{Role: domain.RoleUX, Hours: 3}}, fetched.RoleHours)
}

func TestCatalogRepo_GetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)

	_, err := repo.GetByCode(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	m := testutil.NewTestModule("cms", testutil.WithRoleHours(domain.RolePM, 1))
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Delete(ctx, m.ID))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
}

func TestCatalogRepo_DeleteAttachedModuleConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	catalog := NewSQLiteCatalogRepo(db)

	m := testutil.NewTestModule("orders")
	require.NoError(t, catalog.Create(ctx, m))
	p := testutil.NewTestProject("Shop")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, p))
	require.NoError(t, NewSQLiteProjectModuleRepo(db).Create(ctx, testutil.NewTestProjectModule(p.ID, m.ID)))

	assert.ErrorIs(t, catalog.Delete(ctx, m.ID), ErrConflict)

	_, err := catalog.GetByCode(ctx, "orders")
	assert.NoError(t, err)
}
