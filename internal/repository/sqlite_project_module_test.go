package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/testutil"
)

func TestProjectModuleRepo_CreateJoinsCatalog(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	mod := testutil.NewTestModule("catalog",
		testutil.WithModuleName("Catalog"),
		testutil.WithHours(12, 14, 4),
		testutil.WithRoleHours(domain.RolePM, 3),
	)
	require.NoError(t, NewSQLiteCatalogRepo(db).Create(ctx, mod))

	repo := NewSQLiteProjectModuleRepo(db)
	pm := testutil.NewTestProjectModule(proj.ID, mod.ID,
		testutil.WithOverrides(testutil.Float(20), nil, testutil.Float(0)),
		testutil.WithModuleLevels(testutil.Str("unknown"), nil),
		testutil.WithModuleLegacy(false),
	)
	require.NoError(t, repo.Create(ctx, pm))

	fetched, err := repo.GetByID(ctx, pm.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Module)
	assert.Equal(t, "Catalog", fetched.DisplayName())
	assert.Equal(t, 12.0, fetched.Module.Hours.Frontend)
	assert.Equal(t, []domain.RoleHours{{Role: domain.RolePM, Hours: 3}}, fetched.Module.RoleHours)

	require.NotNil(t, fetched.OverrideFrontend)
	assert.Equal(t, 20.0, *fetched.OverrideFrontend)
	assert.Nil(t, fetched.OverrideBackend)
	require.NotNil(t, fetched.OverrideQA, "zero override must survive the round trip")
	assert.Equal(t, 0.0, *fetched.OverrideQA)

	require.NotNil(t, fetched.UncertaintyLevel)
	assert.Equal(t, "unknown", *fetched.UncertaintyLevel)
	assert.Nil(t, fetched.UIUXLevel)
	require.NotNil(t, fetched.LegacyCode)
	assert.False(t, *fetched.LegacyCode)
}

func TestProjectModuleRepo_ListByProjectOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	other := testutil.NewTestProject("Other")
	projects := NewSQLiteProjectRepo(db)
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, projects.Create(ctx, other))

	catalog := NewSQLiteCatalogRepo(db)
	repo := NewSQLiteProjectModuleRepo(db)
	for _, code := range []string{"orders", "cart", "auth"} {
		m := testutil.NewTestModule(code)
		require.NoError(t, catalog.Create(ctx, m))
		require.NoError(t, repo.Create(ctx, testutil.NewTestProjectModule(proj.ID, m.ID)))
	}
	extra := testutil.NewTestModule("chat")
	require.NoError(t, catalog.Create(ctx, extra))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProjectModule(other.ID, extra.ID)))

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "orders", list[0].Module.Code)
	assert.Equal(t, "cart", list[1].Module.Code)
	assert.Equal(t, "auth", list[2].Module.Code)
}

func TestProjectModuleRepo_DuplicateAttach(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	mod := testutil.NewTestModule("geo")
	require.NoError(t, NewSQLiteCatalogRepo(db).Create(ctx, mod))

	repo := NewSQLiteProjectModuleRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestProjectModule(proj.ID, mod.ID)))
	err := repo.Create(ctx, testutil.NewTestProjectModule(proj.ID, mod.ID))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProjectModuleRepo_UpdateClearsOverride(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	mod := testutil.NewTestModule("search")
	require.NoError(t, NewSQLiteCatalogRepo(db).Create(ctx, mod))

	repo := NewSQLiteProjectModuleRepo(db)
	pm := testutil.NewTestProjectModule(proj.ID, mod.ID,
		testutil.WithOverrides(nil, testutil.Float(30), nil),
		testutil.WithCustomName("Smart search"),
	)
	require.NoError(t, repo.Create(ctx, pm))

	pm.OverrideBackend = nil
	pm.CustomName = ""
	require.NoError(t, repo.Update(ctx, pm))

	fetched, err := repo.GetByID(ctx, pm.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.OverrideBackend)
	assert.Equal(t, "search module", fetched.DisplayName())
}

func TestProjectModuleRepo_DeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectModuleRepo(db)

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
