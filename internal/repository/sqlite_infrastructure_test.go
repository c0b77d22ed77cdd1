package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/testutil"
)

func TestInfrastructureRepo_LinesJoinItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	items := NewSQLiteInfrastructureItemRepo(db)
	vps := testutil.NewTestInfrastructureItem("vps", 1200)
	require.NoError(t, items.Create(ctx, vps))
	assert.ErrorIs(t, items.Create(ctx, testutil.NewTestInfrastructureItem("vps", 1)), ErrConflict)

	lines := NewSQLiteProjectInfrastructureRepo(db)
	line := &domain.InfrastructureLine{ID: uuid.New().String(), ProjectID: proj.ID, InfrastructureItemID: vps.ID, Quantity: 2}
	require.NoError(t, lines.Create(ctx, line))
	require.NoError(t, lines.UpdateQuantity(ctx, line.ID, 3))

	list, err := lines.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Quantity)
	require.NotNil(t, list[0].Item)
	assert.Equal(t, "vps", list[0].Item.Code)
	assert.Equal(t, 1200.0, list[0].Item.UnitCost)
}

func TestInfrastructureRepo_DeletedItemLeavesDanglingLine(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Shop")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	items := NewSQLiteInfrastructureItemRepo(db)
	cdn := testutil.NewTestInfrastructureItem("cdn", 300)
	require.NoError(t, items.Create(ctx, cdn))

	lines := NewSQLiteProjectInfrastructureRepo(db)
	require.NoError(t, lines.Create(ctx, &domain.InfrastructureLine{
		ID: uuid.New().String(), ProjectID: proj.ID, InfrastructureItemID: cdn.ID, Quantity: 1,
	}))
	require.NoError(t, items.Delete(ctx, cdn.ID))

	list, err := lines.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Item)
	assert.Empty(t, list[0].InfrastructureItemID)
}

func TestInfrastructureRepo_MissingLine(t *testing.T) {
	db := testutil.NewTestDB(t)
	lines := NewSQLiteProjectInfrastructureRepo(db)
	ctx := context.Background()

	assert.ErrorIs(t, lines.UpdateQuantity(ctx, "missing", 1), ErrNotFound)
	assert.ErrorIs(t, lines.Delete(ctx, "missing"), ErrNotFound)
}
