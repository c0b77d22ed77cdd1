package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/db"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertRate(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO rates (id, role, level, hourly_rate) VALUES (?, 'frontend', ?, 50)`, id, id)
	return err
}

func rateExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM rates WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertRate(ctx, tx, "r1")
	})
	require.NoError(t, err)

	assert.True(t, rateExists(t, database, "r1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertRate(ctx, tx, "r2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.False(t, rateExists(t, database, "r2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertRate(ctx, tx, "r3")
			panic("boom")
		})
	})

	assert.False(t, rateExists(t, database, "r3"))
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertRate(ctx, tx, "r4"); err != nil {
			return err
		}
		// same (role, level) pair violates UNIQUE
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rates (id, role, level, hourly_rate) VALUES ('r5', 'frontend', 'r4', 60)`)
		return err
	})
	require.Error(t, err)

	assert.False(t, rateExists(t, database, "r4"))
}
