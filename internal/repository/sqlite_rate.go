package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteRateRepo implements RateRepo using a SQLite database.
type SQLiteRateRepo struct {
	db db.DBTX
}

func NewSQLiteRateRepo(conn db.DBTX) *SQLiteRateRepo {
	return &SQLiteRateRepo{db: conn}
}

// Upsert keeps the existing row id when the pair is already priced and
// writes the stored id back into r.
func (r *SQLiteRateRepo) Upsert(ctx context.Context, rate *domain.Rate) error {
	query := `INSERT INTO rates (id, role, level, hourly_rate) VALUES (?, ?, ?, ?)
		ON CONFLICT(role, level) DO UPDATE SET hourly_rate = excluded.hourly_rate
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		rate.ID, string(rate.Role), string(rate.Level), rate.HourlyRate,
	).Scan(&rate.ID)
	if err != nil {
		return fmt.Errorf("upserting rate: %w", err)
	}
	return nil
}

func (r *SQLiteRateRepo) List(ctx context.Context) ([]domain.Rate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, role, level, hourly_rate FROM rates ORDER BY role, level`)
	if err != nil {
		return nil, fmt.Errorf("listing rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.Rate
	for rows.Next() {
		var rate domain.Rate
		var role, level string
		if err := rows.Scan(&rate.ID, &role, &level, &rate.HourlyRate); err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}
		rate.Role = domain.Role(role)
		rate.Level = domain.Level(level)
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rates: %w", err)
	}
	return rates, nil
}

func (r *SQLiteRateRepo) Delete(ctx context.Context, role domain.Role, level domain.Level) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rates WHERE role = ? AND level = ?`, string(role), string(level))
	if err != nil {
		return fmt.Errorf("deleting rate: %w", err)
	}
	return requireAffected(res, "rate")
}
