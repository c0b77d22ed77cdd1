package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteInfrastructureItemRepo implements InfrastructureItemRepo.
type SQLiteInfrastructureItemRepo struct {
	db db.DBTX
}

func NewSQLiteInfrastructureItemRepo(conn db.DBTX) *SQLiteInfrastructureItemRepo {
	return &SQLiteInfrastructureItemRepo{db: conn}
}

func (r *SQLiteInfrastructureItemRepo) Create(ctx context.Context, item *domain.InfrastructureItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO infrastructure_items (id, code, name, description, unit_cost) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Code, item.Name, item.Description, item.UnitCost)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("infrastructure item %q: %w", item.Code, ErrConflict)
		}
		return fmt.Errorf("inserting infrastructure item: %w", err)
	}
	return nil
}

func (r *SQLiteInfrastructureItemRepo) GetByID(ctx context.Context, id string) (*domain.InfrastructureItem, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLiteInfrastructureItemRepo) GetByCode(ctx context.Context, code string) (*domain.InfrastructureItem, error) {
	return r.getOne(ctx, `WHERE code = ?`, code)
}

func (r *SQLiteInfrastructureItemRepo) getOne(ctx context.Context, where, arg string) (*domain.InfrastructureItem, error) {
	var item domain.InfrastructureItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, name, description, unit_cost FROM infrastructure_items `+where, arg,
	).Scan(&item.ID, &item.Code, &item.Name, &item.Description, &item.UnitCost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("infrastructure item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning infrastructure item: %w", err)
	}
	return &item, nil
}

func (r *SQLiteInfrastructureItemRepo) List(ctx context.Context) ([]domain.InfrastructureItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, name, description, unit_cost FROM infrastructure_items ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing infrastructure items: %w", err)
	}
	defer rows.Close()

	var items []domain.InfrastructureItem
	for rows.Next() {
		var item domain.InfrastructureItem
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.Description, &item.UnitCost); err != nil {
			return nil, fmt.Errorf("scanning infrastructure item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating infrastructure items: %w", err)
	}
	return items, nil
}

func (r *SQLiteInfrastructureItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM infrastructure_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting infrastructure item: %w", err)
	}
	return requireAffected(res, "infrastructure item")
}

// SQLiteProjectInfrastructureRepo implements ProjectInfrastructureRepo.
type SQLiteProjectInfrastructureRepo struct {
	db db.DBTX
}

func NewSQLiteProjectInfrastructureRepo(conn db.DBTX) *SQLiteProjectInfrastructureRepo {
	return &SQLiteProjectInfrastructureRepo{db: conn}
}

func (r *SQLiteProjectInfrastructureRepo) Create(ctx context.Context, line *domain.InfrastructureLine) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_infrastructure (id, project_id, infrastructure_item_id, quantity) VALUES (?, ?, ?, ?)`,
		line.ID, line.ProjectID, nullIfEmpty(line.InfrastructureItemID), line.Quantity)
	if err != nil {
		return fmt.Errorf("inserting infrastructure line: %w", err)
	}
	return nil
}

func (r *SQLiteProjectInfrastructureRepo) ListByProject(ctx context.Context, projectID string) ([]domain.InfrastructureLine, error) {
	query := `SELECT pi.id, pi.project_id, pi.infrastructure_item_id, pi.quantity,
			i.id, i.code, i.name, i.description, i.unit_cost
		FROM project_infrastructure pi
		LEFT JOIN infrastructure_items i ON i.id = pi.infrastructure_item_id
		WHERE pi.project_id = ?
		ORDER BY pi.rowid`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing infrastructure lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.InfrastructureLine
	for rows.Next() {
		var line domain.InfrastructureLine
		var itemRef, itemID, code, name, description sql.NullString
		var unitCost sql.NullFloat64
		err := rows.Scan(&line.ID, &line.ProjectID, &itemRef, &line.Quantity,
			&itemID, &code, &name, &description, &unitCost)
		if err != nil {
			return nil, fmt.Errorf("scanning infrastructure line: %w", err)
		}
		line.InfrastructureItemID = itemRef.String
		if itemID.Valid {
			line.Item = &domain.InfrastructureItem{
				ID:          itemID.String,
				Code:        code.String,
				Name:        name.String,
				Description: description.String,
				UnitCost:    unitCost.Float64,
			}
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating infrastructure lines: %w", err)
	}
	return lines, nil
}

func (r *SQLiteProjectInfrastructureRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE project_infrastructure SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("updating infrastructure line: %w", err)
	}
	return requireAffected(res, "infrastructure line")
}

func (r *SQLiteProjectInfrastructureRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_infrastructure WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting infrastructure line: %w", err)
	}
	return requireAffected(res, "infrastructure line")
}
