package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (id, project_id, project_module_id, role, level) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_module_id, role) DO UPDATE SET level = excluded.level
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.ProjectID, a.ProjectModuleID, string(a.Role), string(a.Level),
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("upserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, project_module_id, role, level FROM assignments
		 WHERE project_id = ? ORDER BY project_module_id, role`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var role, level string
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.ProjectModuleID, &role, &level); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.Role = domain.Role(role)
		a.Level = domain.Level(level)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, projectModuleID string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assignments WHERE project_module_id = ? AND role = ?`, projectModuleID, string(role))
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return requireAffected(res, "assignment")
}
