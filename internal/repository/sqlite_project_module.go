package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteProjectModuleRepo implements ProjectModuleRepo using a SQLite database.
type SQLiteProjectModuleRepo struct {
	db db.DBTX
}

// NewSQLiteProjectModuleRepo creates a new SQLiteProjectModuleRepo.
func NewSQLiteProjectModuleRepo(conn db.DBTX) *SQLiteProjectModuleRepo {
	return &SQLiteProjectModuleRepo{db: conn}
}

const projectModuleSelect = `SELECT pm.id, pm.project_id, pm.module_id, pm.custom_name,
		pm.override_frontend, pm.override_backend, pm.override_qa,
		pm.uncertainty_level, pm.uiux_level, pm.legacy_code,
		m.id, m.code, m.name, m.description, m.hours_frontend, m.hours_backend, m.hours_qa,
		m.created_at, m.updated_at
	FROM project_modules pm
	JOIN modules m ON m.id = pm.module_id`

// Create attaches a module to a project, appended after existing ones.
func (r *SQLiteProjectModuleRepo) Create(ctx context.Context, pm *domain.ProjectModule) error {
	query := `INSERT INTO project_modules (id, project_id, module_id, custom_name,
			override_frontend, override_backend, override_qa,
			uncertainty_level, uiux_level, legacy_code, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM project_modules WHERE project_id = ?), ?)`
	_, err := r.db.ExecContext(ctx, query,
		pm.ID,
		pm.ProjectID,
		pm.ModuleID,
		pm.CustomName,
		nullableFloat(pm.OverrideFrontend),
		nullableFloat(pm.OverrideBackend),
		nullableFloat(pm.OverrideQA),
		nullableString(pm.UncertaintyLevel),
		nullableString(pm.UIUXLevel),
		nullableBool(pm.LegacyCode),
		pm.ProjectID,
		formatTime(nowUTC()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project module: %w", ErrConflict)
		}
		return fmt.Errorf("inserting project module: %w", err)
	}
	return nil
}

func (r *SQLiteProjectModuleRepo) GetByID(ctx context.Context, id string) (*domain.ProjectModule, error) {
	pm, err := scanProjectModule(r.db.QueryRowContext(ctx, projectModuleSelect+` WHERE pm.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project module: %w", ErrNotFound)
		}
		return nil, err
	}
	roleHours, err := loadRoleHours(ctx, r.db,
		`SELECT module_id, role, hours FROM module_role_hours WHERE module_id = ? ORDER BY role`, pm.ModuleID)
	if err != nil {
		return nil, err
	}
	pm.Module.RoleHours = roleHours[pm.ModuleID]
	return pm, nil
}

// ListByProject returns the project's modules in attachment order, each
// with its catalog entry and extra role hours.
func (r *SQLiteProjectModuleRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectModule, error) {
	rows, err := r.db.QueryContext(ctx, projectModuleSelect+` WHERE pm.project_id = ? ORDER BY pm.position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project modules: %w", err)
	}
	defer rows.Close()

	var modules []domain.ProjectModule
	for rows.Next() {
		pm, err := scanProjectModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, *pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project modules: %w", err)
	}

	roleHours, err := loadRoleHours(ctx, r.db,
		`SELECT module_id, role, hours FROM module_role_hours
		 WHERE module_id IN (SELECT module_id FROM project_modules WHERE project_id = ?)
		 ORDER BY module_id, role`, projectID)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		modules[i].Module.RoleHours = roleHours[modules[i].ModuleID]
	}
	return modules, nil
}

// Update rewrites custom name, overrides and per-module coefficient levels.
func (r *SQLiteProjectModuleRepo) Update(ctx context.Context, pm *domain.ProjectModule) error {
	query := `UPDATE project_modules SET custom_name = ?,
		override_frontend = ?, override_backend = ?, override_qa = ?,
		uncertainty_level = ?, uiux_level = ?, legacy_code = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		pm.CustomName,
		nullableFloat(pm.OverrideFrontend),
		nullableFloat(pm.OverrideBackend),
		nullableFloat(pm.OverrideQA),
		nullableString(pm.UncertaintyLevel),
		nullableString(pm.UIUXLevel),
		nullableBool(pm.LegacyCode),
		pm.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project module: %w", err)
	}
	return requireAffected(res, "project module")
}

func (r *SQLiteProjectModuleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_modules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project module: %w", err)
	}
	return requireAffected(res, "project module")
}

func scanProjectModule(s rowScanner) (*domain.ProjectModule, error) {
	var pm domain.ProjectModule
	var m domain.CatalogEntry
	var overrideF, overrideB, overrideQ sql.NullFloat64
	var uncertainty, uiux sql.NullString
	var legacy sql.NullInt64
	var createdAt, updatedAt string

	err := s.Scan(
		&pm.ID, &pm.ProjectID, &pm.ModuleID, &pm.CustomName,
		&overrideF, &overrideB, &overrideQ,
		&uncertainty, &uiux, &legacy,
		&m.ID, &m.Code, &m.Name, &m.Description,
		&m.Hours.Frontend, &m.Hours.Backend, &m.Hours.QA,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project module: %w", err)
	}

	pm.OverrideFrontend = floatPtr(overrideF)
	pm.OverrideBackend = floatPtr(overrideB)
	pm.OverrideQA = floatPtr(overrideQ)
	pm.UncertaintyLevel = stringPtr(uncertainty)
	pm.UIUXLevel = stringPtr(uiux)
	pm.LegacyCode = boolPtr(legacy)

	if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	pm.Module = &m
	return &pm, nil
}
