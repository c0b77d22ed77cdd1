package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

const moduleColumns = `id, code, name, description, hours_frontend, hours_backend, hours_qa, created_at, updated_at`

// Create appends m to the end of the catalog.
func (r *SQLiteCatalogRepo) Create(ctx context.Context, m *domain.CatalogEntry) error {
	now := nowUTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `INSERT INTO modules (` + moduleColumns + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM modules))`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Code,
		m.Name,
		m.Description,
		m.Hours.Frontend,
		m.Hours.Backend,
		m.Hours.QA,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("module %q: %w", m.Code, ErrConflict)
		}
		return fmt.Errorf("inserting module: %w", err)
	}
	return r.writeRoleHours(ctx, m.ID, m.RoleHours)
}

func (r *SQLiteCatalogRepo) GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	return r.getOne(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = ?`, id)
}

func (r *SQLiteCatalogRepo) GetByCode(ctx context.Context, code string) (*domain.CatalogEntry, error) {
	return r.getOne(ctx, `SELECT `+moduleColumns+` FROM modules WHERE code = ?`, code)
}

func (r *SQLiteCatalogRepo) getOne(ctx context.Context, query string, arg string) (*domain.CatalogEntry, error) {
	m, err := scanModule(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("module: %w", ErrNotFound)
		}
		return nil, err
	}
	roleHours, err := r.roleHoursByModule(ctx, `WHERE module_id = ?`, m.ID)
	if err != nil {
		return nil, err
	}
	m.RoleHours = roleHours[m.ID]
	return m, nil
}

func (r *SQLiteCatalogRepo) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+moduleColumns+` FROM modules ORDER BY position, code`)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modules: %w", err)
	}

	roleHours, err := r.roleHoursByModule(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].RoleHours = roleHours[entries[i].ID]
	}
	return entries, nil
}

// Update rewrites the entry and replaces its role hours.
func (r *SQLiteCatalogRepo) Update(ctx context.Context, m *domain.CatalogEntry) error {
	m.UpdatedAt = nowUTC()
	query := `UPDATE modules SET code = ?, name = ?, description = ?,
		hours_frontend = ?, hours_backend = ?, hours_qa = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Code,
		m.Name,
		m.Description,
		m.Hours.Frontend,
		m.Hours.Backend,
		m.Hours.QA,
		formatTime(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("module %q: %w", m.Code, ErrConflict)
		}
		return fmt.Errorf("updating module: %w", err)
	}
	if err := requireAffected(res, "module"); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM module_role_hours WHERE module_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clearing module role hours: %w", err)
	}
	return r.writeRoleHours(ctx, m.ID, m.RoleHours)
}

func (r *SQLiteCatalogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM modules WHERE id = ?`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("module is attached to a project: %w", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("deleting module: %w", err)
	}
	return requireAffected(res, "module")
}

func (r *SQLiteCatalogRepo) writeRoleHours(ctx context.Context, moduleID string, hours []domain.RoleHours) error {
	for _, rh := range hours {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO module_role_hours (module_id, role, hours) VALUES (?, ?, ?)
			 ON CONFLICT(module_id, role) DO UPDATE SET hours = excluded.hours`,
			moduleID, string(rh.Role), rh.Hours)
		if err != nil {
			return fmt.Errorf("inserting module role hours: %w", err)
		}
	}
	return nil
}

// roleHoursByModule loads extra role hours grouped by module id.
func (r *SQLiteCatalogRepo) roleHoursByModule(ctx context.Context, where string, args ...any) (map[string][]domain.RoleHours, error) {
	return loadRoleHours(ctx, r.db,
		`SELECT module_id, role, hours FROM module_role_hours `+where+` ORDER BY module_id, role`, args...)
}

// loadRoleHours runs a (owner_id, role, hours) query and groups by owner.
func loadRoleHours(ctx context.Context, conn db.DBTX, query string, args ...any) (map[string][]domain.RoleHours, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing role hours: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.RoleHours)
	for rows.Next() {
		var ownerID, role string
		var hours float64
		if err := rows.Scan(&ownerID, &role, &hours); err != nil {
			return nil, fmt.Errorf("scanning role hours: %w", err)
		}
		out[ownerID] = append(out[ownerID], domain.RoleHours{Role: domain.Role(role), Hours: hours})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating role hours: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanModule(s rowScanner) (*domain.CatalogEntry, error) {
	var m domain.CatalogEntry
	var createdAt, updatedAt string
	err := s.Scan(
		&m.ID, &m.Code, &m.Name, &m.Description,
		&m.Hours.Frontend, &m.Hours.Backend, &m.Hours.QA,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning module: %w", err)
	}
	if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
