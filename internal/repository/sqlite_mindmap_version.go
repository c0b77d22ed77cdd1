package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteMindmapVersionRepo stores snapshots as JSON text.
type SQLiteMindmapVersionRepo struct {
	db db.DBTX
}

func NewSQLiteMindmapVersionRepo(conn db.DBTX) *SQLiteMindmapVersionRepo {
	return &SQLiteMindmapVersionRepo{db: conn}
}

func (r *SQLiteMindmapVersionRepo) Create(ctx context.Context, v *domain.MindmapVersion) error {
	snapshot := v.Snapshot
	if snapshot == nil {
		snapshot = &domain.MindmapSnapshot{}
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding mindmap snapshot: %w", err)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = nowUTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO mindmap_versions (id, project_id, title, snapshot, created_at) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.ProjectID, v.Title, string(payload), formatTime(v.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting mindmap version: %w", err)
	}
	return nil
}

func (r *SQLiteMindmapVersionRepo) ListByProject(ctx context.Context, projectID string) ([]domain.MindmapVersion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, created_at FROM mindmap_versions
		 WHERE project_id = ? ORDER BY created_at DESC, rowid DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing mindmap versions: %w", err)
	}
	defer rows.Close()

	var out []domain.MindmapVersion
	for rows.Next() {
		var v domain.MindmapVersion
		var createdAt string
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning mindmap version: %w", err)
		}
		if v.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mindmap versions: %w", err)
	}
	return out, nil
}

func (r *SQLiteMindmapVersionRepo) GetByID(ctx context.Context, id string) (*domain.MindmapVersion, error) {
	var v domain.MindmapVersion
	var payload, createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, title, snapshot, created_at FROM mindmap_versions WHERE id = ?`, id,
	).Scan(&v.ID, &v.ProjectID, &v.Title, &payload, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mindmap version: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning mindmap version: %w", err)
	}
	if v.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}

	var snapshot domain.MindmapSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("decoding mindmap snapshot: %w", err)
	}
	v.Snapshot = &snapshot
	return &v, nil
}
