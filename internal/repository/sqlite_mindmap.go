package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
)

// SQLiteMindmapRepo implements MindmapRepo using a SQLite database.
type SQLiteMindmapRepo struct {
	db db.DBTX
}

// NewSQLiteMindmapRepo creates a new SQLiteMindmapRepo. Pass a transaction
// to make a replace-all atomic.
func NewSQLiteMindmapRepo(conn db.DBTX) *SQLiteMindmapRepo {
	return &SQLiteMindmapRepo{db: conn}
}

// CreateNode inserts n and its positive role hours. Role hours ≤ 0 are
// dropped.
func (r *SQLiteMindmapRepo) CreateNode(ctx context.Context, n *domain.MindmapNode) error {
	query := `INSERT INTO mindmap_nodes (id, project_id, module_id, title, description, is_ai,
			hours_frontend, hours_backend, hours_qa, uncertainty_level, uiux_level, legacy_code,
			position_x, position_y, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM mindmap_nodes WHERE project_id = ?))`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.ProjectID,
		nullableString(n.ModuleID),
		n.Title,
		n.Description,
		boolToInt(n.IsAI),
		n.Hours.Frontend,
		n.Hours.Backend,
		n.Hours.QA,
		nullableString(n.UncertaintyLevel),
		nullableString(n.UIUXLevel),
		nullableBool(n.LegacyCode),
		n.PositionX,
		n.PositionY,
		n.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("inserting mindmap node: %w", err)
	}

	for _, rh := range n.RoleHours {
		if rh.Hours <= 0 {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO mindmap_node_role_hours (node_id, role, hours) VALUES (?, ?, ?)
			 ON CONFLICT(node_id, role) DO UPDATE SET hours = excluded.hours`,
			n.ID, string(rh.Role), rh.Hours)
		if err != nil {
			return fmt.Errorf("inserting mindmap node role hours: %w", err)
		}
	}
	return nil
}

func (r *SQLiteMindmapRepo) CreateConnection(ctx context.Context, projectID string, c domain.MindmapConnection) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mindmap_connections (id, project_id, from_node_id, to_node_id, seq)
		 VALUES (lower(hex(randomblob(16))), ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM mindmap_connections WHERE project_id = ?))`,
		projectID, c.FromNodeID, c.ToNodeID, projectID)
	if err != nil {
		return fmt.Errorf("inserting mindmap connection: %w", err)
	}
	return nil
}

func (r *SQLiteMindmapRepo) CreateNote(ctx context.Context, n *domain.MindmapNote) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mindmap_notes (id, project_id, content, position_x, position_y, seq)
		 VALUES (?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM mindmap_notes WHERE project_id = ?))`,
		n.ID, n.ProjectID, n.Content, n.PositionX, n.PositionY, n.ProjectID)
	if err != nil {
		return fmt.Errorf("inserting mindmap note: %w", err)
	}
	return nil
}

func (r *SQLiteMindmapRepo) ListNodes(ctx context.Context, projectID string) ([]domain.MindmapNode, error) {
	query := `SELECT id, project_id, module_id, title, description, is_ai,
			hours_frontend, hours_backend, hours_qa, uncertainty_level, uiux_level, legacy_code,
			position_x, position_y
		FROM mindmap_nodes WHERE project_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing mindmap nodes: %w", err)
	}
	defer rows.Close()

	var nodes []domain.MindmapNode
	for rows.Next() {
		var n domain.MindmapNode
		var moduleID, uncertainty, uiux sql.NullString
		var legacy sql.NullInt64
		var isAI int
		err := rows.Scan(
			&n.ID, &n.ProjectID, &moduleID, &n.Title, &n.Description, &isAI,
			&n.Hours.Frontend, &n.Hours.Backend, &n.Hours.QA,
			&uncertainty, &uiux, &legacy,
			&n.PositionX, &n.PositionY,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning mindmap node: %w", err)
		}
		n.ModuleID = stringPtr(moduleID)
		n.UncertaintyLevel = stringPtr(uncertainty)
		n.UIUXLevel = stringPtr(uiux)
		n.LegacyCode = boolPtr(legacy)
		n.IsAI = intToBool(isAI)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mindmap nodes: %w", err)
	}

	roleHours, err := loadRoleHours(ctx, r.db,
		`SELECT rh.node_id, rh.role, rh.hours FROM mindmap_node_role_hours rh
		 JOIN mindmap_nodes n ON n.id = rh.node_id
		 WHERE n.project_id = ? ORDER BY rh.node_id, rh.role`, projectID)
	if err != nil {
		return nil, err
	}
	for i := range nodes {
		nodes[i].RoleHours = roleHours[nodes[i].ID]
	}
	return nodes, nil
}

func (r *SQLiteMindmapRepo) ListConnections(ctx context.Context, projectID string) ([]domain.MindmapConnection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT from_node_id, to_node_id FROM mindmap_connections WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing mindmap connections: %w", err)
	}
	defer rows.Close()

	var out []domain.MindmapConnection
	for rows.Next() {
		var c domain.MindmapConnection
		if err := rows.Scan(&c.FromNodeID, &c.ToNodeID); err != nil {
			return nil, fmt.Errorf("scanning mindmap connection: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mindmap connections: %w", err)
	}
	return out, nil
}

func (r *SQLiteMindmapRepo) ListNotes(ctx context.Context, projectID string) ([]domain.MindmapNote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, content, position_x, position_y FROM mindmap_notes
		 WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing mindmap notes: %w", err)
	}
	defer rows.Close()

	var out []domain.MindmapNote
	for rows.Next() {
		var n domain.MindmapNote
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.Content, &n.PositionX, &n.PositionY); err != nil {
			return nil, fmt.Errorf("scanning mindmap note: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mindmap notes: %w", err)
	}
	return out, nil
}

func (r *SQLiteMindmapRepo) DeleteAll(ctx context.Context, projectID string) error {
	steps := []struct {
		query, what string
	}{
		{`DELETE FROM mindmap_connections WHERE project_id = ?`, "connections"},
		{`DELETE FROM mindmap_node_role_hours WHERE node_id IN (SELECT id FROM mindmap_nodes WHERE project_id = ?)`, "node role hours"},
		{`DELETE FROM mindmap_nodes WHERE project_id = ?`, "nodes"},
		{`DELETE FROM mindmap_notes WHERE project_id = ?`, "notes"},
	}
	for _, step := range steps {
		if _, err := r.db.ExecContext(ctx, step.query, projectID); err != nil {
			return fmt.Errorf("deleting mindmap %s: %w", step.what, err)
		}
	}
	return nil
}
