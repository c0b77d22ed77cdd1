package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so
// Migrate may run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS modules (
		id             TEXT PRIMARY KEY,
		code           TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		hours_frontend REAL NOT NULL DEFAULT 0 CHECK(hours_frontend >= 0),
		hours_backend  REAL NOT NULL DEFAULT 0 CHECK(hours_backend >= 0),
		hours_qa       REAL NOT NULL DEFAULT 0 CHECK(hours_qa >= 0),
		position       INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS module_role_hours (
		module_id TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		role      TEXT NOT NULL,
		hours     REAL NOT NULL CHECK(hours >= 0),
		PRIMARY KEY (module_id, role)
	)`,

	`CREATE TABLE IF NOT EXISTS infrastructure_items (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_cost   REAL NOT NULL DEFAULT 0 CHECK(unit_cost >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		uncertainty_level TEXT NOT NULL DEFAULT 'known',
		uiux_level        TEXT NOT NULL DEFAULT 'mvp',
		legacy_code       INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_modules (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		module_id         TEXT NOT NULL REFERENCES modules(id) ON DELETE RESTRICT,
		custom_name       TEXT NOT NULL DEFAULT '',
		override_frontend REAL CHECK(override_frontend IS NULL OR override_frontend >= 0),
		override_backend  REAL CHECK(override_backend IS NULL OR override_backend >= 0),
		override_qa       REAL CHECK(override_qa IS NULL OR override_qa >= 0),
		uncertainty_level TEXT,
		uiux_level        TEXT,
		legacy_code       INTEGER,
		position          INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		UNIQUE (project_id, module_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_modules_project ON project_modules(project_id)`,

	`CREATE TABLE IF NOT EXISTS rates (
		id          TEXT PRIMARY KEY,
		role        TEXT NOT NULL,
		level       TEXT NOT NULL,
		hourly_rate REAL NOT NULL CHECK(hourly_rate >= 0),
		UNIQUE (role, level)
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		project_module_id TEXT NOT NULL REFERENCES project_modules(id) ON DELETE CASCADE,
		role              TEXT NOT NULL,
		level             TEXT NOT NULL,
		UNIQUE (project_module_id, role)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_project ON assignments(project_id)`,

	`CREATE TABLE IF NOT EXISTS project_infrastructure (
		id                     TEXT PRIMARY KEY,
		project_id             TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		infrastructure_item_id TEXT REFERENCES infrastructure_items(id) ON DELETE SET NULL,
		quantity               INTEGER NOT NULL DEFAULT 1 CHECK(quantity >= 0)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_infrastructure_project ON project_infrastructure(project_id)`,

	`CREATE TABLE IF NOT EXISTS mindmap_nodes (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		module_id         TEXT REFERENCES modules(id) ON DELETE SET NULL,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		is_ai             INTEGER NOT NULL DEFAULT 0,
		hours_frontend    REAL NOT NULL DEFAULT 0,
		hours_backend     REAL NOT NULL DEFAULT 0,
		hours_qa          REAL NOT NULL DEFAULT 0,
		uncertainty_level TEXT,
		uiux_level        TEXT,
		legacy_code       INTEGER,
		position_x        REAL NOT NULL DEFAULT 0,
		position_y        REAL NOT NULL DEFAULT 0,
		seq               INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mindmap_nodes_project ON mindmap_nodes(project_id)`,

	`CREATE TABLE IF NOT EXISTS mindmap_node_role_hours (
		node_id TEXT NOT NULL REFERENCES mindmap_nodes(id) ON DELETE CASCADE,
		role    TEXT NOT NULL,
		hours   REAL NOT NULL CHECK(hours > 0),
		PRIMARY KEY (node_id, role)
	)`,

	`CREATE TABLE IF NOT EXISTS mindmap_connections (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		from_node_id TEXT NOT NULL REFERENCES mindmap_nodes(id) ON DELETE CASCADE,
		to_node_id   TEXT NOT NULL REFERENCES mindmap_nodes(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mindmap_connections_project ON mindmap_connections(project_id)`,

	`CREATE TABLE IF NOT EXISTS mindmap_notes (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		content    TEXT NOT NULL DEFAULT '',
		position_x REAL NOT NULL DEFAULT 0,
		position_y REAL NOT NULL DEFAULT 0,
		seq        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS mindmap_versions (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		snapshot   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mindmap_versions_project ON mindmap_versions(project_id, created_at)`,
}
