package domain

import "time"

// MindmapGraph is a graph keyed by string keys, as produced by the WBS
// builder or stored in a snapshot before storage ids exist.
type MindmapGraph struct {
	Nodes       []GraphNode
	Connections []GraphConnection
	Rationale   string
}

// GraphNode is a node of a MindmapGraph.
type GraphNode struct {
	Key        string
	Title      string
	Details    string
	ModuleCode string
	Hours      ModuleHours
	RoleHours  []RoleHours
}

// GraphConnection is a directed edge between two node keys.
type GraphConnection struct {
	FromKey string
	ToKey   string
}

// MindmapNode is a persisted mindmap node.
type MindmapNode struct {
	ID               string
	ProjectID        string
	ModuleID         *string
	Title            string
	Description      string
	IsAI             bool
	Hours            ModuleHours
	UncertaintyLevel *string
	UIUXLevel        *string
	LegacyCode       *bool
	PositionX        float64
	PositionY        float64
	RoleHours        []RoleHours
}

// MindmapConnection is a persisted edge between two stored nodes.
type MindmapConnection struct {
	FromNodeID string
	ToNodeID   string
}

// MindmapNote is a free-floating note on the mindmap canvas.
type MindmapNote struct {
	ID        string
	ProjectID string
	Content   string
	PositionX float64
	PositionY float64
}

// MindmapSnapshot is the serialized form of a whole mindmap. Nodes are
// identified by snapshot-local keys, translated to storage ids on apply.
type MindmapSnapshot struct {
	Nodes       []SnapshotNode       `json:"nodes"`
	Connections []SnapshotConnection `json:"connections"`
	Notes       []SnapshotNote       `json:"notes"`
}

type SnapshotNode struct {
	Key              string          `json:"key"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ModuleID         *string         `json:"module_id"`
	IsAI             bool            `json:"is_ai"`
	HoursFrontend    float64         `json:"hours_frontend"`
	HoursBackend     float64         `json:"hours_backend"`
	HoursQA          float64         `json:"hours_qa"`
	UncertaintyLevel *string         `json:"uncertainty_level"`
	UIUXLevel        *string         `json:"uiux_level"`
	LegacyCode       *bool           `json:"legacy_code"`
	PositionX        float64         `json:"position_x"`
	PositionY        float64         `json:"position_y"`
	RoleHours        []SnapshotHours `json:"role_hours"`
}

type SnapshotHours struct {
	Role  string  `json:"role"`
	Hours float64 `json:"hours"`
}

type SnapshotConnection struct {
	FromKey string `json:"from_key"`
	ToKey   string `json:"to_key"`
}

type SnapshotNote struct {
	Content   string  `json:"content"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

// MindmapVersion is a titled, stored snapshot.
type MindmapVersion struct {
	ID        string
	ProjectID string
	Title     string
	CreatedAt time.Time
	Snapshot  *MindmapSnapshot
}
