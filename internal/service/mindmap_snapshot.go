package service

import (
	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Graph layout spacing for generated mindmaps.
const (
	layoutColumnWidth = 320.0
	layoutRowHeight   = 120.0
)

// snapshotFromState keys every node by its storage id.
func snapshotFromState(state *MindmapState) *domain.MindmapSnapshot {
	snap := &domain.MindmapSnapshot{
		Nodes:       make([]domain.SnapshotNode, 0, len(state.Nodes)),
		Connections: make([]domain.SnapshotConnection, 0, len(state.Connections)),
		Notes:       make([]domain.SnapshotNote, 0, len(state.Notes)),
	}
	for _, n := range state.Nodes {
		snap.Nodes = append(snap.Nodes, domain.SnapshotNode{
			Key:              n.ID,
			Title:            n.Title,
			Description:      n.Description,
			ModuleID:         n.ModuleID,
			IsAI:             n.IsAI,
			HoursFrontend:    n.Hours.Frontend,
			HoursBackend:     n.Hours.Backend,
			HoursQA:          n.Hours.QA,
			UncertaintyLevel: n.UncertaintyLevel,
			UIUXLevel:        n.UIUXLevel,
			LegacyCode:       n.LegacyCode,
			PositionX:        n.PositionX,
			PositionY:        n.PositionY,
			RoleHours:        snapshotHours(n.RoleHours),
		})
	}
	for _, c := range state.Connections {
		snap.Connections = append(snap.Connections, domain.SnapshotConnection{FromKey: c.FromNodeID, ToKey: c.ToNodeID})
	}
	for _, note := range state.Notes {
		snap.Notes = append(snap.Notes, domain.SnapshotNote{Content: note.Content, PositionX: note.PositionX, PositionY: note.PositionY})
	}
	return snap
}

// snapshotFromGraph lays a generated graph out in columns: root, modules,
// tasks. The rationale becomes a note beside the root.
func snapshotFromGraph(graph domain.MindmapGraph, moduleIDs map[string]string) *domain.MindmapSnapshot {
	depth := make(map[string]int, len(graph.Nodes))
	for _, c := range graph.Connections {
		depth[c.ToKey] = depth[c.FromKey] + 1
	}
	rows := make(map[int]int)

	snap := &domain.MindmapSnapshot{
		Nodes:       make([]domain.SnapshotNode, 0, len(graph.Nodes)),
		Connections: make([]domain.SnapshotConnection, 0, len(graph.Connections)),
		Notes:       []domain.SnapshotNote{},
	}
	for _, n := range graph.Nodes {
		col := depth[n.Key]
		row := rows[col]
		rows[col]++

		var moduleID *string
		if id, ok := moduleIDs[n.ModuleCode]; ok && n.ModuleCode != "" {
			moduleID = &id
		}
		snap.Nodes = append(snap.Nodes, domain.SnapshotNode{
			Key:           n.Key,
			Title:         n.Title,
			Description:   n.Details,
			ModuleID:      moduleID,
			IsAI:          true,
			HoursFrontend: n.Hours.Frontend,
			HoursBackend:  n.Hours.Backend,
			HoursQA:       n.Hours.QA,
			PositionX:     float64(col) * layoutColumnWidth,
			PositionY:     float64(row) * layoutRowHeight,
			RoleHours:     snapshotHours(n.RoleHours),
		})
	}
	for _, c := range graph.Connections {
		snap.Connections = append(snap.Connections, domain.SnapshotConnection{FromKey: c.FromKey, ToKey: c.ToKey})
	}
	if graph.Rationale != "" {
		snap.Notes = append(snap.Notes, domain.SnapshotNote{Content: graph.Rationale, PositionX: 0, PositionY: -layoutRowHeight})
	}
	return snap
}

func nodeFromSnapshot(projectID string, sn domain.SnapshotNode) *domain.MindmapNode {
	node := &domain.MindmapNode{
		ID:               uuid.New().String(),
		ProjectID:        projectID,
		ModuleID:         sn.ModuleID,
		Title:            sn.Title,
		Description:      sn.Description,
		IsAI:             sn.IsAI,
		Hours:            domain.ModuleHours{Frontend: sn.HoursFrontend, Backend: sn.HoursBackend, QA: sn.HoursQA},
		UncertaintyLevel: sn.UncertaintyLevel,
		UIUXLevel:        sn.UIUXLevel,
		LegacyCode:       sn.LegacyCode,
		PositionX:        sn.PositionX,
		PositionY:        sn.PositionY,
	}
	for _, rh := range sn.RoleHours {
		if rh.Hours <= 0 {
			continue
		}
		node.RoleHours = append(node.RoleHours, domain.RoleHours{Role: domain.Role(rh.Role), Hours: rh.Hours})
	}
	return node
}

func snapshotHours(hours []domain.RoleHours) []domain.SnapshotHours {
	out := make([]domain.SnapshotHours, 0, len(hours))
	for _, rh := range hours {
		out = append(out, domain.SnapshotHours{Role: string(rh.Role), Hours: rh.Hours})
	}
	return out
}
