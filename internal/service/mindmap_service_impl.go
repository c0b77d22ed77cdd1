package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
)

const versionTitleLayout = "2006-01-02 15:04"

type mindmapService struct {
	projects repository.ProjectRepo
	modules  repository.CatalogRepo
	mindmaps repository.MindmapRepo
	versions repository.MindmapVersionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMindmapService(
	projects repository.ProjectRepo,
	modules repository.CatalogRepo,
	mindmaps repository.MindmapRepo,
	versions repository.MindmapVersionRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) MindmapService {
	return &mindmapService{
		projects: projects,
		modules:  modules,
		mindmaps: mindmaps,
		versions: versions,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *mindmapService) State(ctx context.Context, projectID string) (*MindmapState, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return loadState(ctx, s.mindmaps, projectID)
}

func (s *mindmapService) AddNode(ctx context.Context, n *domain.MindmapNode) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return fmt.Errorf("%w: node title is required", ErrValidation)
	}
	if err := n.Hours.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if _, err := s.projects.GetByID(ctx, n.ProjectID); err != nil {
		return err
	}
	return s.mindmaps.CreateNode(ctx, n)
}

func (s *mindmapService) AddNote(ctx context.Context, n *domain.MindmapNote) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if _, err := s.projects.GetByID(ctx, n.ProjectID); err != nil {
		return err
	}
	return s.mindmaps.CreateNote(ctx, n)
}

func (s *mindmapService) Connect(ctx context.Context, projectID, fromNodeID, toNodeID string) error {
	nodes, err := s.mindmaps.ListNodes(ctx, projectID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	if !known[fromNodeID] || !known[toNodeID] {
		return fmt.Errorf("mindmap node: %w", repository.ErrNotFound)
	}
	return s.mindmaps.CreateConnection(ctx, projectID, domain.MindmapConnection{FromNodeID: fromNodeID, ToNodeID: toNodeID})
}

func (s *mindmapService) SaveVersion(ctx context.Context, projectID, title string, snapshot *domain.MindmapSnapshot) (v *domain.MindmapVersion, err error) {
	fields := map[string]any{"project_id": projectID}
	done := observe(ctx, s.observer, "mindmap-save-version", fields)
	defer func() { done(err) }()

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	if snapshot == nil {
		var state *MindmapState
		state, err = loadState(ctx, s.mindmaps, projectID)
		if err != nil {
			return nil, err
		}
		snapshot = snapshotFromState(state)
	}
	fields["node_count"] = len(snapshot.Nodes)

	now := time.Now().UTC()
	v = &domain.MindmapVersion{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     domain.CoalesceStr(strings.TrimSpace(title), "Snapshot "+now.Format(versionTitleLayout)),
		CreatedAt: now,
		Snapshot:  snapshot,
	}
	if err = s.versions.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *mindmapService) ListVersions(ctx context.Context, projectID string) ([]domain.MindmapVersion, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.versions.ListByProject(ctx, projectID)
}

func (s *mindmapService) GetVersion(ctx context.Context, projectID, versionID string) (*domain.MindmapVersion, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	v, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if v.ProjectID != projectID {
		return nil, fmt.Errorf("mindmap version: %w", repository.ErrNotFound)
	}
	return v, nil
}

func (s *mindmapService) ApplyVersion(ctx context.Context, projectID, versionID string) (*MindmapState, error) {
	v, err := s.GetVersion(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	return s.ApplySnapshot(ctx, projectID, v.Snapshot)
}

// ApplySnapshot deletes the project's nodes, connections and notes and
// recreates them from snapshot in one transaction. Snapshot keys become
// fresh node ids; connections with an unknown endpoint are dropped.
func (s *mindmapService) ApplySnapshot(ctx context.Context, projectID string, snapshot *domain.MindmapSnapshot) (state *MindmapState, err error) {
	fields := map[string]any{"project_id": projectID}
	done := observe(ctx, s.observer, "mindmap-apply", fields)
	defer func() { done(err) }()

	if snapshot == nil {
		snapshot = &domain.MindmapSnapshot{}
	}
	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txModules := repository.NewSQLiteCatalogRepo(tx)
		txMindmaps := repository.NewSQLiteMindmapRepo(tx)

		catalog, err := txModules.List(ctx)
		if err != nil {
			return err
		}
		moduleIDs := make(map[string]bool, len(catalog))
		for _, m := range catalog {
			moduleIDs[m.ID] = true
		}

		if err := txMindmaps.DeleteAll(ctx, projectID); err != nil {
			return err
		}

		keyToID := make(map[string]string, len(snapshot.Nodes))
		for _, sn := range snapshot.Nodes {
			node := nodeFromSnapshot(projectID, sn)
			if node.ModuleID != nil && !moduleIDs[*node.ModuleID] {
				node.ModuleID = nil
			}
			if err := txMindmaps.CreateNode(ctx, node); err != nil {
				return fmt.Errorf("creating node %q: %w", sn.Title, err)
			}
			keyToID[sn.Key] = node.ID
		}

		connections := 0
		for _, sc := range snapshot.Connections {
			from, okFrom := keyToID[sc.FromKey]
			to, okTo := keyToID[sc.ToKey]
			if !okFrom || !okTo {
				continue
			}
			if err := txMindmaps.CreateConnection(ctx, projectID, domain.MindmapConnection{FromNodeID: from, ToNodeID: to}); err != nil {
				return err
			}
			connections++
		}

		for _, note := range snapshot.Notes {
			if err := txMindmaps.CreateNote(ctx, &domain.MindmapNote{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Content:   note.Content,
				PositionX: note.PositionX,
				PositionY: note.PositionY,
			}); err != nil {
				return err
			}
		}

		fields["node_count"] = len(keyToID)
		fields["connection_count"] = connections
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadState(ctx, s.mindmaps, projectID)
}

func (s *mindmapService) ApplyGraph(ctx context.Context, projectID string, graph domain.MindmapGraph) (*MindmapState, error) {
	catalog, err := s.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	moduleIDs := make(map[string]string, len(catalog))
	for _, m := range catalog {
		moduleIDs[m.Code] = m.ID
	}
	return s.ApplySnapshot(ctx, projectID, snapshotFromGraph(graph, moduleIDs))
}

func loadState(ctx context.Context, mindmaps repository.MindmapRepo, projectID string) (*MindmapState, error) {
	nodes, err := mindmaps.ListNodes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	connections, err := mindmaps.ListConnections(ctx, projectID)
	if err != nil {
		return nil, err
	}
	notes, err := mindmaps.ListNotes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &MindmapState{Nodes: nodes, Connections: connections, Notes: notes}, nil
}
