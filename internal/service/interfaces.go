package service

import (
	"context"
	"io"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/intelligence"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type CatalogService interface {
	List(ctx context.Context) ([]domain.CatalogEntry, error)
	GetByCode(ctx context.Context, code string) (*domain.CatalogEntry, error)
	Create(ctx context.Context, m *domain.CatalogEntry) error
	Update(ctx context.Context, m *domain.CatalogEntry) error
	Delete(ctx context.Context, id string) error
}

// ProjectModuleService attaches catalog modules to projects and edits the
// per-project overrides.
type ProjectModuleService interface {
	Attach(ctx context.Context, pm *domain.ProjectModule) error
	AttachByCode(ctx context.Context, projectID, code string) (*domain.ProjectModule, error)
	GetByID(ctx context.Context, id string) (*domain.ProjectModule, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectModule, error)
	Update(ctx context.Context, pm *domain.ProjectModule) error
	Detach(ctx context.Context, id string) error
}

type RateService interface {
	Set(ctx context.Context, role domain.Role, level domain.Level, hourly float64) (*domain.Rate, error)
	List(ctx context.Context) ([]domain.Rate, error)
	Delete(ctx context.Context, role domain.Role, level domain.Level) error
}

type AssignmentService interface {
	Assign(ctx context.Context, projectModuleID string, role domain.Role, level domain.Level) (*domain.Assignment, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Assignment, error)
	Unassign(ctx context.Context, projectModuleID string, role domain.Role) error
}

type InfrastructureService interface {
	CreateItem(ctx context.Context, item *domain.InfrastructureItem) error
	ListItems(ctx context.Context) ([]domain.InfrastructureItem, error)
	DeleteItem(ctx context.Context, id string) error
	AddLine(ctx context.Context, projectID, itemID string, quantity int) (*domain.InfrastructureLine, error)
	ListLines(ctx context.Context, projectID string) ([]domain.InfrastructureLine, error)
	SetQuantity(ctx context.Context, lineID string, quantity int) error
	RemoveLine(ctx context.Context, lineID string) error
}

// ProjectSummary is a project's realistic totals plus scenario projections.
type ProjectSummary struct {
	Project *domain.Project
	estimate.Summary
}

type SummaryService interface {
	Summary(ctx context.Context, projectID string) (*ProjectSummary, error)
}

// Breakdown is the per-role and per-infrastructure-line export of a project.
type Breakdown struct {
	Project *domain.Project
	Work    []estimate.WorkRow
	Infra   []estimate.InfraRow
}

type ExportService interface {
	Breakdown(ctx context.Context, projectID string) (*Breakdown, error)
	WriteCSV(ctx context.Context, projectID string, w io.Writer) error
}

// DecomposeService runs prompt decomposition against the stored catalog.
// Only catalog loading can fail; model problems degrade to heuristics.
type DecomposeService interface {
	Parse(ctx context.Context, prompt string) (domain.Decomposition, error)
	Mindmap(ctx context.Context, prompt string) (*intelligence.MindmapResult, error)
}

// MindmapState is a project's current mindmap.
type MindmapState struct {
	Nodes       []domain.MindmapNode
	Connections []domain.MindmapConnection
	Notes       []domain.MindmapNote
}

type MindmapService interface {
	State(ctx context.Context, projectID string) (*MindmapState, error)
	AddNode(ctx context.Context, n *domain.MindmapNode) error
	AddNote(ctx context.Context, n *domain.MindmapNote) error
	Connect(ctx context.Context, projectID, fromNodeID, toNodeID string) error

	// SaveVersion stores snapshot under title. A nil snapshot captures the
	// current state.
	SaveVersion(ctx context.Context, projectID, title string, snapshot *domain.MindmapSnapshot) (*domain.MindmapVersion, error)
	ListVersions(ctx context.Context, projectID string) ([]domain.MindmapVersion, error)
	GetVersion(ctx context.Context, projectID, versionID string) (*domain.MindmapVersion, error)

	// ApplyVersion replaces the project's mindmap with a stored snapshot.
	ApplyVersion(ctx context.Context, projectID, versionID string) (*MindmapState, error)
	ApplySnapshot(ctx context.Context, projectID string, snapshot *domain.MindmapSnapshot) (*MindmapState, error)
	// ApplyGraph replaces the project's mindmap with a generated graph.
	ApplyGraph(ctx context.Context, projectID string, graph domain.MindmapGraph) (*MindmapState, error)
}

// SeedResult counts what a seed run inserted.
type SeedResult struct {
	ModulesCreated int
	ModulesSkipped int
	RatesCreated   int
}

type SeedService interface {
	Seed(ctx context.Context, data *SeedData) (*SeedResult, error)
}
