package repository

import (
	"context"

	"github.com/alexanderramin/estimator/internal/domain"
)

// CatalogRepo stores estimation modules. List order is catalog order,
// which drives keyword tie-breaking.
type CatalogRepo interface {
	Create(ctx context.Context, m *domain.CatalogEntry) error
	GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error)
	GetByCode(ctx context.Context, code string) (*domain.CatalogEntry, error)
	List(ctx context.Context) ([]domain.CatalogEntry, error)
	Update(ctx context.Context, m *domain.CatalogEntry) error
	Delete(ctx context.Context, id string) error
}

type InfrastructureItemRepo interface {
	Create(ctx context.Context, item *domain.InfrastructureItem) error
	GetByID(ctx context.Context, id string) (*domain.InfrastructureItem, error)
	GetByCode(ctx context.Context, code string) (*domain.InfrastructureItem, error)
	List(ctx context.Context) ([]domain.InfrastructureItem, error)
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ProjectModuleRepo stores modules attached to projects. Reads join the
// catalog entry so results are ready for estimation.
type ProjectModuleRepo interface {
	Create(ctx context.Context, pm *domain.ProjectModule) error
	GetByID(ctx context.Context, id string) (*domain.ProjectModule, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectModule, error)
	Update(ctx context.Context, pm *domain.ProjectModule) error
	Delete(ctx context.Context, id string) error
}

type RateRepo interface {
	// Upsert inserts or replaces the rate of r.Role/r.Level.
	Upsert(ctx context.Context, r *domain.Rate) error
	List(ctx context.Context) ([]domain.Rate, error)
	Delete(ctx context.Context, role domain.Role, level domain.Level) error
}

type AssignmentRepo interface {
	// Upsert inserts or replaces the level of a.Role on a.ProjectModuleID.
	Upsert(ctx context.Context, a *domain.Assignment) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Assignment, error)
	Delete(ctx context.Context, projectModuleID string, role domain.Role) error
}

// ProjectInfrastructureRepo stores infrastructure lines. Reads join the
// item; a line whose item was deleted has a nil Item.
type ProjectInfrastructureRepo interface {
	Create(ctx context.Context, line *domain.InfrastructureLine) error
	ListByProject(ctx context.Context, projectID string) ([]domain.InfrastructureLine, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}

// MindmapRepo stores a project's current mindmap.
type MindmapRepo interface {
	CreateNode(ctx context.Context, n *domain.MindmapNode) error
	CreateConnection(ctx context.Context, projectID string, c domain.MindmapConnection) error
	CreateNote(ctx context.Context, n *domain.MindmapNote) error
	ListNodes(ctx context.Context, projectID string) ([]domain.MindmapNode, error)
	ListConnections(ctx context.Context, projectID string) ([]domain.MindmapConnection, error)
	ListNotes(ctx context.Context, projectID string) ([]domain.MindmapNote, error)
	// DeleteAll removes connections, role hours, nodes and notes.
	DeleteAll(ctx context.Context, projectID string) error
}

type MindmapVersionRepo interface {
	Create(ctx context.Context, v *domain.MindmapVersion) error
	// ListByProject returns versions newest first, without snapshots.
	ListByProject(ctx context.Context, projectID string) ([]domain.MindmapVersion, error)
	GetByID(ctx context.Context, id string) (*domain.MindmapVersion, error)
}
