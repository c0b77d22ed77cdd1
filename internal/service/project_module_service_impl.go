package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
)

type projectModuleService struct {
	projects       repository.ProjectRepo
	modules        repository.CatalogRepo
	projectModules repository.ProjectModuleRepo
}

func NewProjectModuleService(
	projects repository.ProjectRepo,
	modules repository.CatalogRepo,
	projectModules repository.ProjectModuleRepo,
) ProjectModuleService {
	return &projectModuleService{
		projects:       projects,
		modules:        modules,
		projectModules: projectModules,
	}
}

func (s *projectModuleService) Attach(ctx context.Context, pm *domain.ProjectModule) error {
	if pm.ID == "" {
		pm.ID = uuid.New().String()
	}
	if err := validateOverrides(pm); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, pm.ProjectID); err != nil {
		return err
	}
	module, err := s.modules.GetByID(ctx, pm.ModuleID)
	if err != nil {
		return err
	}
	if err := s.projectModules.Create(ctx, pm); err != nil {
		return err
	}
	pm.Module = module
	return nil
}

func (s *projectModuleService) AttachByCode(ctx context.Context, projectID, code string) (*domain.ProjectModule, error) {
	module, err := s.modules.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	pm := &domain.ProjectModule{ProjectID: projectID, ModuleID: module.ID}
	if err := s.Attach(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *projectModuleService) GetByID(ctx context.Context, id string) (*domain.ProjectModule, error) {
	return s.projectModules.GetByID(ctx, id)
}

func (s *projectModuleService) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectModule, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projectModules.ListByProject(ctx, projectID)
}

func (s *projectModuleService) Update(ctx context.Context, pm *domain.ProjectModule) error {
	if err := validateOverrides(pm); err != nil {
		return err
	}
	return s.projectModules.Update(ctx, pm)
}

func (s *projectModuleService) Detach(ctx context.Context, id string) error {
	return s.projectModules.Delete(ctx, id)
}

func validateOverrides(pm *domain.ProjectModule) error {
	overrides := []struct {
		role  domain.Role
		value *float64
	}{
		{domain.RoleFrontend, pm.OverrideFrontend},
		{domain.RoleBackend, pm.OverrideBackend},
		{domain.RoleQA, pm.OverrideQA},
	}
	for _, o := range overrides {
		if o.value != nil && !domain.NonNegative(*o.value) {
			return fmt.Errorf("%w: %s override must be finite and non-negative", ErrValidation, o.role)
		}
	}
	return nil
}
