package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
)

type infrastructureService struct {
	projects repository.ProjectRepo
	items    repository.InfrastructureItemRepo
	lines    repository.ProjectInfrastructureRepo
}

func NewInfrastructureService(
	projects repository.ProjectRepo,
	items repository.InfrastructureItemRepo,
	lines repository.ProjectInfrastructureRepo,
) InfrastructureService {
	return &infrastructureService{projects: projects, items: items, lines: lines}
}

func (s *infrastructureService) CreateItem(ctx context.Context, item *domain.InfrastructureItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Code = normalizeCode(item.Code)
	item.Name = strings.TrimSpace(item.Name)
	switch {
	case item.Code == "" || item.Name == "":
		return fmt.Errorf("%w: infrastructure item code and name are required", ErrValidation)
	case !domain.NonNegative(item.UnitCost):
		return fmt.Errorf("%w: unit cost must be finite and non-negative", ErrValidation)
	}
	return s.items.Create(ctx, item)
}

func (s *infrastructureService) ListItems(ctx context.Context) ([]domain.InfrastructureItem, error) {
	return s.items.List(ctx)
}

func (s *infrastructureService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

func (s *infrastructureService) AddLine(ctx context.Context, projectID, itemID string, quantity int) (*domain.InfrastructureLine, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	line := &domain.InfrastructureLine{
		ID:                   uuid.New().String(),
		ProjectID:            projectID,
		InfrastructureItemID: item.ID,
		Quantity:             quantity,
		Item:                 item,
	}
	if err := s.lines.Create(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *infrastructureService) ListLines(ctx context.Context, projectID string) ([]domain.InfrastructureLine, error) {
	return s.lines.ListByProject(ctx, projectID)
}

func (s *infrastructureService) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
	}
	return s.lines.UpdateQuantity(ctx, lineID, quantity)
}

func (s *infrastructureService) RemoveLine(ctx context.Context, lineID string) error {
	return s.lines.Delete(ctx, lineID)
}
