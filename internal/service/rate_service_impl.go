package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
)

type rateService struct {
	rates repository.RateRepo
}

func NewRateService(rates repository.RateRepo) RateService {
	return &rateService{rates: rates}
}

// Set stores the hourly rate of (role, level), replacing any previous value.
func (s *rateService) Set(ctx context.Context, role domain.Role, level domain.Level, hourly float64) (*domain.Rate, error) {
	if role == "" || level == "" {
		return nil, fmt.Errorf("%w: role and level are required", ErrValidation)
	}
	if !domain.NonNegative(hourly) {
		return nil, fmt.Errorf("%w: hourly rate must be finite and non-negative", ErrValidation)
	}
	r := &domain.Rate{ID: uuid.New().String(), Role: role, Level: level, HourlyRate: hourly}
	if err := s.rates.Upsert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *rateService) List(ctx context.Context) ([]domain.Rate, error) {
	return s.rates.List(ctx)
}

func (s *rateService) Delete(ctx context.Context, role domain.Role, level domain.Level) error {
	return s.rates.Delete(ctx, role, level)
}

type assignmentService struct {
	projectModules repository.ProjectModuleRepo
	assignments    repository.AssignmentRepo
}

func NewAssignmentService(projectModules repository.ProjectModuleRepo, assignments repository.AssignmentRepo) AssignmentService {
	return &assignmentService{projectModules: projectModules, assignments: assignments}
}

// Assign staffs role on a project module at level, replacing any previous
// assignment of that role.
func (s *assignmentService) Assign(ctx context.Context, projectModuleID string, role domain.Role, level domain.Level) (*domain.Assignment, error) {
	if role == "" || level == "" {
		return nil, fmt.Errorf("%w: role and level are required", ErrValidation)
	}
	pm, err := s.projectModules.GetByID(ctx, projectModuleID)
	if err != nil {
		return nil, err
	}
	a := &domain.Assignment{
		ID:              uuid.New().String(),
		ProjectID:       pm.ProjectID,
		ProjectModuleID: pm.ID,
		Role:            role,
		Level:           level,
	}
	if err := s.assignments.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) ListByProject(ctx context.Context, projectID string) ([]domain.Assignment, error) {
	return s.assignments.ListByProject(ctx, projectID)
}

func (s *assignmentService) Unassign(ctx context.Context, projectModuleID string, role domain.Role) error {
	return s.assignments.Delete(ctx, projectModuleID, role)
}
