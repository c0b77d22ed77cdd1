package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/repository"
)

// estimateSource gathers the storage snapshot the estimation engine prices.
type estimateSource struct {
	projects       repository.ProjectRepo
	projectModules repository.ProjectModuleRepo
	rates          repository.RateRepo
	assignments    repository.AssignmentRepo
	infrastructure repository.ProjectInfrastructureRepo
}

func (src estimateSource) load(ctx context.Context, projectID string) (*domain.Project, estimate.Input, error) {
	project, err := src.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, estimate.Input{}, err
	}
	modules, err := src.projectModules.ListByProject(ctx, projectID)
	if err != nil {
		return nil, estimate.Input{}, fmt.Errorf("loading project modules: %w", err)
	}
	rates, err := src.rates.List(ctx)
	if err != nil {
		return nil, estimate.Input{}, fmt.Errorf("loading rates: %w", err)
	}
	assignments, err := src.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, estimate.Input{}, fmt.Errorf("loading assignments: %w", err)
	}
	lines, err := src.infrastructure.ListByProject(ctx, projectID)
	if err != nil {
		return nil, estimate.Input{}, fmt.Errorf("loading infrastructure: %w", err)
	}

	return project, estimate.Input{
		Project:        *project,
		Modules:        modules,
		Assignments:    estimate.NewAssignmentTable(assignments),
		Rates:          estimate.NewRateTable(rates),
		Infrastructure: lines,
	}, nil
}

type summaryService struct {
	source   estimateSource
	cfg      estimate.Config
	observer UseCaseObserver
}

func NewSummaryService(
	cfg estimate.Config,
	projects repository.ProjectRepo,
	projectModules repository.ProjectModuleRepo,
	rates repository.RateRepo,
	assignments repository.AssignmentRepo,
	infrastructure repository.ProjectInfrastructureRepo,
	observers ...UseCaseObserver,
) SummaryService {
	return &summaryService{
		source: estimateSource{
			projects:       projects,
			projectModules: projectModules,
			rates:          rates,
			assignments:    assignments,
			infrastructure: infrastructure,
		},
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *summaryService) Summary(ctx context.Context, projectID string) (summary *ProjectSummary, err error) {
	fields := map[string]any{"project_id": projectID}
	done := observe(ctx, s.observer, "project-summary", fields)
	defer func() { done(err) }()

	project, in, err := s.source.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fields["module_count"] = len(in.Modules)

	return &ProjectSummary{
		Project: project,
		Summary: estimate.Summarize(s.cfg, in),
	}, nil
}
