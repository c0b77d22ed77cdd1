package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/intelligence"
	"github.com/alexanderramin/estimator/internal/repository"
)

type decomposeService struct {
	modules  repository.CatalogRepo
	engine   intelligence.DecomposeService
	observer UseCaseObserver
}

func NewDecomposeService(
	modules repository.CatalogRepo,
	engine intelligence.DecomposeService,
	observers ...UseCaseObserver,
) DecomposeService {
	return &decomposeService{
		modules:  modules,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *decomposeService) Parse(ctx context.Context, prompt string) (result domain.Decomposition, err error) {
	fields := map[string]any{"prompt_chars": utf8.RuneCountInString(prompt)}
	done := observe(ctx, s.observer, "ai-parse", fields)
	defer func() { done(err) }()

	catalog, err := s.catalog(ctx)
	if err != nil {
		return domain.Decomposition{}, err
	}
	result = s.engine.Parse(ctx, prompt, catalog)
	fields["source"] = string(result.Source)
	fields["task_count"] = len(result.Tasks)
	return result, nil
}

func (s *decomposeService) Mindmap(ctx context.Context, prompt string) (result *intelligence.MindmapResult, err error) {
	fields := map[string]any{"prompt_chars": utf8.RuneCountInString(prompt)}
	done := observe(ctx, s.observer, "ai-mindmap", fields)
	defer func() { done(err) }()

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	mm := s.engine.Mindmap(ctx, prompt, catalog)
	fields["source"] = string(mm.Decomposition.Source)
	fields["node_count"] = len(mm.Graph.Nodes)
	return &mm, nil
}

func (s *decomposeService) catalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	catalog, err := s.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalog, nil
}
