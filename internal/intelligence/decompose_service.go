package intelligence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/llm"
	"github.com/alexanderramin/estimator/internal/wbs"
)

// DecomposeService turns a free-text product request into a WBS and a
// mindmap. It never fails: model problems degrade to keyword heuristics and
// then to a fixed default plan.
type DecomposeService interface {
	// Parse returns tasks, module suggestions and a rationale for prompt.
	Parse(ctx context.Context, prompt string, catalog []domain.CatalogEntry) domain.Decomposition

	// Mindmap runs Parse and lays the tasks out as a root → module → task
	// graph.
	Mindmap(ctx context.Context, prompt string, catalog []domain.CatalogEntry) MindmapResult
}

// MindmapResult pairs a decomposition with the graph built from it.
type MindmapResult struct {
	Decomposition domain.Decomposition
	Graph         domain.MindmapGraph
}

type decomposeService struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewDecomposeService creates a DecomposeService. A nil client behaves
// like one without an API key.
func NewDecomposeService(client llm.LLMClient, logger *slog.Logger) DecomposeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &decomposeService{client: client, logger: logger}
}

func (s *decomposeService) Parse(ctx context.Context, prompt string, catalog []domain.CatalogEntry) domain.Decomposition {
	ix := wbs.BuildKeywordIndex(catalog)

	if s.client == nil {
		return DeterministicDecompose(prompt, catalog, ix, RationaleNoAPIKey)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDecompose,
		SystemPrompt: BuildDecomposeSystemPrompt(catalog),
		UserPrompt:   prompt,
	})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return DeterministicDecompose(prompt, catalog, ix, RationaleNoAPIKey)
	case err != nil:
		s.logger.Warn("decompose: llm call failed, using heuristics", "error", err)
		return DeterministicDecompose(prompt, catalog, ix, RationaleLLMFailed)
	}

	return s.fromModelOutput(resp.Text, ix)
}

func (s *decomposeService) Mindmap(ctx context.Context, prompt string, catalog []domain.CatalogEntry) MindmapResult {
	dec := s.Parse(ctx, prompt, catalog)
	return MindmapResult{
		Decomposition: dec,
		Graph:         wbs.BuildMindmap(dec.Tasks, domain.CatalogByCode(catalog), dec.Rationale),
	}
}

// fromModelOutput normalizes raw model text. Unparseable output yields an
// empty decomposition rather than an error.
func (s *decomposeService) fromModelOutput(text string, ix *wbs.KeywordIndex) domain.Decomposition {
	data, err := llm.ExtractJSON[map[string]any](text, nil)
	if err != nil {
		s.logger.Warn("decompose: unparseable llm output", "error", err)
		return domain.Decomposition{
			Tasks:       []domain.WbsTask{},
			Suggestions: []domain.ModuleSuggestion{},
			Rationale:   RationaleParseFailure,
			Source:      domain.SourceLLM,
		}
	}

	tasks := decodeTasks(data["tasks"], ix)
	suggestions := decodeSuggestions(data["suggestions"], ix)
	if len(suggestions) == 0 {
		suggestions = wbs.SuggestFromTasks(tasks)
	}
	if suggestions == nil {
		suggestions = []domain.ModuleSuggestion{}
	}

	return domain.Decomposition{
		Tasks:       tasks,
		Suggestions: suggestions,
		Rationale:   decodeRationale(data["rationale"]),
		Source:      domain.SourceLLM,
	}
}
