package intelligence

import (
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/wbs"
)

// Fixed rationales identifying which path produced a decomposition.
const (
	RationaleNoAPIKey     = "Heuristics fallback (no API key configured)."
	RationaleLLMFailed    = "Heuristics fallback (AI request failed)."
	RationaleParseFailure = "Failed to parse AI response"
)

// Fixed confidences of the deterministic tiers.
const (
	HeuristicConfidence  = 0.55
	DefaultWBSConfidence = 0.4
)

// DeterministicDecompose matches the prompt against the catalog without a
// model. Entries whose code, name or any description word occurs in the
// lowercased prompt become tasks. Without any match a fixed three-task WBS
// on the fallback module is returned.
func DeterministicDecompose(prompt string, catalog []domain.CatalogEntry, ix *wbs.KeywordIndex, rationale string) domain.Decomposition {
	lowered := strings.ToLower(prompt)

	var tasks []domain.WbsTask
	for _, entry := range catalog {
		if !promptMatches(lowered, entry) {
			continue
		}
		tasks = append(tasks, domain.WbsTask{
			Title:      entry.Name,
			Details:    entry.Description,
			ModuleCode: entry.Code,
			Confidence: HeuristicConfidence,
		})
	}

	source := domain.SourceHeuristic
	if len(tasks) == 0 {
		tasks = DefaultWBS(wbs.FallbackModuleCode(ix))
		source = domain.SourceDefault
	}

	return domain.Decomposition{
		Tasks:       tasks,
		Suggestions: wbs.SuggestFromTasks(tasks),
		Rationale:   rationale,
		Source:      source,
	}
}

// DefaultWBS is the minimal plan used when nothing in the catalog matches.
func DefaultWBS(moduleCode string) []domain.WbsTask {
	return []domain.WbsTask{
		{
			Title:      "Requirements and scenarios",
			Details:    "Interviews, user flows, KPIs",
			ModuleCode: moduleCode,
			Confidence: DefaultWBSConfidence,
		},
		{
			Title:      "Architecture and integrations",
			Details:    "Services, security boundaries, integrations",
			ModuleCode: moduleCode,
			Confidence: DefaultWBSConfidence,
		},
		{
			Title:      "UI/UX concept",
			Details:    "Prototypes, visual style, key screens",
			ModuleCode: moduleCode,
			Confidence: DefaultWBSConfidence,
		},
	}
}

// promptMatches checks code, name and whitespace-split description words as
// substrings of the already lowercased prompt.
func promptMatches(lowered string, entry domain.CatalogEntry) bool {
	keywords := append([]string{entry.Code, entry.Name}, strings.Fields(entry.Description)...)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw != "" && strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
