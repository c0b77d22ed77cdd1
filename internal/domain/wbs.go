package domain

// WbsTask is one work-breakdown item produced by prompt decomposition.
type WbsTask struct {
	Title      string
	Details    string
	ModuleCode string
	Confidence float64
}

// ModuleSuggestion recommends attaching a catalog module to a project.
type ModuleSuggestion struct {
	ModuleCode string
	Confidence float64
	Notes      string
}

// DecompositionSource records which tier produced a decomposition.
type DecompositionSource string

const (
	SourceLLM       DecompositionSource = "llm"
	SourceHeuristic DecompositionSource = "heuristic"
	SourceDefault   DecompositionSource = "default"
)

// Decomposition is the result of turning a free-text prompt into a WBS.
type Decomposition struct {
	Tasks       []WbsTask
	Suggestions []ModuleSuggestion
	Rationale   string
	Source      DecompositionSource
}
