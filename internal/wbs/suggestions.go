package wbs

import "github.com/alexanderramin/estimator/internal/domain"

// ExtractedFromWBSNote annotates suggestions derived from tasks.
const ExtractedFromWBSNote = "extracted from WBS"

// SuggestFromTasks emits one suggestion per distinct module code, in
// first-seen order, carrying the highest task confidence for that module.
func SuggestFromTasks(tasks []domain.WbsTask) []domain.ModuleSuggestion {
	var out []domain.ModuleSuggestion
	pos := make(map[string]int)
	for _, task := range tasks {
		if task.ModuleCode == "" {
			continue
		}
		i, ok := pos[task.ModuleCode]
		if !ok {
			pos[task.ModuleCode] = len(out)
			out = append(out, domain.ModuleSuggestion{
				ModuleCode: task.ModuleCode,
				Confidence: task.Confidence,
				Notes:      ExtractedFromWBSNote,
			})
			continue
		}
		if task.Confidence > out[i].Confidence {
			out[i].Confidence = task.Confidence
		}
	}
	return out
}
