package intelligence

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/wbs"
)

// Defaults applied to model output.
const (
	defaultTaskTitle    = "Task"
	defaultLLMRationale = "AI analysis"
)

// decodeTasks reads the "tasks" array leniently. Non-object items are
// skipped; invalid or missing module codes are remapped by keyword.
func decodeTasks(raw any, ix *wbs.KeywordIndex) []domain.WbsTask {
	items, _ := raw.([]any)
	tasks := make([]domain.WbsTask, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title := textField(obj, "title")
		if title == "" {
			title = defaultTaskTitle
		}
		details := textField(obj, "details")
		confidence := confidenceField(obj, "confidence")

		code := wbs.NormalizeModuleCode(textField(obj, "module_code"), ix)
		if code == "" {
			code, confidence = wbs.MapTaskToModule(title, details, ix, confidence)
		}
		tasks = append(tasks, domain.WbsTask{
			Title:      title,
			Details:    details,
			ModuleCode: code,
			Confidence: confidence,
		})
	}
	return tasks
}

// decodeSuggestions reads the "suggestions" array leniently, discarding
// entries whose module code is not in the catalog.
func decodeSuggestions(raw any, ix *wbs.KeywordIndex) []domain.ModuleSuggestion {
	items, _ := raw.([]any)
	var out []domain.ModuleSuggestion
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		code := wbs.NormalizeModuleCode(textField(obj, "module_code"), ix)
		if code == "" {
			continue
		}
		out = append(out, domain.ModuleSuggestion{
			ModuleCode: code,
			Confidence: confidenceField(obj, "confidence"),
			Notes:      textField(obj, "notes"),
		})
	}
	return out
}

func decodeRationale(raw any) string {
	if s := strings.TrimSpace(textValue(raw)); s != "" {
		return s
	}
	return defaultLLMRationale
}

func textField(obj map[string]any, key string) string {
	return strings.TrimSpace(textValue(obj[key]))
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// confidenceField parses numbers or numeric strings and clamps to [0,1].
// Anything else, NaN included, counts as 0.
func confidenceField(obj map[string]any, key string) float64 {
	var f float64
	switch t := obj[key].(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err == nil {
			f = parsed
		}
	}
	if math.IsNaN(f) {
		return 0
	}
	return min(max(f, 0), 1)
}
