package wbs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/estimator/internal/domain"
)

func TestSuggestFromTasks(t *testing.T) {
	tasks := []domain.WbsTask{
		{Title: "a", ModuleCode: "search", Confidence: 0.4},
		{Title: "b", ModuleCode: "core", Confidence: 0.6},
		{Title: "c", ModuleCode: "search", Confidence: 0.8},
		{Title: "d", ModuleCode: "search", Confidence: 0.5},
		{Title: "e", ModuleCode: "", Confidence: 1},
	}

	got := SuggestFromTasks(tasks)

	assert.Equal(t, []domain.ModuleSuggestion{
		{ModuleCode: "search", Confidence: 0.8, Notes: ExtractedFromWBSNote},
		{ModuleCode: "core", Confidence: 0.6, Notes: ExtractedFromWBSNote},
	}, got)
}

func TestSuggestFromTasks_Empty(t *testing.T) {
	assert.Empty(t, SuggestFromTasks(nil))
}
