package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
)

func plain(s string) string { return ansi.Strip(s) }

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{600, "600.00"},
		{1234.5, "1 234.50"},
		{1234567.891, "1 234 567.89"},
		{-98765, "-98 765.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in))
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "12", FormatHours(12))
	assert.Equal(t, "7.5", FormatHours(7.5))
	assert.Equal(t, "1.5", FormatHours(1.49999))
	assert.Equal(t, "0", FormatHours(0))
}

func TestRenderTable_RightAlignsNumericColumns(t *testing.T) {
	out := plain(RenderTable([]string{"Name", "Cost"}, [][]string{
		{"a", "5.00"},
		{"longer", "1 250.00"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[2], "    5.00"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "longer  1 250.00"), lines[3])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderConfidence(t *testing.T) {
	assert.Equal(t, "[████░░░░]  55%", plain(RenderConfidence(0.55, 8)))
	assert.Equal(t, "[████████] 100%", plain(RenderConfidence(1.7, 8)))
	assert.Equal(t, "[░░]   0%", plain(RenderConfidence(-1, 1)))
}

func TestFormatSummary(t *testing.T) {
	project := &domain.Project{Name: "Shop", UncertaintyLevel: "known", UIUXLevel: "mvp"}
	cfg := estimate.DefaultConfig()
	totals := estimate.Totals{HoursFrontend: 10, HoursBackend: 20, HoursQA: 5, HoursTotal: 35, InfraCost: 200, CostTotal: 800}
	out := plain(FormatSummary(project, estimate.Summary{Totals: totals, Scenarios: estimate.ProjectScenarios(cfg, totals)}))

	assert.Contains(t, out, "ESTIMATE")
	assert.Contains(t, out, "Shop")
	assert.Contains(t, out, "800.00")
	assert.Contains(t, out, "Optimistic")
	assert.Contains(t, out, "Pessimistic")
	assert.Contains(t, out, "1 000.00")
}

func TestFormatBreakdown(t *testing.T) {
	out := plain(FormatBreakdown(
		[]estimate.WorkRow{{ModuleName: "Catalog", Role: domain.RoleFrontend, Level: domain.LevelSenior, Hours: 10, Rate: 60, Cost: 600}},
		nil,
	))
	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "600.00")
	assert.Contains(t, out, "No infrastructure lines.")
}

func TestFormatDecomposition(t *testing.T) {
	out := plain(FormatDecomposition(domain.Decomposition{
		Tasks:       []domain.WbsTask{{Title: "Каталог", ModuleCode: "catalog", Confidence: 0.55}},
		Suggestions: []domain.ModuleSuggestion{{ModuleCode: "catalog", Confidence: 0.55, Notes: "extracted from WBS"}},
		Rationale:   "Heuristics fallback (no API key configured).",
		Source:      domain.SourceHeuristic,
	}))
	assert.Contains(t, out, "HEURISTIC")
	assert.Contains(t, out, "Каталог")
	assert.Contains(t, out, "55%")
	assert.Contains(t, out, "extracted from WBS")
	assert.Contains(t, out, "no API key configured")
}

func TestFormatGraphTree(t *testing.T) {
	g := domain.MindmapGraph{
		Nodes: []domain.GraphNode{
			{Key: "root", Title: "Project"},
			{Key: "module_core", Title: "Core"},
			{Key: "task_core_0", Title: "Schema", Hours: domain.ModuleHours{Frontend: 3, Backend: 5, QA: 1.5}},
			{Key: "task_core_1", Title: "Deploy", Hours: domain.ModuleHours{Frontend: 3, Backend: 5, QA: 1.5}},
			{Key: "module_auth", Title: "Auth"},
		},
		Connections: []domain.GraphConnection{
			{FromKey: "root", ToKey: "module_core"},
			{FromKey: "module_core", ToKey: "task_core_0"},
			{FromKey: "module_core", ToKey: "task_core_1"},
			{FromKey: "root", ToKey: "module_auth"},
		},
	}
	lines := strings.Split(strings.TrimRight(plain(FormatGraphTree(g)), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Project", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "├─ Core"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "│  ├─ Schema"), lines[2])
	assert.Contains(t, lines[2], "[ FE 3 · BE 5 · QA 1.5 ]")
	assert.True(t, strings.HasPrefix(lines[3], "│  └─ Deploy"), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "└─ Auth"), lines[4])
}

func TestFormatMindmapTree_CyclesAndNotes(t *testing.T) {
	nodes := []domain.MindmapNode{{ID: "a", Title: "A", IsAI: true}, {ID: "b", Title: "B"}}
	conns := []domain.MindmapConnection{{FromNodeID: "a", ToNodeID: "b"}, {FromNodeID: "b", ToNodeID: "a"}}
	out := plain(FormatMindmapTree(nodes, conns, []domain.MindmapNote{{Content: "check SSO"}}))

	assert.Equal(t, 1, strings.Count(out, "◆ A"), "each node renders once")
	assert.Contains(t, out, "└─ B")
	assert.Contains(t, out, "• check SSO")

	assert.Contains(t, plain(FormatMindmapTree(nil, nil, nil)), "Mindmap is empty.")
}

func TestFormatProjectModules_HighlightsOverrides(t *testing.T) {
	qa := 0.0
	out := plain(FormatProjectModules([]domain.ProjectModule{{
		ID:         "pm-123456789",
		OverrideQA: &qa,
		Module:     &domain.CatalogEntry{Code: "catalog", Name: "Каталог", Hours: domain.ModuleHours{Frontend: 12, Backend: 14, QA: 4}},
	}}))
	assert.Contains(t, out, "pm-12345")
	assert.Contains(t, out, "Каталог")
	assert.Contains(t, out, "12")
	assert.NotContains(t, out, "  4")
}
