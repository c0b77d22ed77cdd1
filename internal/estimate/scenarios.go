package estimate

import "github.com/alexanderramin/estimator/internal/domain"

// ScenarioResult is one projection of the realistic totals.
type ScenarioResult struct {
	Kind       domain.ScenarioKind
	Label      string
	TotalHours float64
	TotalCost  float64
}

var scenarioLabels = map[domain.ScenarioKind]string{
	domain.ScenarioOptimistic:  "Optimistic",
	domain.ScenarioRealistic:   "Realistic",
	domain.ScenarioPessimistic: "Pessimistic",
}

// ScenarioLabel returns the display label for kind.
func ScenarioLabel(kind domain.ScenarioKind) string {
	if l, ok := scenarioLabels[kind]; ok {
		return l
	}
	return string(kind)
}

// OptimisticValue scales v by the optimistic multiplier.
func OptimisticValue(cfg Config, v float64) float64 {
	return v * cfg.OptimisticMultiplier
}

// PessimisticValue scales v by the pessimistic multiplier.
func PessimisticValue(cfg Config, v float64) float64 {
	return v * cfg.PessimisticMultiplier
}

// ProjectScenarios returns optimistic, realistic and pessimistic results, in
// that order. The realistic scenario carries totals unchanged.
func ProjectScenarios(cfg Config, totals Totals) []ScenarioResult {
	return []ScenarioResult{
		{
			Kind:       domain.ScenarioOptimistic,
			Label:      ScenarioLabel(domain.ScenarioOptimistic),
			TotalHours: OptimisticValue(cfg, totals.HoursTotal),
			TotalCost:  OptimisticValue(cfg, totals.CostTotal),
		},
		{
			Kind:       domain.ScenarioRealistic,
			Label:      ScenarioLabel(domain.ScenarioRealistic),
			TotalHours: totals.HoursTotal,
			TotalCost:  totals.CostTotal,
		},
		{
			Kind:       domain.ScenarioPessimistic,
			Label:      ScenarioLabel(domain.ScenarioPessimistic),
			TotalHours: PessimisticValue(cfg, totals.HoursTotal),
			TotalCost:  PessimisticValue(cfg, totals.CostTotal),
		},
	}
}
