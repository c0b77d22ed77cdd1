package estimate

import "github.com/alexanderramin/estimator/internal/domain"

// RateKey identifies a rate table entry.
type RateKey struct {
	Role  domain.Role
	Level domain.Level
}

// RateTable maps (role, level) to an hourly rate.
type RateTable map[RateKey]float64

// NewRateTable indexes rates by (role, level). Later duplicates win.
func NewRateTable(rates []domain.Rate) RateTable {
	t := make(RateTable, len(rates))
	for _, r := range rates {
		t[RateKey{Role: r.Role, Level: r.Level}] = r.HourlyRate
	}
	return t
}

// Lookup returns the hourly rate, 0 when the pair is not priced.
func (t RateTable) Lookup(role domain.Role, level domain.Level) float64 {
	return t[RateKey{Role: role, Level: level}]
}

// AssignmentKey identifies the staffing of one role on one project module.
type AssignmentKey struct {
	ProjectModuleID string
	Role            domain.Role
}

// AssignmentTable maps (project module, role) to a level.
type AssignmentTable map[AssignmentKey]domain.Level

// NewAssignmentTable indexes assignments by (project module, role).
func NewAssignmentTable(assignments []domain.Assignment) AssignmentTable {
	t := make(AssignmentTable, len(assignments))
	for _, a := range assignments {
		t[AssignmentKey{ProjectModuleID: a.ProjectModuleID, Role: a.Role}] = a.Level
	}
	return t
}

// ResolveLevel returns the assigned level for role on a project module,
// falling back to the configured per-role default.
func ResolveLevel(cfg Config, assignments AssignmentTable, projectModuleID string, role domain.Role) domain.Level {
	if lvl, ok := assignments[AssignmentKey{ProjectModuleID: projectModuleID, Role: role}]; ok {
		return lvl
	}
	return cfg.DefaultLevel(role)
}

// Input is a momentary snapshot of everything needed to price a project.
type Input struct {
	Project        domain.Project
	Modules        []domain.ProjectModule
	Assignments    AssignmentTable
	Rates          RateTable
	Infrastructure []domain.InfrastructureLine
}

// Totals are the aggregated realistic hours and costs of a project.
type Totals struct {
	HoursFrontend float64
	HoursBackend  float64
	HoursQA       float64
	HoursTotal    float64
	InfraCost     float64
	CostTotal     float64
}

// Summary pairs realistic totals with their scenario projections.
type Summary struct {
	Totals    Totals
	Scenarios []ScenarioResult
}

// Summarize computes totals and scenarios for in.
func Summarize(cfg Config, in Input) Summary {
	totals := ComputeTotals(cfg, in)
	return Summary{
		Totals:    totals,
		Scenarios: ProjectScenarios(cfg, totals),
	}
}

// ComputeTotals sums adjusted hours and work cost over every project module
// and adds infrastructure cost. Extra role hours are not part of the totals.
func ComputeTotals(cfg Config, in Input) Totals {
	var t Totals
	workCost := 0.0

	for _, pm := range in.Modules {
		adjusted := AdjustedHours(cfg, in.Project, pm)
		t.HoursFrontend += adjusted.Frontend
		t.HoursBackend += adjusted.Backend
		t.HoursQA += adjusted.QA
		workCost += ModuleCost(cfg, pm.ID, adjusted, in.Assignments, in.Rates)
	}

	t.InfraCost = InfraCost(in.Infrastructure)
	t.HoursTotal = t.HoursFrontend + t.HoursBackend + t.HoursQA
	t.CostTotal = workCost + t.InfraCost
	return t
}

// ModuleCost prices the fixed-role hours of one project module. Unpriced
// (role, level) pairs cost nothing.
func ModuleCost(cfg Config, projectModuleID string, adjusted domain.ModuleHours, assignments AssignmentTable, rates RateTable) float64 {
	cost := 0.0
	for _, role := range domain.FixedRoles {
		level := ResolveLevel(cfg, assignments, projectModuleID, role)
		cost += adjusted.ForRole(role) * rates.Lookup(role, level)
	}
	return cost
}

// InfraCost sums unit cost times quantity. Lines without a catalog item
// contribute nothing.
func InfraCost(lines []domain.InfrastructureLine) float64 {
	cost := 0.0
	for _, line := range lines {
		cost += lineUnitCost(line) * float64(line.Quantity)
	}
	return cost
}

func lineUnitCost(line domain.InfrastructureLine) float64 {
	if line.Item == nil {
		return 0
	}
	return line.Item.UnitCost
}
