package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
)

func FormatModuleList(modules []domain.CatalogEntry) string {
	rows := make([][]string, 0, len(modules))
	for _, m := range modules {
		rows = append(rows, []string{
			StyleBlue.Render(m.Code),
			m.Name,
			FormatHours(m.Hours.Frontend),
			FormatHours(m.Hours.Backend),
			FormatHours(m.Hours.QA),
			OrDash(formatRoleHours(m.RoleHours)),
		})
	}
	return RenderTable([]string{"Code", "Name", "FE", "BE", "QA", "Extra roles"}, rows)
}

func formatRoleHours(rhs []domain.RoleHours) string {
	parts := make([]string, 0, len(rhs))
	for _, rh := range rhs {
		parts = append(parts, fmt.Sprintf("%s %sh", rh.Role, FormatHours(rh.Hours)))
	}
	return strings.Join(parts, ", ")
}

func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		legacy := ""
		if p.LegacyCode {
			legacy = StyleYellow.Render("legacy")
		}
		rows = append(rows, []string{TruncID(p.ID), Bold(p.Name), p.UncertaintyLevel, p.UIUXLevel, legacy})
	}
	return RenderTable([]string{"ID", "Name", "Uncertainty", "UI/UX", ""}, rows)
}

// FormatProjectModules lists attached modules with effective base hours.
// Overridden values are highlighted.
func FormatProjectModules(pms []domain.ProjectModule) string {
	rows := make([][]string, 0, len(pms))
	for _, pm := range pms {
		var base domain.ModuleHours
		code := ""
		if pm.Module != nil {
			base = pm.Module.Hours
			code = pm.Module.Code
		}
		rows = append(rows, []string{
			TruncID(pm.ID),
			StyleBlue.Render(code),
			pm.DisplayName(),
			overrideCell(base.Frontend, pm.OverrideFrontend),
			overrideCell(base.Backend, pm.OverrideBackend),
			overrideCell(base.QA, pm.OverrideQA),
			Dim(formatLevels(pm)),
		})
	}
	return RenderTable([]string{"ID", "Code", "Name", "FE", "BE", "QA", "Overrides"}, rows)
}

func overrideCell(base float64, override *float64) string {
	if override == nil {
		return FormatHours(base)
	}
	return StyleYellow.Render(FormatHours(*override))
}

func formatLevels(pm domain.ProjectModule) string {
	var parts []string
	if pm.UncertaintyLevel != nil {
		parts = append(parts, "uncertainty="+*pm.UncertaintyLevel)
	}
	if pm.UIUXLevel != nil {
		parts = append(parts, "uiux="+*pm.UIUXLevel)
	}
	if pm.LegacyCode != nil {
		parts = append(parts, fmt.Sprintf("legacy=%t", *pm.LegacyCode))
	}
	return strings.Join(parts, " ")
}

func FormatRateList(rates []domain.Rate) string {
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{string(r.Role), string(r.Level), FormatMoney(r.HourlyRate)})
	}
	return RenderTable([]string{"Role", "Level", "Hourly"}, rows)
}

func FormatInfraItems(items []domain.InfrastructureItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{TruncID(it.ID), StyleBlue.Render(it.Code), it.Name, FormatMoney(it.UnitCost)})
	}
	return RenderTable([]string{"ID", "Code", "Name", "Unit cost"}, rows)
}

func FormatInfraLines(lines []domain.InfrastructureLine) string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		name, unit := StyleRed.Render("(missing item)"), 0.0
		if l.Item != nil {
			name, unit = l.Item.Name, l.Item.UnitCost
		}
		rows = append(rows, []string{TruncID(l.ID), name, fmt.Sprint(l.Quantity), FormatMoney(unit * float64(l.Quantity))})
	}
	return RenderTable([]string{"ID", "Item", "Qty", "Total"}, rows)
}
