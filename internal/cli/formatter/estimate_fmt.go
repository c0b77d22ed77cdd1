package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
)

// FormatSummary renders realistic totals and the scenario table of a project.
func FormatSummary(project *domain.Project, s estimate.Summary) string {
	var b strings.Builder

	b.WriteString(Bold(project.Name) + "  " + Dim(fmt.Sprintf("uncertainty=%s uiux=%s legacy=%t",
		project.UncertaintyLevel, project.UIUXLevel, project.LegacyCode)) + "\n\n")

	t := s.Totals
	b.WriteString(RenderTable(
		[]string{"Role", "Hours"},
		[][]string{
			{"Frontend", FormatHours(t.HoursFrontend)},
			{"Backend", FormatHours(t.HoursBackend)},
			{"QA", FormatHours(t.HoursQA)},
			{Bold("Total"), FormatHours(t.HoursTotal)},
		},
	))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Infrastructure:"), FormatMoney(t.InfraCost)))
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("Total cost:    "), Bold(FormatMoney(t.CostTotal))))

	rows := make([][]string, 0, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		label := sc.Label
		if sc.Kind == domain.ScenarioRealistic {
			label = StyleGreen.Render(label)
		}
		rows = append(rows, []string{label, FormatHours(sc.TotalHours), FormatMoney(sc.TotalCost)})
	}
	b.WriteString(RenderTable([]string{"Scenario", "Hours", "Cost"}, rows))

	return RenderBox("Estimate", strings.TrimRight(b.String(), "\n"))
}

// FormatBreakdown renders the per-role work rows and infrastructure lines.
func FormatBreakdown(work []estimate.WorkRow, infra []estimate.InfraRow) string {
	var b strings.Builder
	b.WriteString(Header("Work") + "\n")
	if len(work) == 0 {
		b.WriteString(Dim("No modules attached.") + "\n")
	} else {
		rows := make([][]string, 0, len(work))
		for _, r := range work {
			rows = append(rows, []string{r.ModuleName, string(r.Role), string(r.Level),
				FormatHours(r.Hours), FormatMoney(r.Rate), FormatMoney(r.Cost)})
		}
		b.WriteString(RenderTable([]string{"Module", "Role", "Level", "Hours", "Rate", "Cost"}, rows))
	}

	b.WriteString("\n" + Header("Infrastructure") + "\n")
	if len(infra) == 0 {
		b.WriteString(Dim("No infrastructure lines.") + "\n")
	} else {
		rows := make([][]string, 0, len(infra))
		for _, r := range infra {
			rows = append(rows, []string{r.Name, fmt.Sprint(r.Quantity), FormatMoney(r.UnitCost), FormatMoney(r.TotalCost)})
		}
		b.WriteString(RenderTable([]string{"Item", "Qty", "Unit cost", "Total"}, rows))
	}
	return b.String()
}
