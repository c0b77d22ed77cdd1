package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/repository"
)

var (
	csvWorkHeader  = []string{"Module", "Role", "Level", "Hours", "Rate", "Cost"}
	csvInfraHeader = []string{"Item", "Quantity", "Unit cost", "Total"}
)

type exportService struct {
	source   estimateSource
	cfg      estimate.Config
	observer UseCaseObserver
}

func NewExportService(
	cfg estimate.Config,
	projects repository.ProjectRepo,
	projectModules repository.ProjectModuleRepo,
	rates repository.RateRepo,
	assignments repository.AssignmentRepo,
	infrastructure repository.ProjectInfrastructureRepo,
	observers ...UseCaseObserver,
) ExportService {
	return &exportService{
		source: estimateSource{
			projects:       projects,
			projectModules: projectModules,
			rates:          rates,
			assignments:    assignments,
			infrastructure: infrastructure,
		},
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) Breakdown(ctx context.Context, projectID string) (*Breakdown, error) {
	project, in, err := s.source.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Breakdown{
		Project: project,
		Work:    estimate.BuildWorkRows(s.cfg, in),
		Infra:   estimate.BuildInfraRows(in.Infrastructure),
	}, nil
}

// WriteCSV writes the work section, a blank line, then the infrastructure
// section. Fields are separated by ';' and numbers carry two decimals.
func (s *exportService) WriteCSV(ctx context.Context, projectID string, w io.Writer) (err error) {
	fields := map[string]any{"project_id": projectID}
	done := observe(ctx, s.observer, "export-csv", fields)
	defer func() { done(err) }()

	b, err := s.Breakdown(ctx, projectID)
	if err != nil {
		return err
	}
	fields["work_rows"] = len(b.Work)
	fields["infra_rows"] = len(b.Infra)

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	records := [][]string{{"Work"}, csvWorkHeader}
	for _, row := range b.Work {
		records = append(records, []string{
			row.ModuleName,
			string(row.Role),
			string(row.Level),
			formatAmount(row.Hours),
			formatAmount(row.Rate),
			formatAmount(row.Cost),
		})
	}
	records = append(records, []string{}, []string{"Infrastructure"}, csvInfraHeader)
	for _, row := range b.Infra {
		records = append(records, []string{
			row.Name,
			strconv.Itoa(row.Quantity),
			formatAmount(row.UnitCost),
			formatAmount(row.TotalCost),
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
