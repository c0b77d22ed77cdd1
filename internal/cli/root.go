package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/api"
	"github.com/alexanderramin/estimator/internal/llm"
	"github.com/alexanderramin/estimator/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects       service.ProjectService
	Catalog        service.CatalogService
	ProjectModules service.ProjectModuleService
	Rates          service.RateService
	Assignments    service.AssignmentService
	Infrastructure service.InfrastructureService
	Summary        service.SummaryService
	Export         service.ExportService
	Decompose      service.DecomposeService
	Mindmap        service.MindmapService
	Seed           service.SeedService

	// Addr and API configure the serve command.
	Addr   string
	API    api.Options
	Logger *slog.Logger
	// LLM is checked once on serve startup. Nil means heuristics only.
	LLM llm.LLMClient
	// CatalogFile replaces the built-in seed catalog when set.
	CatalogFile string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title, description string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) apiServices() api.Services {
	return api.Services{
		Projects:       a.Projects,
		Catalog:        a.Catalog,
		ProjectModules: a.ProjectModules,
		Rates:          a.Rates,
		Assignments:    a.Assignments,
		Infrastructure: a.Infrastructure,
		Summary:        a.Summary,
		Export:         a.Export,
		Decompose:      a.Decompose,
		Mindmap:        a.Mindmap,
	}
}

// NewRootCmd creates the top-level "estimator" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "estimator",
		Short:         "Project cost estimation from a module catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newSeedCmd(app),
		newCatalogCmd(app),
		newProjectCmd(app),
		newModuleCmd(app),
		newRateCmd(app),
		newAssignCmd(app),
		newInfraCmd(app),
		newSummaryCmd(app),
		newExportCmd(app),
		newDecomposeCmd(app),
		newMindmapCmd(app),
	)

	return root
}
