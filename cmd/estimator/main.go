package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/estimator/internal/api"
	"github.com/alexanderramin/estimator/internal/cli"
	"github.com/alexanderramin/estimator/internal/config"
	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/intelligence"
	"github.com/alexanderramin/estimator/internal/llm"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/alexanderramin/estimator/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	moduleRepo := repository.NewSQLiteCatalogRepo(database)
	projectModuleRepo := repository.NewSQLiteProjectModuleRepo(database)
	rateRepo := repository.NewSQLiteRateRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	itemRepo := repository.NewSQLiteInfrastructureItemRepo(database)
	lineRepo := repository.NewSQLiteProjectInfrastructureRepo(database)
	mindmapRepo := repository.NewSQLiteMindmapRepo(database)
	versionRepo := repository.NewSQLiteMindmapVersionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	// The decomposer falls back to catalog heuristics without a model.
	var llmClient llm.LLMClient
	if cfg.LLM.Configured() {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			llmObserver = llm.NewLogObserver(logger)
		}
		llmClient = llm.NewChatClient(cfg.LLM, llmObserver)
	}
	engine := intelligence.NewDecomposeService(llmClient, logger)

	app := &cli.App{
		Projects:       service.NewProjectService(projectRepo),
		Catalog:        service.NewCatalogService(moduleRepo, uow),
		ProjectModules: service.NewProjectModuleService(projectRepo, moduleRepo, projectModuleRepo),
		Rates:          service.NewRateService(rateRepo),
		Assignments:    service.NewAssignmentService(projectModuleRepo, assignmentRepo),
		Infrastructure: service.NewInfrastructureService(projectRepo, itemRepo, lineRepo),
		Summary:        service.NewSummaryService(cfg.Estimate, projectRepo, projectModuleRepo, rateRepo, assignmentRepo, lineRepo, observer),
		Export:         service.NewExportService(cfg.Estimate, projectRepo, projectModuleRepo, rateRepo, assignmentRepo, lineRepo, observer),
		Decompose:      service.NewDecomposeService(moduleRepo, engine, observer),
		Mindmap:        service.NewMindmapService(projectRepo, moduleRepo, mindmapRepo, versionRepo, uow, observer),
		Seed:           service.NewSeedService(uow, observer),

		Addr: cfg.Addr,
		LLM:  llmClient,
		API: api.Options{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: api.RequestTimeoutFor(time.Duration(cfg.LLM.TaskTimeout(llm.TaskDecompose)) * time.Millisecond),
		},
		Logger:      logger,
		CatalogFile: cfg.CatalogFile,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
