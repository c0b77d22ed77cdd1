package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/alexanderramin/estimator/internal/testutil"
)

type testRepos struct {
	db             *sql.DB
	uow            db.UnitOfWork
	projects       *repository.SQLiteProjectRepo
	modules        *repository.SQLiteCatalogRepo
	projectModules *repository.SQLiteProjectModuleRepo
	rates          *repository.SQLiteRateRepo
	assignments    *repository.SQLiteAssignmentRepo
	items          *repository.SQLiteInfrastructureItemRepo
	lines          *repository.SQLiteProjectInfrastructureRepo
	mindmaps       *repository.SQLiteMindmapRepo
	versions       *repository.SQLiteMindmapVersionRepo
}

func setupRepos(t *testing.T) *testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testRepos{
		db:             database,
		uow:            testutil.NewTestUoW(database),
		projects:       repository.NewSQLiteProjectRepo(database),
		modules:        repository.NewSQLiteCatalogRepo(database),
		projectModules: repository.NewSQLiteProjectModuleRepo(database),
		rates:          repository.NewSQLiteRateRepo(database),
		assignments:    repository.NewSQLiteAssignmentRepo(database),
		items:          repository.NewSQLiteInfrastructureItemRepo(database),
		lines:          repository.NewSQLiteProjectInfrastructureRepo(database),
		mindmaps:       repository.NewSQLiteMindmapRepo(database),
		versions:       repository.NewSQLiteMindmapVersionRepo(database),
	}
}

func (r *testRepos) summaryService() SummaryService {
	return NewSummaryService(estimate.DefaultConfig(), r.projects, r.projectModules, r.rates, r.assignments, r.lines)
}

func (r *testRepos) exportService() ExportService {
	return NewExportService(estimate.DefaultConfig(), r.projects, r.projectModules, r.rates, r.assignments, r.lines)
}

func (r *testRepos) mindmapService(uow db.UnitOfWork) MindmapService {
	if uow == nil {
		uow = r.uow
	}
	return NewMindmapService(r.projects, r.modules, r.mindmaps, r.versions, uow)
}

// seedProjectModule stores a project with one attached module.
func seedProjectModule(t *testing.T, r *testRepos, module *domain.CatalogEntry) (*domain.Project, *domain.ProjectModule) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Storefront")
	require.NoError(t, r.projects.Create(ctx, proj))
	require.NoError(t, r.modules.Create(ctx, module))
	pm := testutil.NewTestProjectModule(proj.ID, module.ID)
	require.NoError(t, r.projectModules.Create(ctx, pm))
	return proj, pm
}
