package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/estimator/internal/estimate"
	"github.com/alexanderramin/estimator/internal/intelligence"
	"github.com/alexanderramin/estimator/internal/llm"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/alexanderramin/estimator/internal/service"
	"github.com/alexanderramin/estimator/internal/testutil"
)

func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	projects := repository.NewSQLiteProjectRepo(database)
	modules := repository.NewSQLiteCatalogRepo(database)
	projectModules := repository.NewSQLiteProjectModuleRepo(database)
	rates := repository.NewSQLiteRateRepo(database)
	assignments := repository.NewSQLiteAssignmentRepo(database)
	items := repository.NewSQLiteInfrastructureItemRepo(database)
	lines := repository.NewSQLiteProjectInfrastructureRepo(database)
	cfg := estimate.DefaultConfig()

	return &App{
		Projects:       service.NewProjectService(projects),
		Catalog:        service.NewCatalogService(modules, uow),
		ProjectModules: service.NewProjectModuleService(projects, modules, projectModules),
		Rates:          service.NewRateService(rates),
		Assignments:    service.NewAssignmentService(projectModules, assignments),
		Infrastructure: service.NewInfrastructureService(projects, items, lines),
		Summary:        service.NewSummaryService(cfg, projects, projectModules, rates, assignments, lines),
		Export:         service.NewExportService(cfg, projects, projectModules, rates, assignments, lines),
		Decompose:      service.NewDecomposeService(modules, intelligence.NewDecomposeService(nil, nil)),
		Mindmap: service.NewMindmapService(projects, modules,
			repository.NewSQLiteMindmapRepo(database), repository.NewSQLiteMindmapVersionRepo(database), uow),
		Seed: service.NewSeedService(uow),
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "estimator %v", args)
	return out
}

func TestSeedCmd_Idempotent(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "seed")
	assert.Contains(t, out, "Seeded 15 modules (0 already present)")

	out = mustExecute(t, app, "seed")
	assert.Contains(t, out, "Seeded 0 modules (15 already present), 0 rates")

	out = mustExecute(t, app, "catalog", "list")
	assert.Contains(t, out, "catalog")
	assert.Contains(t, out, "payments")
}

func TestSeedCmd_FromFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
modules:
  - code: Landing
    name: Landing page
    hours: {frontend: 4, backend: 1, qa: 1}
`), 0o644))

	out := mustExecute(t, app, "seed", "--file", path)
	assert.Contains(t, out, "Seeded 1 modules")

	out = mustExecute(t, app, "catalog", "show", "landing")
	assert.Contains(t, out, "Landing page")
}

func TestCatalogCmd_AddAndRemove(t *testing.T) {
	app := testApp(t)

	mustExecute(t, app, "catalog", "add", "--code", "billing", "--name", "Billing",
		"--frontend", "2", "--backend", "8", "--qa", "1", "--role-hours", "pm=3")
	out := mustExecute(t, app, "catalog", "show", "billing")
	assert.Contains(t, out, "Billing")
	assert.Contains(t, out, "pm")

	_, err := executeCmd(t, app, "catalog", "add", "--code", "billing", "--name", "Again")
	assert.True(t, service.IsConflict(err))

	mustExecute(t, app, "catalog", "remove", "billing")
	_, err = executeCmd(t, app, "catalog", "show", "billing")
	assert.True(t, service.IsNotFound(err))
}

func TestCatalogCmd_RemoveAttachedModuleFails(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "seed")
	mustExecute(t, app, "project", "add", "--name", "Shop")
	mustExecute(t, app, "module", "attach", "Shop", "catalog")

	_, err := executeCmd(t, app, "catalog", "remove", "catalog")
	assert.True(t, service.IsConflict(err))
}

func TestProjectFlow_SummaryAndExport(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "seed")

	out := mustExecute(t, app, "project", "add", "--name", "Shop", "--description", "Online store")
	assert.Contains(t, out, "Created project Shop")

	mustExecute(t, app, "module", "attach", "Shop", "catalog")
	mustExecute(t, app, "module", "override", "Shop", "catalog", "--qa", "0", "--name", "Shop catalog")
	mustExecute(t, app, "assign", "set", "Shop", "catalog", "frontend", "senior")
	mustExecute(t, app, "infra", "item", "add", "--code", "vps", "--name", "VPS", "--unit-cost", "1000")
	mustExecute(t, app, "infra", "add", "Shop", "vps", "--qty", "2")

	out = mustExecute(t, app, "module", "list", "Shop")
	assert.Contains(t, out, "Shop catalog")

	out = mustExecute(t, app, "assign", "list", "Shop")
	assert.Contains(t, out, "senior")

	out = mustExecute(t, app, "summary", "Shop")
	assert.Contains(t, out, "Shop")
	assert.Contains(t, out, "2 000.00")
	assert.Contains(t, out, "189 200.00")

	out = mustExecute(t, app, "export", "Shop")
	assert.Contains(t, out, "Shop catalog;frontend;senior;12.00;6500.00;78000.00")
	assert.Contains(t, out, "VPS;2;1000.00;2000.00")

	path := filepath.Join(t.TempDir(), "shop.csv")
	mustExecute(t, app, "export", "Shop", "--out", path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "VPS;2;1000.00;2000.00")

	mustExecute(t, app, "infra", "set-qty", "Shop", "vps", "3")
	out = mustExecute(t, app, "infra", "list", "Shop")
	assert.Contains(t, out, "3")

	mustExecute(t, app, "module", "override", "Shop", "catalog", "--clear")
	out = mustExecute(t, app, "export", "Shop", "--table")
	assert.Contains(t, out, "Каталог")
}

func TestModuleCmd_DetachAndUnknownProject(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "seed")
	mustExecute(t, app, "project", "add", "--name", "Shop")
	mustExecute(t, app, "module", "attach", "Shop", "auth", "cart")

	mustExecute(t, app, "module", "detach", "Shop", "auth")
	out := mustExecute(t, app, "module", "list", "Shop")
	assert.NotContains(t, out, "auth")
	assert.Contains(t, out, "cart")

	_, err := executeCmd(t, app, "module", "list", "Nope")
	assert.ErrorContains(t, err, "project not found")
}

func TestRateCmd(t *testing.T) {
	app := testApp(t)

	mustExecute(t, app, "rate", "set", "frontend", "lead", "9000")
	out := mustExecute(t, app, "rate", "list")
	assert.Contains(t, out, "lead")
	assert.Contains(t, out, "9 000.00")

	_, err := executeCmd(t, app, "rate", "set", "frontend", "lead", "abc")
	assert.ErrorContains(t, err, "invalid amount")

	mustExecute(t, app, "rate", "remove", "frontend", "lead")
	out = mustExecute(t, app, "rate", "list")
	assert.Contains(t, out, "No rates defined.")
}

func TestProjectRemove_RequiresConfirmation(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "project", "add", "--name", "Shop")

	_, err := executeCmd(t, app, "project", "remove", "Shop")
	assert.ErrorIs(t, err, errConfirmationRequired)

	app.IsInteractive = func() bool { return true }
	app.Confirm = func(string, string) (bool, error) { return false, nil }
	mustExecute(t, app, "project", "remove", "Shop")
	out := mustExecute(t, app, "project", "list")
	assert.Contains(t, out, "Shop")

	app.Confirm = func(string, string) (bool, error) { return true, nil }
	mustExecute(t, app, "project", "remove", "Shop")
	out = mustExecute(t, app, "project", "list")
	assert.Contains(t, out, "No projects yet.")
}

func TestDecomposeCmd(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "seed")

	out := mustExecute(t, app, "decompose", "Нужен", "каталог", "товаров", "и", "поиск")
	assert.Contains(t, out, "HEURISTIC")
	assert.Contains(t, out, "catalog")
	assert.Contains(t, out, "search")

	out = mustExecute(t, app, "decompose", "--tree", "Нужен каталог")
	assert.Contains(t, out, "└─")
}

func TestMindmapCmd_EditSaveApply(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "seed")
	mustExecute(t, app, "project", "add", "--name", "Shop")

	out := mustExecute(t, app, "mindmap", "show", "Shop")
	assert.Contains(t, out, "Mindmap is empty.")

	mustExecute(t, app, "mindmap", "node", "Shop", "Storefront")
	mustExecute(t, app, "mindmap", "node", "Shop", "Checkout", "--module", "cart", "--parent", "Storefront", "--backend", "4")
	mustExecute(t, app, "mindmap", "note", "Shop", "ask", "about", "payments")

	out = mustExecute(t, app, "mindmap", "show", "Shop")
	assert.Contains(t, out, "Storefront")
	assert.Contains(t, out, "Checkout")
	assert.Contains(t, out, "ask about payments")

	mustExecute(t, app, "mindmap", "save", "Shop", "--title", "first draft")
	out = mustExecute(t, app, "mindmap", "versions", "Shop")
	assert.Contains(t, out, "first draft")

	_, err := executeCmd(t, app, "mindmap", "generate", "Shop", "каталог")
	assert.ErrorIs(t, err, errConfirmationRequired)

	out = mustExecute(t, app, "mindmap", "generate", "Shop", "каталог", "--yes")
	assert.NotContains(t, out, "Storefront")

	versions, err := app.Mindmap.ListVersions(context.Background(), mustProjectID(t, app, "Shop"))
	require.NoError(t, err)
	require.Len(t, versions, 1)

	out = mustExecute(t, app, "mindmap", "apply", "Shop", versions[0].ID[:8], "--yes")
	assert.Contains(t, out, "Storefront")
	assert.Contains(t, out, "Checkout")
}

func mustProjectID(t *testing.T, app *App, name string) string {
	t.Helper()
	id, err := resolveProjectID(context.Background(), app, name)
	require.NoError(t, err)
	return id
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}

	id, err := resolveID("project", "abc123", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = resolveID("project", "x", ids)
	require.NoError(t, err)
	assert.Equal(t, "xyz789", id)

	_, err = resolveID("project", "ab", ids)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveID("project", "q", ids)
	assert.ErrorContains(t, err, "not found")

	_, err = resolveID("project", "", ids)
	assert.ErrorContains(t, err, "required")
}

func TestRunServer_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, slog.New(slog.NewTextHandler(io.Discard, nil))) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

type stubLLM struct{ up bool }

func (s stubLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return nil, context.Canceled
}

func (s stubLLM) Available(context.Context) bool { return s.up }

func TestLogLLMStatus(t *testing.T) {
	tests := []struct {
		name   string
		client llm.LLMClient
		want   string
	}{
		{"not configured", nil, "llm not configured"},
		{"available", stubLLM{up: true}, "llm endpoint available"},
		{"unreachable", stubLLM{up: false}, "level=WARN msg=\"llm endpoint unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logLLMStatus(context.Background(), tt.client, slog.New(slog.NewTextHandler(&buf, nil)))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
