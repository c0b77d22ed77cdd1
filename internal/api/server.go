package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alexanderramin/estimator/internal/service"
)

// Services bundles the use cases the HTTP API exposes.
type Services struct {
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
}

// DefaultRequestTimeout caps a request when no LLM timeout is known.
const DefaultRequestTimeout = 60 * time.Second

// requestTimeoutMargin covers the catalog reads and response encoding that
// surround a model call.
const requestTimeoutMargin = 15 * time.Second

// RequestTimeoutFor returns a request cap long enough for one model call of
// the given timeout, never below DefaultRequestTimeout.
func RequestTimeoutFor(llmTimeout time.Duration) time.Duration {
	return max(DefaultRequestTimeout, llmTimeout+requestTimeoutMargin)
}

// Options configures the router.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Server represents the HTTP API server
type Server struct {
	svc    Services
	opts   Options
	logger *slog.Logger
	router *chi.Mux
}

// NewServer creates a new API server
func NewServer(svc Services, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	s := &Server{svc: svc, opts: opts, logger: logger}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/modules", func(r chi.Router) {
			r.Get("/", s.handleListModules)
			r.Post("/", s.handleCreateModule)
			r.Get("/{code}", s.handleGetModule)
			r.Put("/{code}", s.handleUpdateModule)
			r.Delete("/{code}", s.handleDeleteModule)
		})

		r.Route("/rates", func(r chi.Router) {
			r.Get("/", s.handleListRates)
			r.Put("/", s.handleSetRates)
			r.Delete("/{role}/{level}", s.handleDeleteRate)
		})

		r.Route("/infrastructure", func(r chi.Router) {
			r.Get("/", s.handleListInfraItems)
			r.Post("/", s.handleCreateInfraItem)
			r.Delete("/{id}", s.handleDeleteInfraItem)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/parse", s.handleAIParse)
			r.Post("/mindmap", s.handleAIMindmap)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.handleGetProject)
				r.Put("/", s.handleUpdateProject)
				r.Delete("/", s.handleDeleteProject)

				r.Get("/modules", s.handleListProjectModules)
				r.Post("/modules", s.handleAttachModule)
				r.Patch("/modules/{pmID}", s.handleUpdateProjectModule)
				r.Delete("/modules/{pmID}", s.handleDetachModule)

				r.Get("/assignments", s.handleListAssignments)
				r.Post("/assignments", s.handleAssign)
				r.Delete("/assignments/{pmID}/{role}", s.handleUnassign)

				r.Get("/infrastructure", s.handleListInfraLines)
				r.Post("/infrastructure", s.handleAddInfraLine)
				r.Patch("/infrastructure/{lineID}", s.handleSetInfraQuantity)
				r.Delete("/infrastructure/{lineID}", s.handleRemoveInfraLine)

				r.Get("/summary", s.handleSummary)
				r.Get("/export.csv", s.handleExportCSV)

				r.Route("/mindmap", func(r chi.Router) {
					r.Get("/", s.handleMindmapState)
					r.Post("/nodes", s.handleAddNode)
					r.Post("/notes", s.handleAddNote)
					r.Post("/connections", s.handleConnect)
					r.Post("/apply", s.handleApplySnapshot)
					r.Post("/apply-graph", s.handleApplyGraph)
					r.Get("/versions", s.handleListVersions)
					r.Post("/versions", s.handleSaveVersion)
					r.Get("/versions/{versionID}", s.handleGetVersion)
					r.Post("/versions/{versionID}/apply", s.handleApplyVersion)
				})
			})
		})
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
