// Package server exposes the Smart Exit pages and the form builder API over
// HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-smartexit/internal/directory"
	"github.com/goliatone/go-smartexit/pkg/builder"
	"github.com/goliatone/go-smartexit/pkg/fieldtypes"
	"github.com/goliatone/go-smartexit/pkg/render/template/pongo"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// BuilderPath is the mount point of the form builder page and its API.
const BuilderPath = "/hr/queries/create"

// Option configures a Server.
type Option func(*Server)

// WithSession serves an existing builder session.
func WithSession(session *builder.Session) Option {
	return func(s *Server) {
		if session != nil {
			s.session = session
		}
	}
}

// WithScheduler enables interview booking. Without it the meetings endpoint
// answers 503.
func WithScheduler(sched *scheduler.Scheduler) Option {
	return func(s *Server) {
		s.scheduler = sched
	}
}

// WithEmployees replaces the sample resignation list.
func WithEmployees(employees []directory.Employee) Option {
	return func(s *Server) {
		if employees != nil {
			s.employees = employees
		}
	}
}

// WithLogger sets the request and handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme applies a resolved theme to builder previews.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithFieldTypes sets the registry listed by the types endpoint.
func WithFieldTypes(reg *fieldtypes.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.types = reg
		}
	}
}

// Server routes HR pages and builder requests.
type Server struct {
	session   *builder.Session
	scheduler *scheduler.Scheduler
	employees []directory.Employee
	types     *fieldtypes.Registry
	theme     *theme.RendererConfig
	logger    *zap.Logger
	pages     *pongo.Engine
	router    *mux.Router
}

// New builds a server with the sample directory and a fresh builder session
// unless options say otherwise.
func New(options ...Option) (*Server, error) {
	s := &Server{
		employees: directory.Sample(),
		types:     fieldtypes.Default(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.session == nil {
		s.session = builder.New(builder.WithLogger(s.logger))
	}

	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: templates: %w", err)
	}
	pages, err := pongo.New(
		pongo.WithFS(templates),
		pongo.WithGlobalData(map[string]any{"appName": directory.AppName}),
	)
	if err != nil {
		return nil, fmt.Errorf("server: template engine: %w", err)
	}
	s.pages = pages
	s.router = s.routes()
	return s, nil
}

// Handler returns the routed handler with request logging and recovery.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	m := mux.NewRouter()
	m.Use(requestIDMiddleware, s.loggingMiddleware, s.recoveryMiddleware)

	m.Path("/").Methods(http.MethodGet).HandlerFunc(s.handleResignations)
	m.Path("/dashboard").Methods(http.MethodGet).HandlerFunc(s.handleDashboard)
	m.Path("/hr/offboarding").Methods(http.MethodGet).HandlerFunc(s.handleOffboarding)
	m.Path("/hr/offboarding/meetings").Methods(http.MethodPost).HandlerFunc(s.handleScheduleMeeting)

	m.Path(BuilderPath).Methods(http.MethodGet).HandlerFunc(s.handleBuilder)
	b := m.PathPrefix(BuilderPath).Subrouter()
	b.Path("/types").Methods(http.MethodGet).HandlerFunc(s.handleTypes)
	b.Path("/fields").Methods(http.MethodGet).HandlerFunc(s.handleListFields)
	b.Path("/fields").Methods(http.MethodPost).HandlerFunc(s.handleAddField)
	b.Path("/fields/{id}").Methods(http.MethodPatch).HandlerFunc(s.handleUpdateField)
	b.Path("/fields/{id}").Methods(http.MethodDelete).HandlerFunc(s.handleRemoveField)
	b.Path("/fields/{id}/date-range").Methods(http.MethodPut).HandlerFunc(s.handleSetDateRange)
	b.Path("/preview").Methods(http.MethodGet).HandlerFunc(s.handlePreview)
	b.Path("/export").Methods(http.MethodGet).HandlerFunc(s.handleExport)
	b.Path("/import").Methods(http.MethodPost).HandlerFunc(s.handleImport)
	b.Path("/save").Methods(http.MethodPost).HandlerFunc(s.handleSave)
	b.Path("/schema").Methods(http.MethodGet).HandlerFunc(s.handleSchema)
	b.Path("/validate").Methods(http.MethodGet).HandlerFunc(s.handleValidate)

	m.NotFoundHandler = requestIDMiddleware(s.loggingMiddleware(http.HandlerFunc(s.handleNotFound)))
	return m
}

// ListenAndServe runs srv until ctx is canceled, then shuts it down within
// shutdownTimeout.
func ListenAndServe(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
