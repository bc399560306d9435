// Package web provides the HTTP server and web UI for SoundWave.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/justestif/soundwave/internal/view"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	sweepInterval = time.Hour
)

// Catalog is the Last.fm surface the web UI needs.
type Catalog interface {
	view.Catalog
	view.DetailSource
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	TemplatesFS fs.FS
	StaticFS    fs.FS
	Catalog     Catalog
	Loader      view.LoaderConfig
	History     SearchHistory // optional
	Logger      zerolog.Logger
}

// Server is the HTTP server for the web application.
type Server struct {
	router    chi.Router
	server    *http.Server
	templates *Templates
	boards    *BoardStore
	handlers  *Handlers
	logger    zerolog.Logger
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	boards := NewBoardStore(view.DefaultLayout())
	loader := view.NewLoader(cfg.Catalog, cfg.Loader, cfg.Logger.With().Str("component", "loader").Logger())
	binder := view.NewBinder(cfg.Catalog, cfg.Logger.With().Str("component", "binder").Logger())
	handlers := NewHandlers(templates, boards, loader, binder, cfg.History, cfg.Logger)

	router := chi.NewRouter()

	s := &Server{
		router:    router,
		templates: templates,
		boards:    boards,
		handlers:  handlers,
		logger:    cfg.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestLogger(&logFormatter{logger: s.logger}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(staticFS fs.FS) {
	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	s.router.Get("/", s.handlers.Home)
	s.router.Get("/healthz", s.handlers.Healthz)

	// HTMX fragments
	s.router.Get("/sections/charts", s.handlers.Charts)
	s.router.Get("/sections/search", s.handlers.Search)
	s.router.Get("/cards/detail", s.handlers.Detail)

	// Account stub
	s.router.Get("/login", s.handlers.LoginPage)
	s.router.Post("/login", s.handlers.Login)
	s.router.Get("/login/forgot", s.handlers.ForgotPassword)
	s.router.Post("/register", s.handlers.Register)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", "http://"+s.server.Addr).Msg("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
// Idle visitor boards are swept while it runs.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

wait:
	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			if n := s.boards.Sweep(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("Swept idle boards")
			}
		case <-stop:
			s.logger.Info().Msg("Shutting down server...")
			break wait
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info().Msg("Server stopped")
	return nil
}

// logFormatter writes chi request logs through zerolog.
type logFormatter struct {
	logger zerolog.Logger
}

func (f *logFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &logEntry{
		logger: f.logger.With().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Logger(),
	}
}

type logEntry struct {
	logger zerolog.Logger
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	event := e.logger.Info()
	if status >= http.StatusInternalServerError {
		event = e.logger.Error()
	}
	event.
		Int("status", status).
		Int("bytes", bytes).
		Dur("elapsed", elapsed).
		Msg("Request")
}

func (e *logEntry) Panic(v any, stack []byte) {
	e.logger.Error().
		Interface("panic", v).
		Bytes("stack", stack).
		Msg("Request panicked")
}
