// Package server exposes the composition engine over HTTP: the inventory
// application posts a record and gets the printable act back, inline or
// stored for later retrieval.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ByLCY/acta/acta"
	"github.com/ByLCY/acta/renderer"
	"github.com/ByLCY/acta/sink"
)

const (
	requestTimeout    = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 45 * time.Second
	maxRecordBytes    = 1 << 20
)

// Deps are the collaborators injected by main.
type Deps struct {
	// Backends by name; DefaultBackend picks one when ?backend is absent.
	Backends       map[string]renderer.Backend
	DefaultBackend string
	Compose        acta.Options
	// Store receives documents when ?store=1. Nil makes those requests
	// answer 503 PRINT_UNAVAILABLE.
	Store sink.Sink
	// Ready checks external dependencies for /ready.
	Ready  func(context.Context) error
	Logger *slog.Logger
}

// Server wraps the chi router and the http.Server.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	deps       Deps
	log        *slog.Logger
}

// New validates deps and registers the routes.
func New(addr string, deps Deps) (*Server, error) {
	if len(deps.Backends) == 0 {
		return nil, fmt.Errorf("server: no rendering backend")
	}
	if _, ok := deps.Backends[deps.DefaultBackend]; !ok {
		return nil, fmt.Errorf("server: default backend %q not registered", deps.DefaultBackend)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{deps: deps, log: logger}

	r := chi.NewRouter()
	r.Use(RequestID())
	r.Use(StructuredLogger(logger))
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(PanicRecovery(logger))
	r.Use(chimw.CleanPath)

	r.Get("/health", s.liveness)
	r.Get("/ready", s.readiness)
	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/flavors", s.listFlavors)
		api.Get("/backends", s.listBackends)
		api.Post("/actas/{flavor}", s.printActa)
		api.Post("/actas/{flavor}/layout", s.layoutActa)
	})
	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) backendNames() []string {
	names := make([]string, 0, len(s.deps.Backends))
	for n := range s.deps.Backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
