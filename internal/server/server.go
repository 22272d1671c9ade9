// Package server exposes the lookup tools as a JSON HTTP API, one controller
// per tool.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/tbckr/lookupkit/internal/lookup"
	"github.com/tbckr/lookupkit/internal/tools"
	"github.com/tbckr/lookupkit/internal/validate"
)

// Server routes requests to the per-tool controllers.
type Server struct {
	router      chi.Router
	logger      *slog.Logger
	defs        map[string]tools.Definition
	controllers map[string]*lookup.Controller
	// lookups outlive the HTTP request that submitted them.
	lookupCtx context.Context
}

// New creates a Server with one controller for each tool. ctx bounds every
// lookup submitted through the server.
func New(ctx context.Context, defs []tools.Definition, validator *validate.Validator, requester lookup.Requester, logger *slog.Logger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		defs:        make(map[string]tools.Definition, len(defs)),
		controllers: make(map[string]*lookup.Controller, len(defs)),
		lookupCtx:   ctx,
	}
	for _, d := range defs {
		s.defs[d.Name] = d
		s.controllers[d.Name] = lookup.New(d.Tool, validator, requester, logger)
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/healthz", s.handleHealth())
	s.router.Route("/api/tools", func(r chi.Router) {
		r.Get("/", s.handleList())
		r.Route("/{tool}", func(r chi.Router) {
			r.Use(s.toolCtx)
			r.Get("/", s.handleDescribe())
			r.Get("/state", s.handleState())
			r.Post("/submit", s.handleSubmit())
			r.Get("/events", s.handleEvents())
		})
	})
}

// Start serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
