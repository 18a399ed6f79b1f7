// Package api serves a finalized lineage ledger over HTTP.
//
// # Routes
//
//	GET /healthz                            liveness and ledger size
//	GET /individuals/{id}                   one individual
//	GET /individuals/{id}/ancestors         ancestry in BFS order (?max_depth=)
//	GET /individuals/{id}/layout            tree coordinates of the ancestry
//	GET /individuals/{id}/tree              rendered ancestry (?format=svg|png|dot)
//	GET /generations/{g}                    individuals created in generation g
//	GET /metrics                            Prometheus metrics, when configured
//
// The ledger must not be modified while a [Server] uses it.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/pipeline"
)

// Server answers queries against one ledger.
type Server struct {
	ledger  *lineage.Ledger
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics http.Handler
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunner sets the runner used for queries and renders, and with it the
// artifact cache.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New creates a server for ledger.
func New(ledger *lineage.Ledger, opts ...Option) *Server {
	s := &Server{ledger: ledger, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Route("/individuals/{id}", func(r chi.Router) {
		r.Get("/", s.individual)
		r.Get("/ancestors", s.ancestors)
		r.Get("/layout", s.layout)
		r.Get("/tree", s.tree)
	})
	r.Get("/generations/{g}", s.generation)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving ledger", "addr", addr, "individuals", s.ledger.Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func pathID(r *http.Request) (lineage.ID, error) {
	raw := chi.URLParam(r, "id")
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !lineage.ID(v).Valid() {
		return lineage.NoID, errors.New(errors.ErrCodeInvalidInput, "invalid individual id %q", raw)
	}
	return lineage.ID(v), nil
}

func maxDepth(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("max_depth")
	if raw == "" {
		return -1, nil
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "max_depth must be a non-negative integer, got %q", raw)
	}
	return d, nil
}

// ancestry resolves the ancestry named by the request path and query.
func (s *Server) ancestry(r *http.Request) (lineage.Ancestry, error) {
	id, err := pathID(r)
	if err != nil {
		return lineage.Ancestry{}, err
	}
	depth, err := maxDepth(r)
	if err != nil {
		return lineage.Ancestry{}, err
	}
	return s.runner.Ancestors(r.Context(), s.ledger, id, depth)
}
