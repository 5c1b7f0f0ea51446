// Package server exposes stored circuits over HTTP.
//
// Routes (all under /v1):
//
//	GET    /version
//	GET    /circuits                  list records, newest first (?limit=)
//	POST   /circuits                  store a circuit (JSON, or Spectre text) (?name=)
//	GET    /circuits/{id}             circuit JSON
//	DELETE /circuits/{id}
//	GET    /circuits/{id}/netlist     netlist text (?dialect=)
//	GET    /circuits/{id}/counts      instance totals per definition
//	GET    /circuits/{id}/graph       dependency graph (?format=dot|svg&detailed=true)
//
// Errors are JSON objects {"error": {"code", "message"}} with a status
// derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netweave/pkg/cache"
	"github.com/matzehuels/netweave/pkg/observability"
	"github.com/matzehuels/netweave/pkg/store"
)

// maxBodyBytes bounds uploaded circuits.
const maxBodyBytes = 10 << 20

// Options configures a [Server].
type Options struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to cached netlists and diagrams.
	TTL time.Duration
	// DefaultDialect is used when a netlist request names none.
	DefaultDialect string
}

// Server is the HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds a server. A nil cache disables caching, a nil logger logs
// nothing.
func New(opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.DefaultDialect == "" {
		opts.DefaultDialect = "spectre"
	}
	s := &Server{opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Route("/circuits", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Get("/netlist", s.handleNetlist)
				r.Get("/counts", s.handleCounts)
				r.Get("/graph", s.handleGraph)
			})
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		hooks.OnResponse(r.Context(), r.Method, routePattern(r), ww.Status(), time.Since(start))
		s.opts.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// routePattern returns the matched chi route, or the raw path when no
// route matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
