// Package httpserver builds the root router of the scheduling service.
package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/config"
	v1 "github.com/Xhst/dssa-multiagent-scheduling/internal/http/v1"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/ilp"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/runs"
)

// NewServer builds the root router and mounts all versioned subrouters under /api/{version}.
func NewServer(cfg config.Config) http.Handler {
	timeout := time.Duration(cfg.RequestTimeoutMS) * time.Millisecond

	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(allowAllCORS)

	// Root-level docs: redirect to Swagger UI for v1
	r.Get("/docs", serveRootDocs)

	// Default 404: nudge callers toward versioned paths
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Use a versioned path like /api/v1/schedule/greedy","supported":["v1"]}`))
	})

	optimizer := ilp.NewClient(cfg.OptimizerURL, timeout)
	runQueue := runs.NewManager(cfg.SolveWorkers, cfg.RunQueueSize)

	// Mount versioned APIs
	r.Route("/api", func(api chi.Router) {
		api.Mount("/v1", v1.Router(cfg.Solver.Params(), optimizer, runQueue))
	})

	return r
}

// allowAllCORS admits any origin. The schedule editor UI is served from a
// separate origin, so the API answers cross-origin requests and their
// preflights unconditionally.
func allowAllCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// serveRootDocs redirects to the Swagger UI of the latest GA API version.
func serveRootDocs(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/v1/docs/index.html", http.StatusFound)
}
