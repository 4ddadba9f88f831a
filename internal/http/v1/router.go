package v1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	openapi "github.com/Xhst/dssa-multiagent-scheduling/api/openapi"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/ilp"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/runs"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/solver"
)

// Router returns the chi.Router for REST API v1. defaults fills in heuristic
// parameters requests leave unset; optimizer serves the ILP path; runQueue
// serves the asynchronous run endpoints.
func Router(defaults solver.Params, optimizer *ilp.Client, runQueue *runs.Manager) chi.Router {
	api := &scheduleAPI{defaults: defaults, optimizer: optimizer, runs: runQueue}

	r := chi.NewRouter()

	// Docs (Swagger UI) and spec under the versioned prefix
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/v1/openapi.yaml"), // point Swagger UI at our embedded OpenAPI spec
	))
	r.Get("/openapi.yaml", serveOpenAPIStaticAsset)

	// Scheduling endpoints, one per solve method
	r.Post("/schedule/greedy", api.greedy)
	r.Post("/schedule/local_search", api.localSearch)
	r.Post("/schedule/simulated_annealing", api.simulatedAnnealing)
	r.Post("/schedule/ilp", api.ilp)

	// Asynchronous runs: enqueue long solves, poll for results
	r.Post("/schedule/runs", api.enqueueRun)
	r.Get("/schedule/runs/{id}", api.getRun)

	return r
}

func serveOpenAPIStaticAsset(w http.ResponseWriter, r *http.Request) {
	data, err := openapi.FS.ReadFile("v1/dssa.yaml")
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read spec: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(data)
}
