package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/instance"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/runs"
)

// runRequest is a schedule request plus the solve method to queue.
type runRequest struct {
	Method     string              `json:"method"`
	Resources  []instance.Resource `json:"resources"`
	Agents     []instance.Agent    `json:"agents"`
	Parameters *heuristicParams    `json:"parameters,omitempty"`
}

// enqueueRun handles POST /schedule/runs. The response is the queued run
// snapshot; poll GET /schedule/runs/{id} for the result.
func (api *scheduleAPI) enqueueRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	inst := &instance.Instance{Resources: req.Resources, Agents: req.Agents}
	if err := inst.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	run, err := api.runs.Enqueue(req.Method, inst, req.Parameters.merge(api.defaults))
	if err != nil {
		if errors.Is(err, runs.ErrQueueFull) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeRun(w, http.StatusAccepted, run)
}

// getRun handles GET /schedule/runs/{id}.
func (api *scheduleAPI) getRun(w http.ResponseWriter, r *http.Request) {
	run, ok := api.runs.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	writeRun(w, http.StatusOK, run)
}

func writeRun(w http.ResponseWriter, status int, run *runs.Run) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(run); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
