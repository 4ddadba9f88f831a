package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/ilp"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/instance"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/runs"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/solver"
)

type scheduleAPI struct {
	defaults  solver.Params
	optimizer *ilp.Client
	runs      *runs.Manager
}

// heuristicParams is the optional per-request parameter override. Pointer
// fields distinguish "absent" from an explicit zero.
type heuristicParams struct {
	MaxIterations *int     `json:"maxIterations,omitempty"`
	MaxMoves      *int     `json:"maxMoves,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	CoolingRate   *float64 `json:"coolingRate,omitempty"`
	Seed          *int64   `json:"seed,omitempty"`
}

func (p *heuristicParams) merge(defaults solver.Params) solver.Params {
	out := defaults
	if p == nil {
		return out
	}
	if p.MaxIterations != nil {
		out.MaxIterations = *p.MaxIterations
	}
	if p.MaxMoves != nil {
		out.MaxMoves = *p.MaxMoves
	}
	if p.Temperature != nil {
		out.Temperature = *p.Temperature
	}
	if p.CoolingRate != nil {
		out.CoolingRate = *p.CoolingRate
	}
	if p.Seed != nil {
		out.Seed = *p.Seed
	}
	return out
}

type scheduleRequest struct {
	Resources  []instance.Resource `json:"resources"`
	Agents     []instance.Agent    `json:"agents"`
	Parameters *heuristicParams    `json:"parameters,omitempty"`
}

type scheduleResponse struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Solution  solver.Schedule `json:"solution"`
	Z         float64         `json:"z"`
	Time      float64         `json:"time"` // solve wall time in seconds
	Colors    []string        `json:"colors"`
	Resources []int           `json:"resources"`
	Tasks     [][]int         `json:"tasks"`
}

// decode parses and validates a schedule request. On failure it writes the
// error response itself and returns ok=false.
func (api *scheduleAPI) decode(w http.ResponseWriter, r *http.Request) (*instance.Instance, solver.Params, bool) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return nil, solver.Params{}, false
	}
	inst := &instance.Instance{Resources: req.Resources, Agents: req.Agents}
	if err := inst.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, solver.Params{}, false
	}
	return inst, req.Parameters.merge(api.defaults), true
}

// greedy handles POST /schedule/greedy
func (api *scheduleAPI) greedy(w http.ResponseWriter, r *http.Request) {
	inst, _, ok := api.decode(w, r)
	if !ok {
		return
	}
	start := time.Now()
	s, err := solver.GreedySchedule(inst.Capacities(), inst.TaskSizes(), inst.Dependencies())
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeSolution(w, inst, "Greedy", s, time.Since(start))
}

// localSearch handles POST /schedule/local_search
func (api *scheduleAPI) localSearch(w http.ResponseWriter, r *http.Request) {
	inst, params, ok := api.decode(w, r)
	if !ok {
		return
	}
	start := time.Now()
	s, err := solver.LocalSearch(inst.Capacities(), inst.TaskSizes(), inst.Dependencies(), params)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeSolution(w, inst, "Local Search", s, time.Since(start))
}

// simulatedAnnealing handles POST /schedule/simulated_annealing
func (api *scheduleAPI) simulatedAnnealing(w http.ResponseWriter, r *http.Request) {
	inst, params, ok := api.decode(w, r)
	if !ok {
		return
	}
	start := time.Now()
	s, err := solver.SimulatedAnnealing(inst.Capacities(), inst.TaskSizes(), inst.Dependencies(), params)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeSolution(w, inst, "Simulated Annealing", s, time.Since(start))
}

// ilp handles POST /schedule/ilp by forwarding the instance to the external
// optimizer.
func (api *scheduleAPI) ilp(w http.ResponseWriter, r *http.Request) {
	inst, _, ok := api.decode(w, r)
	if !ok {
		return
	}
	start := time.Now()
	result, err := api.optimizer.Solve(r.Context(), inst)
	if err != nil {
		if errors.Is(err, ilp.ErrNoOptimizer) {
			http.Error(w, "no ILP optimizer configured", http.StatusBadGateway)
			return
		}
		http.Error(w, fmt.Sprintf("optimizer: %v", err), http.StatusBadGateway)
		return
	}
	log.Printf("scheduleapi: optimizer reported z=%v", result.Z)
	writeSolution(w, inst, "ILP", result.Solution, time.Since(start))
}

// writeSolveError maps engine failures to status codes: an incomplete greedy
// construction means the instance cannot be scheduled as given (422);
// anything else at this point is unexpected.
func writeSolveError(w http.ResponseWriter, err error) {
	var inc *solver.IncompleteError
	if errors.As(err, &inc) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, fmt.Sprintf("solve failed: %v", err), http.StatusInternalServerError)
}

func writeSolution(w http.ResponseWriter, inst *instance.Instance, method string, s solver.Schedule, elapsed time.Duration) {
	resp := scheduleResponse{
		ID:        uuid.NewString(),
		Method:    method,
		Solution:  s,
		Z:         solver.EvaluateCost(s, len(inst.Agents)),
		Time:      elapsed.Seconds(),
		Colors:    inst.Colors(),
		Resources: inst.Capacities(),
		Tasks:     inst.TaskSizes(),
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
