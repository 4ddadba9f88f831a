// Package runs queues solver executions for asynchronous completion. A large
// simulated-annealing run can take minutes, far past any sane request
// timeout; callers enqueue a run, get its ID straight back, and poll until it
// finishes.
package runs

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/instance"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/solver"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Solve methods accepted by Enqueue. The ILP path is excluded: it already
// lives in an external service and gains nothing from a second queue.
const (
	MethodGreedy             = "greedy"
	MethodLocalSearch        = "local_search"
	MethodSimulatedAnnealing = "simulated_annealing"
)

// ErrQueueFull is returned by Enqueue when all workers are busy and the
// backlog is at capacity.
var ErrQueueFull = errors.New("run queue is full")

// Run is the externally visible state of one queued solve.
type Run struct {
	ID         string          `json:"id"`
	Method     string          `json:"method"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	StartedAt  *time.Time      `json:"startedAt,omitempty"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
	Error      string          `json:"error,omitempty"`
	Solution   solver.Schedule `json:"solution,omitempty"`
	Z          float64         `json:"z,omitempty"`
	Time       float64         `json:"time,omitempty"` // solve wall time in seconds
}

type job struct {
	runID  string
	method string
	inst   *instance.Instance
	params solver.Params
}

// Manager owns the run registry, the pending queue and the worker pool.
type Manager struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	queue chan job
	wg    sync.WaitGroup
}

// NewManager starts workers goroutines draining a queue of queueSize pending
// runs. Non-positive arguments fall back to defaults.
func NewManager(workers, queueSize int) *Manager {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	m := &Manager{
		runs:  make(map[string]*Run),
		queue: make(chan job, queueSize),
	}
	m.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer m.wg.Done()
			for j := range m.queue {
				m.execute(j)
			}
		}()
	}
	return m
}

// Close stops accepting new runs and waits for the workers to drain the
// queue. Enqueue must not be called after Close.
func (m *Manager) Close() {
	close(m.queue)
	m.wg.Wait()
}

// Enqueue registers a run and hands it to the worker pool. The returned Run
// is a snapshot; poll Get for progress.
func (m *Manager) Enqueue(method string, inst *instance.Instance, p solver.Params) (*Run, error) {
	switch method {
	case MethodGreedy, MethodLocalSearch, MethodSimulatedAnnealing:
	default:
		return nil, fmt.Errorf("unknown solve method %q", method)
	}
	r := &Run{
		ID:        uuid.NewString(),
		Method:    method,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.runs[r.ID] = r
	m.mu.Unlock()

	// Snapshot before the send: a worker may pick the job up immediately.
	out := *r
	select {
	case m.queue <- job{runID: r.ID, method: method, inst: inst, params: p}:
	default:
		m.mu.Lock()
		delete(m.runs, r.ID)
		m.mu.Unlock()
		return nil, ErrQueueFull
	}
	return &out, nil
}

// Get returns a snapshot of a run's current state.
func (m *Manager) Get(id string) (*Run, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, false
	}
	out := *r
	return &out, true
}

func (m *Manager) execute(j job) {
	m.setRunning(j.runID)
	start := time.Now()
	s, err := solve(j)
	if err != nil {
		m.setFailed(j.runID, err.Error())
		return
	}
	z := solver.EvaluateCost(s, len(j.inst.Agents))
	m.setSucceeded(j.runID, s, z, time.Since(start).Seconds())
}

func solve(j job) (solver.Schedule, error) {
	capacities := j.inst.Capacities()
	sizes := j.inst.TaskSizes()
	deps := j.inst.Dependencies()
	switch j.method {
	case MethodGreedy:
		return solver.GreedySchedule(capacities, sizes, deps)
	case MethodLocalSearch:
		return solver.LocalSearch(capacities, sizes, deps, j.params)
	case MethodSimulatedAnnealing:
		return solver.SimulatedAnnealing(capacities, sizes, deps, j.params)
	}
	return nil, fmt.Errorf("unknown solve method %q", j.method)
}

func (m *Manager) setRunning(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.runs[id]; ok {
		now := time.Now().UTC()
		r.Status = StatusRunning
		if r.StartedAt == nil {
			r.StartedAt = &now
		}
	}
}

func (m *Manager) setSucceeded(id string, s solver.Schedule, z, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.runs[id]; ok {
		now := time.Now().UTC()
		r.Status = StatusSucceeded
		r.FinishedAt = &now
		r.Solution = s
		r.Z = z
		r.Time = seconds
		r.Error = ""
	}
}

func (m *Manager) setFailed(id string, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.runs[id]; ok {
		now := time.Now().UTC()
		r.Status = StatusFailed
		r.FinishedAt = &now
		r.Error = errMsg
	}
}
