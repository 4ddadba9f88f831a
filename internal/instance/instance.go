// Package instance models a complete scheduling problem the way the REST API
// and the benchmark tools exchange it: slot capacities plus per-agent task
// lists with same-agent dependencies. It converts that shape into the flat
// numeric inputs the solver consumes and validates it at the boundary,
// including the dependency cycle check the engine itself deliberately skips.
package instance

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gammazero/toposort"
)

// Task is one unit of work in an agent's private task list. ID doubles as
// the task's index within the agent; dependencies reference IDs of the same
// agent only.
type Task struct {
	ID           int   `json:"id"`
	Size         int   `json:"size"`
	Dependencies []int `json:"dependencies"`
}

// Agent owns an ordered list of tasks. Tasks are never shared across agents.
type Agent struct {
	ID    int    `json:"id"`
	Color string `json:"color,omitempty"`
	Tasks []Task `json:"tasks"`
}

// Resource is the capacity of one discrete time slot; its position in the
// resource list is the slot's identity.
type Resource struct {
	ID   int `json:"id"`
	Size int `json:"size"`
}

// Instance is a complete scheduling problem.
type Instance struct {
	Name      string     `json:"name,omitempty"`
	Seed      int64      `json:"seed,omitempty"`
	Resources []Resource `json:"resources"`
	Agents    []Agent    `json:"agents"`
}

// Capacities returns the per-slot capacity sequence.
func (inst *Instance) Capacities() []int {
	caps := make([]int, len(inst.Resources))
	for i, r := range inst.Resources {
		caps[i] = r.Size
	}
	return caps
}

// TaskSizes returns per-agent task size lists, indexed by agent then task.
func (inst *Instance) TaskSizes() [][]int {
	sizes := make([][]int, len(inst.Agents))
	for a, agent := range inst.Agents {
		sizes[a] = make([]int, len(agent.Tasks))
		for i, task := range agent.Tasks {
			sizes[a][i] = task.Size
		}
	}
	return sizes
}

// Dependencies returns per-agent dependency lists parallel to TaskSizes.
func (inst *Instance) Dependencies() [][][]int {
	deps := make([][][]int, len(inst.Agents))
	for a, agent := range inst.Agents {
		deps[a] = make([][]int, len(agent.Tasks))
		for i, task := range agent.Tasks {
			deps[a][i] = task.Dependencies
		}
	}
	return deps
}

// Colors returns the display color of each agent, in agent order.
func (inst *Instance) Colors() []string {
	colors := make([]string, len(inst.Agents))
	for a, agent := range inst.Agents {
		colors[a] = agent.Color
	}
	return colors
}

// NumTasks returns the total task count across agents.
func (inst *Instance) NumTasks() int {
	n := 0
	for _, agent := range inst.Agents {
		n += len(agent.Tasks)
	}
	return n
}

// Validate checks the instance at the API boundary: at least one resource
// and one agent, task IDs matching their list positions, positive sizes,
// non-negative capacities, in-range dependency references, and acyclic
// dependency sets. The solver's own contract assumes acyclic input, so the
// cycle check lives here.
func (inst *Instance) Validate() error {
	if len(inst.Resources) == 0 {
		return fmt.Errorf("instance: at least one resource is required")
	}
	if len(inst.Agents) == 0 {
		return fmt.Errorf("instance: at least one agent is required")
	}
	for _, r := range inst.Resources {
		if r.Size < 0 {
			return fmt.Errorf("instance: resource %d has negative capacity %d", r.ID, r.Size)
		}
	}
	for _, agent := range inst.Agents {
		for i, task := range agent.Tasks {
			if task.ID != i {
				return fmt.Errorf("instance: agent %d: task ID %d at position %d; IDs must match list positions", agent.ID, task.ID, i)
			}
			if task.Size <= 0 {
				return fmt.Errorf("instance: agent %d task %d has non-positive size %d", agent.ID, task.ID, task.Size)
			}
			for _, dep := range task.Dependencies {
				if dep < 0 || dep >= len(agent.Tasks) {
					return fmt.Errorf("instance: agent %d task %d references unknown task %d", agent.ID, task.ID, dep)
				}
				if dep == task.ID {
					return fmt.Errorf("instance: agent %d task %d depends on itself", agent.ID, task.ID)
				}
			}
		}
		if err := validateAcyclic(agent); err != nil {
			return err
		}
	}
	return nil
}

// validateAcyclic rejects cyclic dependency sets via topological sort.
func validateAcyclic(agent Agent) error {
	var edges []toposort.Edge
	for _, task := range agent.Tasks {
		if len(task.Dependencies) == 0 {
			edges = append(edges, toposort.Edge{nil, task.ID})
			continue
		}
		for _, dep := range task.Dependencies {
			edges = append(edges, toposort.Edge{dep, task.ID})
		}
	}
	if _, err := toposort.Toposort(edges); err != nil {
		return fmt.Errorf("instance: agent %d: dependency cycle: %w", agent.ID, err)
	}
	return nil
}

// Load reads an instance from a JSON file.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("instance: parse %s: %w", path, err)
	}
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &inst, nil
}

// Save writes the instance as indented JSON.
func (inst *Instance) Save(path string) error {
	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return fmt.Errorf("instance: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("instance: write %s: %w", path, err)
	}
	return nil
}
