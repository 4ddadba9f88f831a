package solver

import (
	"errors"
	"fmt"
)

// IncompleteError reports tasks left unscheduled by greedy construction,
// either because the capacities cannot hold them or because a dependency
// cycle kept them from ever becoming ready. The partial schedule is still
// returned alongside it; callers must treat such a construction as failed.
type IncompleteError struct {
	Unscheduled []TaskRef
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("solver: greedy construction left %d task(s) unscheduled", len(e.Unscheduled))
}

// GreedySchedule builds the agent graphs and runs the greedy constructor.
func GreedySchedule(capacities []int, sizes [][]int, deps [][][]int) (Schedule, error) {
	graphs, err := BuildAgentGraphs(sizes, deps)
	if err != nil {
		return nil, err
	}
	return Greedy(capacities, graphs)
}

// Greedy builds an initial schedule slot by slot, always placing the largest
// ready task that fits the slot's remaining capacity. Ties prefer the lowest
// agent index, then the lowest task index, so construction is deterministic.
//
// The result is feasible whenever the dependency sets are acyclic and the
// total work fits the capacities; otherwise the partial schedule is returned
// together with an *IncompleteError.
func Greedy(capacities []int, graphs []*AgentGraph) (Schedule, error) {
	if len(graphs) == 0 {
		return nil, errors.New("solver: no agents")
	}
	if err := validateCapacities(capacities); err != nil {
		return nil, err
	}

	schedule := make(Schedule, len(capacities))
	ready := make([]map[int]bool, len(graphs))
	indeg := make([][]int, len(graphs))
	remaining := 0
	for a, g := range graphs {
		ready[a] = make(map[int]bool, g.NumTasks())
		indeg[a] = append([]int(nil), g.InDegree...)
		for task, d := range indeg[a] {
			if d == 0 {
				ready[a][task] = true
			}
		}
		remaining += g.NumTasks()
	}

	for t, capacity := range capacities {
		available := capacity
		for {
			// Largest ready task that still fits, ties broken by agent then
			// task index order.
			bestAgent, bestTask, bestSize := -1, -1, 0
			for a, g := range graphs {
				for task := 0; task < g.NumTasks(); task++ {
					if !ready[a][task] {
						continue
					}
					if size := g.Sizes[task]; size <= available && size > bestSize {
						bestAgent, bestTask, bestSize = a, task, size
					}
				}
			}
			if bestAgent < 0 {
				break
			}

			schedule[t] = append(schedule[t], TaskRef{Agent: bestAgent, Task: bestTask})
			available -= bestSize
			delete(ready[bestAgent], bestTask)
			remaining--

			for _, succ := range graphs[bestAgent].Succ[bestTask] {
				indeg[bestAgent][succ]--
				if indeg[bestAgent][succ] == 0 {
					ready[bestAgent][succ] = true
				}
			}
		}
	}

	if remaining > 0 {
		return schedule, &IncompleteError{Unscheduled: unscheduledTasks(schedule, graphs)}
	}
	return schedule, nil
}

// unscheduledTasks lists every graph task missing from the schedule, ordered
// by agent then task index.
func unscheduledTasks(s Schedule, graphs []*AgentGraph) []TaskRef {
	assigned := make(map[TaskRef]bool, s.NumAssigned())
	for _, slot := range s {
		for _, ref := range slot {
			assigned[ref] = true
		}
	}
	var missing []TaskRef
	for a, g := range graphs {
		for task := 0; task < g.NumTasks(); task++ {
			if ref := (TaskRef{Agent: a, Task: task}); !assigned[ref] {
				missing = append(missing, ref)
			}
		}
	}
	return missing
}
