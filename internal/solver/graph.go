package solver

import "fmt"

// AgentGraph is the dependency DAG for a single agent's tasks. Node identity
// is the task's index in the agent's size list; edges point from a dependency
// to its dependent.
type AgentGraph struct {
	Sizes    []int   // task size by task index
	Succ     [][]int // forward edges: dependency -> dependents
	InDegree []int   // unresolved predecessor count by task index
}

// NumTasks returns the number of tasks in the graph.
func (g *AgentGraph) NumTasks() int { return len(g.Sizes) }

// BuildAgentGraphs converts per-agent task sizes and dependency sets into
// dependency graphs. sizes[a][i] is the size of task i of agent a, and
// deps[a][i] lists the tasks of agent a that must complete before task i.
//
// Inputs are validated (matching lengths, positive sizes, in-range dependency
// references) but not cycle-checked: a cyclic dependency set is a caller
// contract violation that surfaces later as an incomplete greedy
// construction.
func BuildAgentGraphs(sizes [][]int, deps [][][]int) ([]*AgentGraph, error) {
	if len(sizes) != len(deps) {
		return nil, fmt.Errorf("solver: %d agents carry sizes but %d carry dependency sets", len(sizes), len(deps))
	}
	graphs := make([]*AgentGraph, len(sizes))
	for a, taskSizes := range sizes {
		if len(deps[a]) != len(taskSizes) {
			return nil, fmt.Errorf("solver: agent %d has %d tasks but %d dependency sets", a, len(taskSizes), len(deps[a]))
		}
		g := &AgentGraph{
			Sizes:    append([]int(nil), taskSizes...),
			Succ:     make([][]int, len(taskSizes)),
			InDegree: make([]int, len(taskSizes)),
		}
		for i, size := range taskSizes {
			if size <= 0 {
				return nil, fmt.Errorf("solver: agent %d task %d has non-positive size %d", a, i, size)
			}
			for _, dep := range deps[a][i] {
				if dep < 0 || dep >= len(taskSizes) {
					return nil, fmt.Errorf("solver: agent %d task %d: invalid dependency reference %d", a, i, dep)
				}
				g.Succ[dep] = append(g.Succ[dep], i)
				g.InDegree[i]++
			}
		}
		graphs[a] = g
	}
	return graphs, nil
}
