package solver

// position locates a task within a schedule. Precedence compares positions
// lexicographically: a dependency must come strictly before its dependent.
type position struct {
	slot  int
	index int
}

func (p position) before(q position) bool {
	return p.slot < q.slot || (p.slot == q.slot && p.index < q.index)
}

// IsFeasible reports whether s satisfies every hard constraint against the
// graphs and capacities:
//
//  1. the task sizes in each slot sum to at most the slot's capacity;
//  2. no task is assigned more than once, and no assignment references an
//     unknown agent or task;
//  3. every task present in the graphs is assigned (a schedule that drops a
//     task is not a schedule);
//  4. every dependency is positioned strictly before its dependents.
//
// The check is a pure function of its arguments.
func IsFeasible(s Schedule, graphs []*AgentGraph, capacities []int) bool {
	if len(s) > len(capacities) {
		return false
	}

	for t, slot := range s {
		total := 0
		for _, ref := range slot {
			if ref.Agent < 0 || ref.Agent >= len(graphs) {
				return false
			}
			g := graphs[ref.Agent]
			if ref.Task < 0 || ref.Task >= g.NumTasks() {
				return false
			}
			total += g.Sizes[ref.Task]
		}
		if total > capacities[t] {
			return false
		}
	}

	positions := make([]map[int]position, len(graphs))
	for a, g := range graphs {
		positions[a] = make(map[int]position, g.NumTasks())
	}
	assigned := 0
	for t, slot := range s {
		for i, ref := range slot {
			if _, dup := positions[ref.Agent][ref.Task]; dup {
				return false
			}
			positions[ref.Agent][ref.Task] = position{slot: t, index: i}
			assigned++
		}
	}

	total := 0
	for _, g := range graphs {
		total += g.NumTasks()
	}
	if assigned != total {
		return false
	}

	for a, g := range graphs {
		for u, succs := range g.Succ {
			for _, v := range succs {
				if !positions[a][u].before(positions[a][v]) {
					return false
				}
			}
		}
	}
	return true
}
