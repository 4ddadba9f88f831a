package solver

// EvaluateCost computes the objective z: the maximum over agents of the
// average 1-indexed completion slot of that agent's tasks.
//
// Agents with no assignments in s contribute nothing to the maximum. The
// feasibility checker rejects schedules that drop tasks, so under a feasible
// schedule an agent without assignments is one whose task list is empty and
// must be excluded anyway. An empty schedule evaluates to 0.
func EvaluateCost(s Schedule, agents int) float64 {
	sums := make([]int, agents)
	counts := make([]int, agents)
	for t, slot := range s {
		for _, ref := range slot {
			if ref.Agent < 0 || ref.Agent >= agents {
				continue
			}
			sums[ref.Agent] += t + 1
			counts[ref.Agent]++
		}
	}

	z := 0.0
	for a := 0; a < agents; a++ {
		if counts[a] == 0 {
			continue
		}
		if avg := float64(sums[a]) / float64(counts[a]); avg > z {
			z = avg
		}
	}
	return z
}
