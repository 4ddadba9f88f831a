package solver

import "math"

// SimulatedAnnealing improves a greedy schedule with the same move catalogue
// and feasibility gate as LocalSearch, but walks a separate current schedule
// and accepts worsening candidates with probability exp(-delta/T) under a
// geometrically cooling temperature, letting the search escape local optima
// while the temperature is high.
//
// The best schedule seen is tracked independently of the walk and is what
// gets returned, so the result never costs more than the greedy seed. The
// stagnation counter grows on every feasible candidate that does not improve
// the best, whether the walk accepted it or not; infeasible and no-op
// candidates are skipped without counting and without cooling.
func SimulatedAnnealing(capacities []int, sizes [][]int, deps [][][]int, p Params) (Schedule, error) {
	graphs, err := BuildAgentGraphs(sizes, deps)
	if err != nil {
		return nil, err
	}
	current, err := Greedy(capacities, graphs)
	if err != nil {
		return current, err
	}

	rng := p.rand()
	best := current
	bestCost := EvaluateCost(best, len(graphs))
	currentCost := bestCost
	noImprove := 0
	temperature := p.Temperature

	for iter := 0; iter < p.MaxIterations; iter++ {
		candidate := current.Clone()
		if !applyMove(rng, candidate, graphs) {
			continue
		}
		if !IsFeasible(candidate, graphs, capacities) {
			continue
		}

		cost := EvaluateCost(candidate, len(graphs))
		delta := cost - currentCost
		if delta < 0 || rng.Float64() < math.Exp(-delta/temperature) {
			current, currentCost = candidate, cost
			if cost < bestCost {
				best, bestCost = candidate, cost
				noImprove = 0
			} else {
				noImprove++
			}
		} else {
			noImprove++
		}

		temperature *= p.CoolingRate
		if noImprove >= p.MaxMoves {
			break
		}
	}
	return best, nil
}
