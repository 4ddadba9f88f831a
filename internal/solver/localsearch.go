package solver

// LocalSearch improves a greedy schedule by hill climbing: each iteration
// applies one random move to a copy of the best schedule and adopts the
// candidate only when it is feasible and strictly cheaper. Infeasible and
// no-op candidates are skipped without counting toward the stagnation limit.
//
// The search stops after MaxIterations iterations or once MaxMoves
// consecutive feasible candidates fail to improve. The result never costs
// more than the greedy seed.
func LocalSearch(capacities []int, sizes [][]int, deps [][][]int, p Params) (Schedule, error) {
	graphs, err := BuildAgentGraphs(sizes, deps)
	if err != nil {
		return nil, err
	}
	best, err := Greedy(capacities, graphs)
	if err != nil {
		return best, err
	}

	rng := p.rand()
	bestCost := EvaluateCost(best, len(graphs))
	noImprove := 0

	for iter := 0; iter < p.MaxIterations; iter++ {
		candidate := best.Clone()
		if !applyMove(rng, candidate, graphs) {
			continue
		}
		if !IsFeasible(candidate, graphs, capacities) {
			continue
		}

		if cost := EvaluateCost(candidate, len(graphs)); cost < bestCost {
			best, bestCost = candidate, cost
			noImprove = 0
		} else {
			noImprove++
			if noImprove >= p.MaxMoves {
				break
			}
		}
	}
	return best, nil
}
