// Package solver assigns time-sliced, capacity-bounded resources to agents'
// dependent tasks, minimizing the worst per-agent average completion slot.
//
// A greedy constructor builds the initial schedule; local search and
// simulated annealing perturb it under hard capacity and precedence
// constraints. The engine is purely functional over its inputs: it holds no
// process-wide state and every candidate is evaluated on a full copy of the
// schedule it perturbs.
package solver

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Params tunes the two improvement heuristics. Field names mirror the
// parameters of the scheduling API.
type Params struct {
	MaxIterations int     // iteration budget
	MaxMoves      int     // consecutive non-improving candidates before stopping early
	Temperature   float64 // initial annealing temperature
	CoolingRate   float64 // geometric cooling factor, < 1
	Seed          int64   // 0 selects a time-based seed
}

// DefaultParams returns the defaults applied when a request carries no
// explicit parameters.
func DefaultParams() Params {
	return Params{
		MaxIterations: 1000,
		MaxMoves:      100,
		Temperature:   1.0,
		CoolingRate:   0.99,
	}
}

// rand builds the random source driving move selection and annealing draws.
// A non-zero seed reproduces the exact same run.
func (p Params) rand() *rand.Rand {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func validateCapacities(capacities []int) error {
	if len(capacities) == 0 {
		return errors.New("solver: no time slots")
	}
	for t, c := range capacities {
		if c < 0 {
			return fmt.Errorf("solver: slot %d has negative capacity %d", t, c)
		}
	}
	return nil
}
