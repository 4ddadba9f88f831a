package solver

import (
	"math/rand"
	"sort"
)

// groupSwapTrials bounds the random subset search of the group-swap move.
const groupSwapTrials = 50

// applyMove perturbs the candidate in place with one of the three move kinds,
// chosen with equal probability, and reports whether a move was actually
// applied. A false return means the draw produced a structural no-op (empty
// slot, no swap partner, no matching group) and the iteration is skipped.
func applyMove(rng *rand.Rand, candidate Schedule, graphs []*AgentGraph) bool {
	switch rng.Intn(3) {
	case 0:
		return swapTasks(rng, candidate)
	case 1:
		return relocateEarlier(rng, candidate)
	default:
		return groupSwap(rng, candidate, graphs)
	}
}

// swapTasks exchanges one randomly chosen task between two distinct random
// slots.
func swapTasks(rng *rand.Rand, s Schedule) bool {
	if len(s) < 2 {
		return false
	}
	t1 := rng.Intn(len(s))
	t2 := rng.Intn(len(s))
	if t1 == t2 || len(s[t1]) == 0 || len(s[t2]) == 0 {
		return false
	}
	i1 := rng.Intn(len(s[t1]))
	i2 := rng.Intn(len(s[t2]))
	s[t1][i1], s[t2][i2] = s[t2][i2], s[t1][i1]
	return true
}

// relocateEarlier removes one randomly chosen task from a later slot and
// reinserts it at a random position within a strictly earlier slot. Slot 0
// is never a source: there is nowhere earlier to move to.
func relocateEarlier(rng *rand.Rand, s Schedule) bool {
	if len(s) < 2 {
		return false
	}
	from := 1 + rng.Intn(len(s)-1)
	if len(s[from]) == 0 {
		return false
	}
	idx := rng.Intn(len(s[from]))
	ref := s[from][idx]
	s[from] = append(s[from][:idx], s[from][idx+1:]...)

	to := rng.Intn(from)
	s[to] = insertAt(s[to], rng.Intn(len(s[to])+1), ref)
	return true
}

// groupSwap exchanges one task for a group of at least two tasks in a
// different slot whose sizes sum exactly to the task's size. The group keeps
// its relative order when it moves into the source slot; the single task
// lands at a random position in the target slot. After groupSwapTrials
// random subsets without an exact size match the move is abandoned.
func groupSwap(rng *rand.Rand, s Schedule, graphs []*AgentGraph) bool {
	from := rng.Intn(len(s))
	if len(s[from]) == 0 {
		return false
	}
	idxFrom := rng.Intn(len(s[from]))
	single := s[from][idxFrom]
	size := graphs[single.Agent].Sizes[single.Task]

	var partners []int
	for t := range s {
		if t != from && len(s[t]) >= 2 {
			partners = append(partners, t)
		}
	}
	if len(partners) == 0 {
		return false
	}
	to := partners[rng.Intn(len(partners))]
	target := s[to]

	var group []int
	for trial := 0; trial < groupSwapTrials; trial++ {
		n := 2 + rng.Intn(len(target)-1) // group size in [2, len(target)]
		picked := rng.Perm(len(target))[:n]
		total := 0
		for _, i := range picked {
			ref := target[i]
			total += graphs[ref.Agent].Sizes[ref.Task]
		}
		if total == size {
			group = picked
			break
		}
	}
	if group == nil {
		return false
	}
	sort.Ints(group)

	moved := make([]TaskRef, len(group))
	for i, j := range group {
		moved[i] = target[j]
	}
	for i := len(group) - 1; i >= 0; i-- {
		j := group[i]
		target = append(target[:j], target[j+1:]...)
	}
	s[to] = target

	s[from] = append(s[from][:idxFrom], s[from][idxFrom+1:]...)
	s[from] = insertAt(s[from], idxFrom, moved...)
	s[to] = insertAt(s[to], rng.Intn(len(s[to])+1), single)
	return true
}

func insertAt(slot []TaskRef, i int, refs ...TaskRef) []TaskRef {
	out := make([]TaskRef, 0, len(slot)+len(refs))
	out = append(out, slot[:i]...)
	out = append(out, refs...)
	out = append(out, slot[i:]...)
	return out
}
