package solver

import (
	"math/rand"
	"testing"
)

// taskMultiset counts assignments per task reference.
func taskMultiset(s Schedule) map[TaskRef]int {
	m := make(map[TaskRef]int)
	for _, slot := range s {
		for _, ref := range slot {
			m[ref]++
		}
	}
	return m
}

func sameMultiset(a, b map[TaskRef]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Moves may rearrange assignments but never create, drop, or duplicate them.
func TestMovesPreserveAssignments(t *testing.T) {
	capacities, sizes, deps := benchInstance()
	graphs := mustGraphs(t, sizes, deps)
	seed, err := Greedy(capacities, graphs)
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	want := taskMultiset(seed)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		candidate := seed.Clone()
		applied := applyMove(rng, candidate, graphs)
		if !applied {
			continue
		}
		if got := taskMultiset(candidate); !sameMultiset(got, want) {
			t.Fatalf("iteration %d: move changed the assignment multiset", i)
		}
		if len(candidate) != len(seed) {
			t.Fatalf("iteration %d: move changed the slot count", i)
		}
	}
}

func TestMovesNeverMutateTheOriginal(t *testing.T) {
	capacities, sizes, deps := benchInstance()
	graphs := mustGraphs(t, sizes, deps)
	seed, err := Greedy(capacities, graphs)
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	frozen := seed.Clone()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		applyMove(rng, seed.Clone(), graphs)
	}
	for ti := range frozen {
		if len(frozen[ti]) != len(seed[ti]) {
			t.Fatalf("slot %d changed length", ti)
		}
		for i := range frozen[ti] {
			if frozen[ti][i] != seed[ti][i] {
				t.Fatalf("slot %d position %d changed", ti, i)
			}
		}
	}
}

func TestRelocateNeverSourcesSlotZero(t *testing.T) {
	// Two slots, all tasks in slot 0: relocation has nothing to move.
	s := Schedule{{{Agent: 0, Task: 0}, {Agent: 0, Task: 1}}, {}}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if relocateEarlier(rng, s) {
			t.Fatal("relocation moved a task out of an empty source")
		}
	}
	if len(s[0]) != 2 || len(s[1]) != 0 {
		t.Fatalf("schedule changed: %v", s)
	}
}

func TestSingleSlotScheduleIsImmovable(t *testing.T) {
	s := Schedule{{{Agent: 0, Task: 0}}}
	rng := rand.New(rand.NewSource(1))
	if swapTasks(rng, s) {
		t.Error("swap applied on a single-slot schedule")
	}
	if relocateEarlier(rng, s) {
		t.Error("relocation applied on a single-slot schedule")
	}
}

func TestGroupSwapExchangesEqualSizes(t *testing.T) {
	// Slot 1 holds two size-1 tasks that exactly match the size-2 task in
	// slot 0, so the bounded trial search must eventually find the group.
	graphs := mustGraphs(t,
		[][]int{{2, 1, 1}},
		[][][]int{{nil, nil, nil}},
	)
	rng := rand.New(rand.NewSource(3))

	applied := false
	for i := 0; i < 200 && !applied; i++ {
		s := Schedule{
			{{Agent: 0, Task: 0}},
			{{Agent: 0, Task: 1}, {Agent: 0, Task: 2}},
		}
		if !groupSwap(rng, s, graphs) {
			continue
		}
		applied = true
		if len(s[0]) != 2 || len(s[1]) != 1 {
			t.Fatalf("expected the pair in slot 0 and the single in slot 1, got %v", s)
		}
		if s[1][0] != (TaskRef{Agent: 0, Task: 0}) {
			t.Fatalf("expected task (0,0) in slot 1, got %v", s[1])
		}
		// Relative order of the moved group is preserved.
		if s[0][0] != (TaskRef{Agent: 0, Task: 1}) || s[0][1] != (TaskRef{Agent: 0, Task: 2}) {
			t.Fatalf("group order not preserved: %v", s[0])
		}
	}
	if !applied {
		t.Fatal("group swap never applied despite an exact size match")
	}
}
