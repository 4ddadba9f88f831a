package solver

import (
	"encoding/json"
	"fmt"
)

// TaskRef identifies a task as an (agent, task index) pair. It marshals to
// the wire form used by the scheduling API: a two-element JSON array
// [agent, task].
type TaskRef struct {
	Agent int
	Task  int
}

// MarshalJSON encodes the reference as [agent, task].
func (r TaskRef) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d]", r.Agent, r.Task)), nil
}

// UnmarshalJSON decodes the [agent, task] wire form.
func (r *TaskRef) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("solver: task reference must be [agent, task], got %d elements", len(pair))
	}
	r.Agent, r.Task = pair[0], pair[1]
	return nil
}

// Schedule assigns tasks to discrete time slots. Slots are indexed by
// position; s[t] lists the tasks completed in slot t. Order within a slot
// carries no scheduling semantics but is preserved because the improvers'
// precedence check breaks same-slot ties by position.
type Schedule [][]TaskRef

// Clone returns a deep copy of the schedule. Improvers perturb clones only;
// the schedule they were derived from is never mutated.
func (s Schedule) Clone() Schedule {
	c := make(Schedule, len(s))
	for t, slot := range s {
		c[t] = append([]TaskRef(nil), slot...)
	}
	return c
}

// NumAssigned returns the total number of task assignments in the schedule.
func (s Schedule) NumAssigned() int {
	n := 0
	for _, slot := range s {
		n += len(slot)
	}
	return n
}
