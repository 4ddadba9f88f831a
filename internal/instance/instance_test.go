package instance

import (
	"path/filepath"
	"strings"
	"testing"
)

func validInstance() *Instance {
	return &Instance{
		Name: "two-agent",
		Resources: []Resource{
			{ID: 0, Size: 3},
			{ID: 1, Size: 3},
		},
		Agents: []Agent{
			{
				ID:    0,
				Color: "#ff0000",
				Tasks: []Task{
					{ID: 0, Size: 2},
					{ID: 1, Size: 1},
					{ID: 2, Size: 2, Dependencies: []int{0}},
				},
			},
			{
				ID:    1,
				Color: "#00ff00",
				Tasks: []Task{
					{ID: 0, Size: 1},
				},
			},
		},
	}
}

func TestValidateAcceptsWellFormedInstance(t *testing.T) {
	if err := validInstance().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Instance)
		want   string
	}{
		{
			name:   "no resources",
			mutate: func(i *Instance) { i.Resources = nil },
			want:   "at least one resource",
		},
		{
			name:   "no agents",
			mutate: func(i *Instance) { i.Agents = nil },
			want:   "at least one agent",
		},
		{
			name:   "negative capacity",
			mutate: func(i *Instance) { i.Resources[0].Size = -1 },
			want:   "negative capacity",
		},
		{
			name:   "task id out of position",
			mutate: func(i *Instance) { i.Agents[0].Tasks[1].ID = 7 },
			want:   "IDs must match list positions",
		},
		{
			name:   "non-positive size",
			mutate: func(i *Instance) { i.Agents[0].Tasks[0].Size = 0 },
			want:   "non-positive size",
		},
		{
			name:   "unknown dependency",
			mutate: func(i *Instance) { i.Agents[0].Tasks[2].Dependencies = []int{9} },
			want:   "unknown task",
		},
		{
			name:   "self dependency",
			mutate: func(i *Instance) { i.Agents[0].Tasks[2].Dependencies = []int{2} },
			want:   "depends on itself",
		},
		{
			name: "dependency cycle",
			mutate: func(i *Instance) {
				i.Agents[0].Tasks[0].Dependencies = []int{2}
				i.Agents[0].Tasks[2].Dependencies = []int{0}
			},
			want: "dependency cycle",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inst := validInstance()
			tc.mutate(inst)
			err := inst.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %q", tc.want, err)
			}
		})
	}
}

func TestConversionShapes(t *testing.T) {
	inst := validInstance()

	caps := inst.Capacities()
	if len(caps) != 2 || caps[0] != 3 || caps[1] != 3 {
		t.Fatalf("capacities: %v", caps)
	}

	sizes := inst.TaskSizes()
	if len(sizes) != 2 || len(sizes[0]) != 3 || sizes[0][2] != 2 || sizes[1][0] != 1 {
		t.Fatalf("sizes: %v", sizes)
	}

	deps := inst.Dependencies()
	if len(deps[0][2]) != 1 || deps[0][2][0] != 0 {
		t.Fatalf("dependencies: %v", deps)
	}
	if len(deps[1][0]) != 0 {
		t.Fatalf("agent 1 task 0 should have no dependencies: %v", deps)
	}

	colors := inst.Colors()
	if colors[0] != "#ff0000" || colors[1] != "#00ff00" {
		t.Fatalf("colors: %v", colors)
	}

	if inst.NumTasks() != 4 {
		t.Fatalf("expected 4 tasks, got %d", inst.NumTasks())
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two-agent.json")

	if err := validInstance().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "two-agent" || len(loaded.Agents) != 2 || loaded.Agents[0].Tasks[2].Dependencies[0] != 0 {
		t.Fatalf("round trip lost data: %+v", loaded)
	}
}

func TestLoadRejectsInvalidInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	bad := validInstance()
	bad.Agents[0].Tasks[0].Size = -1
	if err := bad.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error on load")
	}
}
