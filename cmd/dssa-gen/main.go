// Command dssa-gen generates deterministic random scheduling instances for
// the benchmark runner. Dependencies only ever reference earlier task
// indices, so every generated dependency set is acyclic by construction, and
// slots are appended until the total capacity comfortably exceeds the total
// work so the greedy constructor has room to place everything.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/instance"
)

var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
}

func main() {
	var (
		outDir   = flag.String("out", "instances", "output directory")
		count    = flag.Int("count", 5, "number of instances to generate")
		seed     = flag.Int64("seed", 1, "base seed; instance i uses seed+i")
		agents   = flag.Int("agents", 5, "agents per instance")
		maxTasks = flag.Int("max-tasks", 8, "maximum tasks per agent (minimum 1)")
		maxSize  = flag.Int("max-size", 5, "maximum task size")
		maxCap   = flag.Int("max-cap", 10, "maximum slot capacity")
		depProb  = flag.Float64("dep-prob", 0.3, "probability of each possible dependency edge")
	)
	flag.Parse()

	if *maxCap < *maxSize {
		log.Fatalf("dssa-gen: max-cap %d is smaller than max-size %d; the largest task would never fit a slot", *maxCap, *maxSize)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("dssa-gen: %v", err)
	}

	for i := 0; i < *count; i++ {
		s := *seed + int64(i)
		inst := generate(s, *agents, *maxTasks, *maxSize, *maxCap, *depProb)
		path := filepath.Join(*outDir, fmt.Sprintf("%s.json", inst.Name))
		if err := inst.Save(path); err != nil {
			log.Fatalf("dssa-gen: %v", err)
		}
		log.Printf("dssa-gen: wrote %s (%d agents, %d tasks, %d slots)",
			path, len(inst.Agents), inst.NumTasks(), len(inst.Resources))
	}
}

func generate(seed int64, agents, maxTasks, maxSize, maxCap int, depProb float64) *instance.Instance {
	rng := rand.New(rand.NewSource(seed))

	inst := &instance.Instance{
		Name: fmt.Sprintf("inst_a%d_s%d", agents, seed),
		Seed: seed,
	}

	totalWork := 0
	for a := 0; a < agents; a++ {
		numTasks := 1 + rng.Intn(maxTasks)
		agent := instance.Agent{ID: a, Color: palette[a%len(palette)]}
		for i := 0; i < numTasks; i++ {
			task := instance.Task{ID: i, Size: 1 + rng.Intn(maxSize)}
			for dep := 0; dep < i; dep++ {
				if rng.Float64() < depProb {
					task.Dependencies = append(task.Dependencies, dep)
				}
			}
			totalWork += task.Size
			agent.Tasks = append(agent.Tasks, task)
		}
		inst.Agents = append(inst.Agents, agent)
	}

	// Every task must fit some slot, and the total capacity gets a 50%
	// margin over the total work so greedy construction cannot strand tasks
	// for lack of room.
	totalCap := 0
	for t := 0; totalCap < totalWork*3/2; t++ {
		size := maxSize + rng.Intn(maxCap-maxSize+1)
		inst.Resources = append(inst.Resources, instance.Resource{ID: t, Size: size})
		totalCap += size
	}

	return inst
}
