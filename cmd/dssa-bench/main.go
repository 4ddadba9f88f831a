// Command dssa-bench runs the heuristic solvers over instance files and a
// parameter grid and reports the objective value and runtime of every run as
// CSV, one row per (instance, method, maxIterations, maxMoves) combination.
// Instances run in parallel; rows within one instance stay sequential so
// runtimes are not distorted by each other.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Xhst/dssa-multiagent-scheduling/internal/instance"
	"github.com/Xhst/dssa-multiagent-scheduling/internal/solver"
)

type benchRow struct {
	RunID         string
	Instance      string
	Agents        int
	Tasks         int
	Method        string
	MaxIterations int
	MaxMoves      int
	Seed          int64
	Z             float64
	RuntimeMS     float64
}

func (r benchRow) record() []string {
	return []string{
		r.RunID,
		r.Instance,
		strconv.Itoa(r.Agents),
		strconv.Itoa(r.Tasks),
		r.Method,
		strconv.Itoa(r.MaxIterations),
		strconv.Itoa(r.MaxMoves),
		strconv.FormatInt(r.Seed, 10),
		strconv.FormatFloat(r.Z, 'f', 6, 64),
		strconv.FormatFloat(r.RuntimeMS, 'f', 3, 64),
	}
}

var header = []string{
	"run_id", "instance", "agents", "tasks", "method",
	"max_iterations", "max_moves", "seed", "z", "runtime_ms",
}

func main() {
	var (
		dir      = flag.String("instances", "instances", "directory of instance JSON files")
		out      = flag.String("out", "results.csv", "output CSV path")
		iters    = flag.String("iters", "1000,10000,100000", "comma-separated maxIterations grid")
		moves    = flag.String("moves", "100,500,1000", "comma-separated maxMoves grid")
		seed     = flag.Int64("seed", 515125, "solver seed")
		parallel = flag.Int("parallel", 4, "instances solved concurrently")
	)
	flag.Parse()

	iterGrid, err := parseGrid(*iters)
	if err != nil {
		log.Fatalf("dssa-bench: -iters: %v", err)
	}
	moveGrid, err := parseGrid(*moves)
	if err != nil {
		log.Fatalf("dssa-bench: -moves: %v", err)
	}

	paths, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		log.Fatalf("dssa-bench: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("dssa-bench: no instance files in %s", *dir)
	}
	sort.Strings(paths)

	var (
		mu   sync.Mutex
		rows []benchRow
	)
	g := new(errgroup.Group)
	g.SetLimit(*parallel)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			inst, err := instance.Load(path)
			if err != nil {
				return err
			}
			got, err := runInstance(inst, iterGrid, moveGrid, *seed)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			rows = append(rows, got...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("dssa-bench: %v", err)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Instance != rows[j].Instance {
			return rows[i].Instance < rows[j].Instance
		}
		if rows[i].Method != rows[j].Method {
			return rows[i].Method < rows[j].Method
		}
		if rows[i].MaxIterations != rows[j].MaxIterations {
			return rows[i].MaxIterations < rows[j].MaxIterations
		}
		return rows[i].MaxMoves < rows[j].MaxMoves
	})
	if err := writeCSV(*out, rows); err != nil {
		log.Fatalf("dssa-bench: %v", err)
	}
	log.Printf("dssa-bench: wrote %d rows to %s", len(rows), *out)
}

// runInstance solves one instance with greedy and both improvers over the
// full parameter grid.
func runInstance(inst *instance.Instance, iterGrid, moveGrid []int, seed int64) ([]benchRow, error) {
	capacities := inst.Capacities()
	sizes := inst.TaskSizes()
	deps := inst.Dependencies()
	agents := len(inst.Agents)

	name := inst.Name
	if name == "" {
		name = "unnamed"
	}
	row := func(method string, p solver.Params, z float64, elapsed time.Duration) benchRow {
		return benchRow{
			RunID:         uuid.NewString(),
			Instance:      name,
			Agents:        agents,
			Tasks:         inst.NumTasks(),
			Method:        method,
			MaxIterations: p.MaxIterations,
			MaxMoves:      p.MaxMoves,
			Seed:          p.Seed,
			Z:             z,
			RuntimeMS:     float64(elapsed.Microseconds()) / 1000.0,
		}
	}

	var rows []benchRow

	start := time.Now()
	s, err := solver.GreedySchedule(capacities, sizes, deps)
	if err != nil {
		return nil, fmt.Errorf("greedy: %w", err)
	}
	rows = append(rows, row("greedy", solver.Params{}, solver.EvaluateCost(s, agents), time.Since(start)))

	improvers := []struct {
		name string
		run  func([]int, [][]int, [][][]int, solver.Params) (solver.Schedule, error)
	}{
		{"local_search", solver.LocalSearch},
		{"simulated_annealing", solver.SimulatedAnnealing},
	}
	for _, imp := range improvers {
		for _, iters := range iterGrid {
			for _, mv := range moveGrid {
				p := solver.DefaultParams()
				p.MaxIterations = iters
				p.MaxMoves = mv
				p.Seed = seed

				start := time.Now()
				s, err := imp.run(capacities, sizes, deps, p)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", imp.name, err)
				}
				rows = append(rows, row(imp.name, p, solver.EvaluateCost(s, agents), time.Since(start)))
			}
		}
	}
	return rows, nil
}

func parseGrid(list string) ([]int, error) {
	var grid []int
	for _, field := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("grid values must be positive, got %d", n)
		}
		grid = append(grid, n)
	}
	return grid, nil
}

func writeCSV(path string, rows []benchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
