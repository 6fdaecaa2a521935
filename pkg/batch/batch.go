// Package batch runs the solver over many independent DIMACS files
// concurrently. Each worker owns a private Solver instance; nothing is
// shared across goroutines except the result table and a ticker-driven
// progress counter, the same split the sequence-search worker pool this
// package is descended from used between per-worker CPU state and the
// shared fingerprint table.
package batch

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oisee/satsolve/pkg/dimacs"
	"github.com/oisee/satsolve/pkg/solver"
)

// Config controls a batch run.
type Config struct {
	Paths           []string
	Workers         int
	StepBudget      int // 0 means unbounded
	CheckpointEvery int // not read by Run: batch runs never checkpoint
	Verbose         bool
}

// Result is one file's outcome.
type Result struct {
	Path    string
	Status  solver.Status
	Steps   int
	Witness []int
	Err     error
}

// Table collects Results from concurrent workers behind a mutex, the
// same shape as the rule table the search worker pool reported into.
type Table struct {
	mu      sync.Mutex
	results []Result
}

// Add appends r to the table.
func (t *Table) Add(r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = append(t.results, r)
}

// Results returns a snapshot copy of every result added so far.
func (t *Table) Results() []Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Result, len(t.results))
	copy(out, t.results)
	return out
}

// Run solves every path in cfg.Paths concurrently across cfg.Workers
// goroutines (at least 1) and returns the collected Table. Progress is
// reported to progress, if non-nil, roughly once a second; pass nil to
// disable.
func Run(cfg Config, progress io.Writer) *Table {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	table := &Table{}
	tasks := make(chan string)

	var checked atomic.Int64
	total := int64(len(cfg.Paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range tasks {
				table.Add(solveOne(cfg, path))
				checked.Add(1)
			}
		}()
	}

	var stopTicker chan struct{}
	if progress != nil {
		stopTicker = make(chan struct{})
		go reportProgress(progress, &checked, total, stopTicker)
	}

	for _, p := range cfg.Paths {
		tasks <- p
	}
	close(tasks)
	wg.Wait()

	if stopTicker != nil {
		close(stopTicker)
	}

	return table
}

func solveOne(cfg Config, path string) Result {
	rc, err := dimacs.Open(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	defer rc.Close()

	clauses, err := dimacs.All(dimacs.New(rc))
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("batch: parse %s: %w", path, err)}
	}

	s := solver.New(clauses)
	steps := 0
	for !s.Finished() {
		if cfg.StepBudget > 0 && steps >= cfg.StepBudget {
			break
		}
		s.Step()
		steps++
	}

	var witness []int
	if s.Status == solver.Sat {
		witness = s.Witness()
	}

	return Result{Path: path, Status: s.Status, Steps: steps, Witness: witness}
}

func reportProgress(w io.Writer, checked *atomic.Int64, total int64, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Fprintf(w, "batch: %d/%d solved\n", checked.Load(), total)
		}
	}
}
