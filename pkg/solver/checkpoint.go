package solver

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Checkpoint is a gob-encodable snapshot of a Solver's full search
// state, tagged with a run identifier so a resumed run can be traced
// back to the checkpoint it came from.
type Checkpoint struct {
	RunID       string
	Clauses     [][]int
	Assignments []Assignment
	Stack       []Frame
	Status      Status
	MaxVar      int
}

// Checkpoint snapshots s. Each call with a fresh RunID starts a new
// lineage; pass runID explicitly to keep a resumed solver's checkpoints
// under the same run.
func (s *Solver) Checkpoint(runID string) Checkpoint {
	if runID == "" {
		runID = uuid.NewString()
	}
	return Checkpoint{
		RunID:       runID,
		Clauses:     s.Clauses,
		Assignments: s.Assignments,
		Stack:       s.Stack,
		Status:      s.Status,
		MaxVar:      s.MaxVar,
	}
}

// FromCheckpoint reconstructs a Solver from a checkpoint taken by
// Checkpoint. The clauses are carried verbatim — resuming does not
// re-run preprocessing.
func FromCheckpoint(cp Checkpoint) *Solver {
	return &Solver{
		Clauses:     cp.Clauses,
		Assignments: cp.Assignments,
		Stack:       cp.Stack,
		Status:      cp.Status,
		MaxVar:      cp.MaxVar,
	}
}

// SaveCheckpoint gob-encodes cp to path, overwriting any existing file.
func SaveCheckpoint(path string, cp Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("solver: create checkpoint %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(cp); err != nil {
		return fmt.Errorf("solver: encode checkpoint %s: %w", path, err)
	}
	return nil
}

// LoadCheckpoint gob-decodes a checkpoint previously written by
// SaveCheckpoint.
func LoadCheckpoint(path string) (Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("solver: open checkpoint %s: %w", path, err)
	}
	defer f.Close()

	var cp Checkpoint
	if err := gob.NewDecoder(f).Decode(&cp); err != nil {
		return Checkpoint{}, fmt.Errorf("solver: decode checkpoint %s: %w", path, err)
	}
	return cp, nil
}
