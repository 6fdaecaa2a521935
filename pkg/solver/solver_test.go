package solver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runToCompletion(t *testing.T, s *Solver) Status {
	t.Helper()
	for i := 0; i < 10_000 && !s.Finished(); i++ {
		s.Step()
	}
	require.True(t, s.Finished(), "solver did not converge within the step budget")
	return s.Status
}

func TestTriviallyUnsat(t *testing.T) {
	s := New([][]int{{1}, {-1}})
	assert.Equal(t, Unsat, runToCompletion(t, s))
}

func TestTriviallySat(t *testing.T) {
	s := New([][]int{{1}})
	status := runToCompletion(t, s)
	require.Equal(t, Sat, status)
	assert.Equal(t, []int{1}, s.Witness())
}

func TestTwoClauseSatChecks(t *testing.T) {
	s := New([][]int{{1, 2}, {-1, -2}})
	status := runToCompletion(t, s)
	require.Equal(t, Sat, status)
	assert.True(t, Check(s.Clauses, s.Witness()))
}

func TestThreeClauseSatWitnessSatisfiesAll(t *testing.T) {
	s := New([][]int{{1, 2}, {-1, 3}, {-2, -3}})
	status := runToCompletion(t, s)
	require.Equal(t, Sat, status)
	assert.True(t, Check(s.Clauses, s.Witness()))
}

func TestPigeonholeTwoIntoOneIsUnsat(t *testing.T) {
	// Two pigeons, one hole: both pigeons can't avoid the same hole, and a
	// single hole can't hold both at once.
	s := New([][]int{{1}, {2}, {-1, -2}})
	assert.Equal(t, Unsat, runToCompletion(t, s))
}

func TestPreprocessingDedupesAndSortsByLength(t *testing.T) {
	s := New([][]int{
		{3, 1, 2},
		{1, 2, 3}, // duplicate of the first, after in-clause sorting
		{5},
		{2, 1},
		{1, 1, 2}, // literal 1 duplicated; equals {2, 1} once normalized
	})

	// {5} is the only singleton clause and must sort first.
	require.NotEmpty(t, s.Clauses)
	assert.Equal(t, []int{5}, s.Clauses[0])

	for _, c := range s.Clauses {
		assert.True(t, len(c) <= 3)
	}
	assert.Equal(t, [][]int{{5}, {1, 2}, {1, 2, 3}}, s.Clauses)
	assert.Equal(t, 5, s.MaxVar)
}

func TestCheckRejectsAnUnsatisfiedClause(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, -2}}
	assert.False(t, Check(clauses, []int{1, 2}))
	assert.True(t, Check(clauses, []int{1, -2}))
}

func TestCheckpointRoundTrip(t *testing.T) {
	s := New([][]int{{1, 2}, {-1, 3}, {-2, -3}})
	s.Step()
	s.Step()

	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.gob")

	cp := s.Checkpoint("")
	require.NoError(t, SaveCheckpoint(path, cp))

	loaded, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, cp.RunID, loaded.RunID)

	resumed := FromCheckpoint(loaded)
	status := runToCompletion(t, resumed)
	require.Equal(t, Sat, status)
	assert.True(t, Check(resumed.Clauses, resumed.Witness()))

	// The original, never resumed, must reach the same outcome.
	require.Equal(t, status, runToCompletion(t, s))
	assert.Equal(t, s.Witness(), resumed.Witness())

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestStepIsNoOpOnceFinished(t *testing.T) {
	s := New([][]int{{1}})
	_ = runToCompletion(t, s)

	before := s.Stack
	s.Step()
	assert.Equal(t, before, s.Stack, "step must not touch a finished solver")
}
