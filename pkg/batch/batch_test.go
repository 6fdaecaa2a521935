package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oisee/satsolve/pkg/solver"
)

func writeDimacs(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunSolvesEachFileIndependently(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDimacs(t, dir, "sat.cnf", "p cnf 2 2\n1 2 0\n-1 -2 0\n"),
		writeDimacs(t, dir, "unsat.cnf", "p cnf 1 2\n1 0\n-1 0\n"),
	}

	table := Run(Config{Paths: paths, Workers: 2}, nil)
	results := table.Results()
	require.Len(t, results, 2)

	byPath := make(map[string]Result, len(results))
	for _, r := range results {
		byPath[r.Path] = r
	}

	require.NoError(t, byPath[paths[0]].Err)
	assert.Equal(t, solver.Sat, byPath[paths[0]].Status)
	assert.True(t, solver.Check([][]int{{1, 2}, {-1, -2}}, byPath[paths[0]].Witness))

	require.NoError(t, byPath[paths[1]].Err)
	assert.Equal(t, solver.Unsat, byPath[paths[1]].Status)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	bodies := []string{
		"p cnf 2 2\n1 2 0\n-1 -2 0\n",
		"p cnf 1 2\n1 0\n-1 0\n",
		"p cnf 3 3\n1 2 0\n-1 3 0\n-2 -3 0\n",
	}
	for i, b := range bodies {
		paths = append(paths, writeDimacs(t, dir, filepath.Base(t.Name())+string(rune('a'+i))+".cnf", b))
	}

	one := statusesByPath(Run(Config{Paths: paths, Workers: 1}, nil))
	many := statusesByPath(Run(Config{Paths: paths, Workers: 4}, nil))

	assert.Equal(t, one, many)
}

func statusesByPath(t *Table) map[string]solver.Status {
	out := make(map[string]solver.Status)
	for _, r := range t.Results() {
		out[r.Path] = r.Status
	}
	return out
}

func TestRunReportsOpenErrorWithoutAbortingOthers(t *testing.T) {
	dir := t.TempDir()
	good := writeDimacs(t, dir, "good.cnf", "p cnf 1 1\n1 0\n")
	missing := filepath.Join(dir, "missing.cnf")

	table := Run(Config{Paths: []string{good, missing}, Workers: 2}, nil)
	results := table.Results()
	require.Len(t, results, 2)

	var sawErr, sawSat bool
	for _, r := range results {
		if r.Err != nil {
			sawErr = true
		}
		if r.Status == solver.Sat {
			sawSat = true
		}
	}
	assert.True(t, sawErr)
	assert.True(t, sawSat)
}
