package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSolveCmd_SatisfiableInstance(t *testing.T) {
	out, err := execute(t, "solve", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err)
	assert.Contains(t, out, "s SATISFIABLE")
}

func TestSolveCmd_MissingFileIsUsageError(t *testing.T) {
	_, err := execute(t, "solve", "../parsers/testdata/does_not_exist.cnf")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestCheckCmd_ValidModelPasses(t *testing.T) {
	out, err := execute(t, "check", "../parsers/testdata/three_var_sat.cnf", "../parsers/testdata/three_var_sat.cnf.models")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestSolveCmd_AllEnumeratesEveryModel(t *testing.T) {
	out, err := execute(t, "solve", "--all", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "v "))
}

func TestSolveCmd_MaxModelsBoundsEnumeration(t *testing.T) {
	out, err := execute(t, "solve", "--all", "--max-models", "1", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "v "))
}

func TestSolveCmd_ZeroMaxConflictsIsUnbounded(t *testing.T) {
	_, err := execute(t, "solve", "--max-conflicts", "0", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err) // a budget of 0 means no conflict limit, so the search runs to its verdict
}

func TestSolveCmd_CheckFlagPasses(t *testing.T) {
	out, err := execute(t, "solve", "--check", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err)
	assert.Contains(t, out, "s SATISFIABLE")
}

func TestSolveCmd_PhaseSavingFlagAccepted(t *testing.T) {
	out, err := execute(t, "solve", "--phase-saving", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err)
	assert.Contains(t, out, "s SATISFIABLE")
}

func TestRootCmd_LogLevelFlagAccepted(t *testing.T) {
	out, err := execute(t, "--log-level", "warn", "solve", "../parsers/testdata/three_var_sat.cnf")
	require.NoError(t, err)
	assert.Contains(t, out, "s SATISFIABLE")
}

func TestRootCmd_LogLevelFlagRejectsInvalidLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "not-a-level", "solve", "../parsers/testdata/three_var_sat.cnf")
	require.Error(t, err)
}
