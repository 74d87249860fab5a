package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: passing
description: "compiles a simple filter"
query: "age=greater:30"
expect:
  sql: "WHERE age > ? LIMIT ? OFFSET ?"
  binds: ['integer(30)', 'integer(50)', 'integer(0)']
`

const failingScenario = `
name: failing
description: "expects the wrong SQL"
query: "age=greater:30"
expect:
  sql: "WHERE age < ? LIMIT ? OFFSET ?"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(t, NewTestCommand, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := execute(t, NewTestCommand, &RootOptions{Format: "text"}, "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := execute(t, NewTestCommand, &RootOptions{Format: "text"}, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := execute(t, NewTestCommand, &RootOptions{Format: "json"}, t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
	assert.Empty(t, resp.Data.Scenarios)
}

func TestTestCommandPassAndFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "passing.yaml"), passingScenario)
	writeFile(t, filepath.Join(dir, "failing.yaml"), failingScenario)

	out, err := execute(t, NewTestCommand, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ passing")
	assert.Contains(t, out, "✗ failing")
	assert.Contains(t, out, `sql: expected "WHERE age < ? LIMIT ? OFFSET ?"`)
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFilterJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "passing.yaml"), passingScenario)
	writeFile(t, filepath.Join(dir, "failing.yaml"), failingScenario)

	out, err := execute(t, NewTestCommand, &RootOptions{Format: "json", TraceID: "trace-7"}, dir, "--filter", "pass*")
	require.NoError(t, err)

	var resp struct {
		Status  string     `json:"status"`
		Data    TestResult `json:"data"`
		TraceID string     `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-7", resp.TraceID)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "passing", resp.Data.Scenarios[0].Name)
	assert.True(t, resp.Data.Scenarios[0].Pass)
}

func TestTestCommandInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: broken\n")

	out, err := execute(t, NewTestCommand, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "passing.yaml")
	writeFile(t, scenarioPath, passingScenario)

	out, err := execute(t, NewTestCommand, &RootOptions{Format: "text"}, dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ passing (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "passing.golden"))
	require.NoError(t, err)
	assert.Equal(t, "scenario: passing\n"+
		"query: age=greater:30\n"+
		"http: age=greater:30&limit=50&offset=0\n"+
		"sql: WHERE age > ? LIMIT ? OFFSET ?\n"+
		"binds: integer(30), integer(50), integer(0)\n", string(golden))

	// Matches the fresh golden file
	_, err = execute(t, NewTestCommand, &RootOptions{Format: "text"}, dir)
	require.NoError(t, err)

	// A stale golden file fails the scenario
	writeFile(t, filepath.Join(dir, "golden", "passing.golden"), "scenario: passing\n")
	out, err = execute(t, NewTestCommand, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Contains(t, out, "snapshot does not match golden file")
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := execute(t, NewTestCommand, &RootOptions{Format: "text"}, filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ All scenarios passed")
}
