package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
query: "name=contains:a&order=id:asc"
fields: [id, name]
setup:
  - "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)"
table: t
expect:
  sql: "WHERE name LIKE ? ORDER BY id ASC LIMIT ? OFFSET ?"
  binds: ['text("%a%")', 'integer(50)', 'integer(0)']
  rows: [1, 2]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, "name=contains:a&order=id:asc", scenario.Query)
	assert.Equal(t, []string{"id", "name"}, scenario.Fields)
	assert.Len(t, scenario.Setup, 1)
	assert.Equal(t, "t", scenario.Table)
	assert.Equal(t, DefaultKey, scenario.key())
	assert.Equal(t, []string{`text("%a%")`, "integer(50)", "integer(0)"}, scenario.Expect.Binds)
	assert.Equal(t, []any{1, 2}, scenario.Expect.Rows)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "misspelled key"
query: "a=1"
expct:
  sql: "WHERE a = ? LIMIT ? OFFSET ?"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nexpect: {sql: x}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nexpect: {sql: x}\n",
			wantErr: "description is required",
		},
		{
			name:    "empty expect",
			content: "name: n\ndescription: d\nquery: a=1\n",
			wantErr: "expect must check at least one",
		},
		{
			name:    "error with sql",
			content: "name: n\ndescription: d\nexpect: {error: INVALID_SORT_FIELD, sql: x}\n",
			wantErr: "expect.error excludes",
		},
		{
			name:    "setup without table",
			content: "name: n\ndescription: d\nsetup: [\"CREATE TABLE t (id INTEGER)\"]\nexpect: {sql: x}\n",
			wantErr: "table is required with setup",
		},
		{
			name:    "table without setup",
			content: "name: n\ndescription: d\ntable: t\nexpect: {sql: x}\n",
			wantErr: "setup is required",
		},
		{
			name:    "rows without table",
			content: "name: n\ndescription: d\nexpect: {rows: [1]}\n",
			wantErr: "expect.rows requires table",
		},
		{
			name:    "empty setup statement",
			content: "name: n\ndescription: d\nsetup: [\"\"]\ntable: t\nexpect: {sql: x}\n",
			wantErr: "setup[0]: statement is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_EmptyQueryIsValid(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: defaults
description: "empty query string"
query: ""
expect:
  http: "limit=50&offset=0"
`))
	require.NoError(t, err)
	assert.Empty(t, scenario.Query)
}
