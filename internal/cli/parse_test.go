package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a subcommand built from opts with args, returning stdout.
func execute(t *testing.T, newCmd func(*RootOptions) *cobra.Command, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestParseCommand_Text(t *testing.T) {
	out, err := execute(t, NewParseCommand, &RootOptions{Format: "text"},
		"name=contains:dam&age=between:20,40&order=age:desc,name:asc&limit=10")
	require.NoError(t, err)

	want := "Filters:\n" +
		"  name contains [dam]\n" +
		"  age between [20, 40]\n" +
		"Sort:\n" +
		"  age DESC\n" +
		"  name ASC\n" +
		"Limit: 10\n" +
		"Offset: 0\n" +
		"HTTP: name=contains:dam&age=between:20,40&order=age:desc,name:asc&limit=10&offset=0\n"
	assert.Equal(t, want, out)
}

func TestParseCommand_TextEmpty(t *testing.T) {
	out, err := execute(t, NewParseCommand, &RootOptions{Format: "text"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Filters:\n  (none)\nSort:\n  (none)\nLimit: 50\nOffset: 0\n")
}

func TestParseCommand_JSON(t *testing.T) {
	out, err := execute(t, NewParseCommand, &RootOptions{Format: "json"}, "?surname=black&surname=steel&offset=5")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Query struct {
				Parameters []struct {
					Field      string   `json:"field"`
					Similarity string   `json:"similarity"`
					Values     []string `json:"values"`
				} `json:"parameters"`
				Limit  uint64 `json:"limit"`
				Offset uint64 `json:"offset"`
			} `json:"query"`
			HTTP string `json:"http"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Query.Parameters, 1)
	assert.Equal(t, "surname", resp.Data.Query.Parameters[0].Field)
	assert.Equal(t, "equals", resp.Data.Query.Parameters[0].Similarity)
	assert.Equal(t, []string{"black", "steel"}, resp.Data.Query.Parameters[0].Values)
	assert.Equal(t, uint64(50), resp.Data.Query.Limit)
	assert.Equal(t, uint64(5), resp.Data.Query.Offset)
	assert.Equal(t, "surname=equals:black,steel&limit=50&offset=5", resp.Data.HTTP)
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		search   string
		wantCode string
	}{
		{"order=name", "INVALID_SORT_FIELD"},
		{"age=around:1", "INVALID_SIMILARITY"},
		{"a=b=c", "INVALID_SEARCH_PARAMETERS"},
		{"age=:1", "INVALID_PARAMETER"},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			out, err := execute(t, NewParseCommand, &RootOptions{Format: "json"}, tt.search)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestParseCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, NewParseCommand, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestParseCommand_HelpListsSimilarities(t *testing.T) {
	cmd := NewParseCommand(&RootOptions{Format: "text"})
	for _, token := range []string{"equals", "contains", "starts-with", "ends-with", "between",
		"lesser", "lesser-or-equal", "greater", "greater-or-equal"} {
		assert.Contains(t, cmd.Long, token)
	}
}
