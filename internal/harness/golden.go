package harness

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"golang.org/x/text/unicode/norm"
)

// Snapshot renders a scenario outcome as text for golden comparison.
//
// Lines appear in a fixed order and empty observations are left out.
// The text is normalized to NFC.
func Snapshot(scenario *Scenario, result *Result) []byte {
	var buf bytes.Buffer
	line := func(label, value string) {
		fmt.Fprintf(&buf, "%s: %s\n", label, value)
	}

	out := result.Outcome
	line("scenario", scenario.Name)
	line("query", scenario.Query)
	if out.HTTP != "" {
		line("http", out.HTTP)
	}
	if out.SQL != "" {
		line("sql", out.SQL)
	}
	if len(out.Binds) > 0 {
		line("binds", strings.Join(out.Binds, ", "))
	}
	if out.Rows != nil {
		if len(out.Rows) == 0 {
			line("rows", "(none)")
		} else {
			line("rows", strings.Join(out.Rows, ", "))
		}
	}
	if out.Error != "" {
		line("error", out.Error)
	}

	return norm.NFC.Bytes(buf.Bytes())
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file. The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, Snapshot(scenario, result))
	return result, nil
}

// AssertGolden compares a snapshot against testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, name string, snapshot []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
}
