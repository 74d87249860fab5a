package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/listq/internal/query"
	"github.com/roach88/listq/internal/querysql"
	"github.com/roach88/listq/internal/sqlval"
	"github.com/roach88/listq/internal/store"
)

// Harness is the scenario execution engine.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario with a table runs in a fresh in-memory database.
// The returned error reports infrastructure failures only (opening the
// database, running setup); query failures are part of the outcome.
//
// Execution flow:
// 1. Parse the query string and re-encode it
// 2. Compile it against the scenario's allow-list
// 3. Run setup and list the table
// 4. Compare the outcome with the scenario's expectations
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	if scenario.Table != "" {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		h.store = st

		if err := h.executeSetup(ctx, scenario.Setup); err != nil {
			return nil, err
		}
	}

	result := NewResult()
	result.Outcome = h.observe(ctx, scenario)
	h.check(scenario, result)

	h.logger.Debug("scenario finished",
		"name", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)

	return result, nil
}

// executeSetup runs setup statements in order.
func (h *Harness) executeSetup(ctx context.Context, setup []string) error {
	for i, stmt := range setup {
		if _, err := h.store.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("setup[%d] failed: %w", i, err)
		}
	}
	return nil
}

// observe runs the query through every stage, stopping at the first error.
func (h *Harness) observe(ctx context.Context, s *Scenario) Outcome {
	var out Outcome

	q, err := query.Parse(s.Query)
	if err != nil {
		out.Error = errorCode(err)
		return out
	}
	out.HTTP = q.Encode()

	stmt, err := querysql.NewSQLCompiler(s.Fields...).Compile(q)
	if err != nil {
		out.Error = errorCode(err)
		return out
	}
	out.SQL = stmt.SQL
	out.Binds = sqlval.FormatAll(stmt.Args)

	if h.store == nil {
		return out
	}

	rows, err := h.store.List(ctx, s.Table, s.Columns, q)
	if err != nil {
		out.Error = errorCode(err)
		return out
	}

	key := s.key()
	out.Rows = make([]string, 0, len(rows))
	for _, row := range rows {
		v, ok := row[key]
		if !ok {
			out.Error = fmt.Sprintf("row has no %q column", key)
			return out
		}
		out.Rows = append(out.Rows, formatKey(v))
	}
	return out
}

// check compares the outcome with the scenario's expectations.
func (h *Harness) check(s *Scenario, result *Result) {
	exp, out := s.Expect, result.Outcome

	switch {
	case exp.Error != "" && out.Error == "":
		result.AddError(fmt.Sprintf("expected error %s, query succeeded", exp.Error))
	case exp.Error != "" && out.Error != exp.Error:
		result.AddError(fmt.Sprintf("expected error %s, got %s", exp.Error, out.Error))
	case exp.Error == "" && out.Error != "":
		result.AddError(fmt.Sprintf("unexpected error: %s", out.Error))
	}

	if exp.HTTP != "" && exp.HTTP != out.HTTP {
		result.AddError(fmt.Sprintf("http: expected %q, got %q", exp.HTTP, out.HTTP))
	}

	if exp.SQL != "" && exp.SQL != out.SQL {
		result.AddError(fmt.Sprintf("sql: expected %q, got %q", exp.SQL, out.SQL))
	}

	if exp.Binds != nil && !slices.Equal(exp.Binds, out.Binds) {
		result.AddError(fmt.Sprintf("binds: expected [%s], got [%s]",
			strings.Join(exp.Binds, ", "), strings.Join(out.Binds, ", ")))
	}

	if exp.Rows != nil {
		want := make([]string, len(exp.Rows))
		for i, v := range exp.Rows {
			want[i] = formatKey(v)
		}
		if !slices.Equal(want, out.Rows) {
			result.AddError(fmt.Sprintf("rows: expected [%s], got [%s]",
				strings.Join(want, ", "), strings.Join(out.Rows, ", ")))
		}
	}
}

// errorCode returns the code carried by err, or its text.
func errorCode(err error) string {
	if code := query.Code(err); code != "" {
		return string(code)
	}
	return err.Error()
}

// formatKey renders a key value from YAML or the database the same way.
func formatKey(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}
