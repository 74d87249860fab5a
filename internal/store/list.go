package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/roach88/listq/internal/query"
	"github.com/roach88/listq/internal/querysql"
	"github.com/roach88/listq/internal/sqlval"
)

// Row is one result row keyed by column name.
type Row map[string]any

// BuildSelect prepends "SELECT <columns> FROM <table>" to a compiled
// statement and converts its values to driver arguments.
// Identifiers are not quoted; callers validate them first.
func BuildSelect(table string, columns []string, stmt querysql.Statement) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("no columns selected from %q", table)
	}
	return sq.Select(columns...).
		From(table).
		Suffix(stmt.SQL, sqlval.NativeAll(stmt.Args)...).
		ToSql()
}

// List runs q against table and returns the matching rows.
//
// The table's columns form the allow-list for filter, sort and selected
// names; nil columns selects every column. Rows are returned in the
// query's ORDER BY order, or SQLite's natural order when it has none.
func (s *Store) List(ctx context.Context, table string, columns []string, q query.Query) ([]Row, error) {
	allowed, err := s.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		columns = allowed
	}
	for _, c := range columns {
		if !slices.Contains(allowed, c) {
			return nil, &query.ValidationError{Fields: []string{c}}
		}
	}

	stmt, err := querysql.NewSQLCompiler(allowed...).Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	sqlText, args, err := BuildSelect(table, columns, stmt)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	slog.Debug("list query",
		"table", table,
		"sql", sqlText,
		"args", sqlval.FormatAll(stmt.Args),
	)

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", table, err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Count returns the number of rows matching q's filters, ignoring
// sort and pagination.
func (s *Store) Count(ctx context.Context, table string, q query.Query) (int64, error) {
	allowed, err := s.Columns(ctx, table)
	if err != nil {
		return 0, err
	}
	if err := query.Validate(q, allowed).Err(); err != nil {
		return 0, err
	}

	builder := sq.Select("COUNT(*)").From(table)
	if where := querysql.WhereClause(q.Parameters); where != "" {
		builder = builder.Where(where, sqlval.NativeAll(querysql.ParameterValues(q.Parameters))...)
	}
	sqlText, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	slog.Debug("count query", "table", table, "sql", sqlText)

	var n int64
	if err := s.db.QueryRowContext(ctx, sqlText, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %q: %w", table, err)
	}
	return n, nil
}

// scanRows reads every row into a Row map.
// Returns an empty slice (not nil) when nothing matches.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}
