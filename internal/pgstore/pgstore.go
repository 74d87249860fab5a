package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roach88/listq/internal/query"
	"github.com/roach88/listq/internal/querysql"
	"github.com/roach88/listq/internal/sqlval"
)

// ErrUnknownTable is returned when a table does not exist in the current schema.
var ErrUnknownTable = errors.New("unknown table")

// Querier is the subset of *pgx.Conn and *pgxpool.Pool used by Store.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store lists rows from a PostgreSQL database.
type Store struct {
	db    Querier
	close func()
}

// Connect opens a connection pool for dsn and checks it is reachable.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{db: pool, close: pool.Close}, nil
}

// New wraps an existing connection or pool. Close is a no-op for stores
// created with New; the caller owns db.
func New(db Querier) *Store {
	return &Store{db: db}
}

// Close releases the pool opened by Connect.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Columns returns the column names of table in ordinal order.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("query columns of %q: %w", table, err)
	}

	columns, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect columns of %q: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return columns, nil
}

// List runs q against table and returns the matching rows keyed by column
// name. Nil columns selects every column.
func (s *Store) List(ctx context.Context, table string, columns []string, q query.Query) ([]map[string]any, error) {
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

	rows, err := s.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", table, err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect rows of %q: %w", table, err)
	}
	if result == nil {
		result = []map[string]any{}
	}
	return result, nil
}

// Count returns the number of rows matching q's filters, ignoring sort
// and pagination.
func (s *Store) Count(ctx context.Context, table string, q query.Query) (int64, error) {
	allowed, err := s.Columns(ctx, table)
	if err != nil {
		return 0, err
	}
	if err := query.Validate(q, allowed).Err(); err != nil {
		return 0, err
	}

	sqlText, args, err := BuildCount(table, q.Parameters)
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	slog.Debug("count query", "table", table, "sql", sqlText)

	var n int64
	if err := s.db.QueryRow(ctx, sqlText, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %q: %w", table, err)
	}
	return n, nil
}

// BuildSelect prepends "SELECT <columns> FROM <table>" to a compiled
// statement and rewrites it for PostgreSQL.
// Identifiers are not quoted; callers validate them first.
func BuildSelect(table string, columns []string, stmt querysql.Statement) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("no columns selected from %q", table)
	}
	return sq.Select(columns...).
		From(table).
		Suffix(nullSafe(stmt.SQL), sqlval.NativeAll(stmt.Args)...).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// BuildCount returns a COUNT(*) statement over table filtered by params.
func BuildCount(table string, params query.Parameters) (string, []any, error) {
	builder := sq.Select("COUNT(*)").From(table).PlaceholderFormat(sq.Dollar)
	if where := querysql.WhereClause(params); where != "" {
		builder = builder.Where(nullSafe(where), sqlval.NativeAll(querysql.ParameterValues(params))...)
	}
	return builder.ToSql()
}

func nullSafe(sql string) string {
	return strings.ReplaceAll(sql, " IS ?", " IS NOT DISTINCT FROM ?")
}
