package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/listq/internal/pgstore"
	"github.com/roach88/listq/internal/query"
	"github.com/roach88/listq/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string // SQLite file
	DSN      string // PostgreSQL connection string
	Table    string
	Columns  []string
	Count    bool // also report the unpaginated match count
}

// ListResult is the list command's JSON payload.
type ListResult struct {
	Table   string      `json:"table"`
	Columns []string    `json:"columns"`
	Rows    []store.Row `json:"rows"`
	Total   *int64      `json:"total,omitempty"`
}

// rowSource is the read path shared by the SQLite and PostgreSQL stores.
type rowSource interface {
	Columns(ctx context.Context, table string) ([]string, error)
	List(ctx context.Context, table string, columns []string, q query.Query) ([]store.Row, error)
	Count(ctx context.Context, table string, q query.Query) (int64, error)
	Close() error
}

// pgSource adapts pgstore.Store to rowSource.
type pgSource struct {
	*pgstore.Store
}

func (p pgSource) List(ctx context.Context, table string, columns []string, q query.Query) ([]store.Row, error) {
	rows, err := p.Store.List(ctx, table, columns, q)
	if err != nil {
		return nil, err
	}
	out := make([]store.Row, len(rows))
	for i, row := range rows {
		out[i] = store.Row(row)
	}
	return out, nil
}

func (p pgSource) Close() error {
	p.Store.Close()
	return nil
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <query>",
		Short: "Run a list query against a database table",
		Long: `Run an HTTP list query string against a table in a SQLite file (--db)
or a PostgreSQL database (--dsn). The database is opened read-only.

The table's columns are the only accepted filter, sort and selected names.

Examples:
  listq list 'surname=black&order=age:desc' --db ./people.db --table people
  listq list 'age=greater:30&limit=5' --db ./people.db --table people --columns id,name --count
  listq list 'name=contains:dam' --dsn postgres://localhost/app --table people`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table or view to list (required)")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "columns to select (default all)")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "report the total number of matching rows")
	_ = cmd.MarkFlagRequired("table")
	cmd.MarkFlagsOneRequired("db", "dsn")
	cmd.MarkFlagsMutuallyExclusive("db", "dsn")

	return cmd
}

func runList(opts *ListOptions, search string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	q, err := query.Parse(search)
	if err != nil {
		return outputQueryError(formatter, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src, err := openSource(ctx, opts)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	formatter.VerboseLog("Listing %s", opts.Table)

	rows, err := src.List(ctx, opts.Table, opts.Columns, q)
	if err != nil {
		return outputStoreError(formatter, opts.Table, err)
	}

	columns := opts.Columns
	if len(columns) == 0 {
		if columns, err = src.Columns(ctx, opts.Table); err != nil {
			return outputStoreError(formatter, opts.Table, err)
		}
	}

	result := ListResult{Table: opts.Table, Columns: columns, Rows: rows}
	if opts.Count {
		total, err := src.Count(ctx, opts.Table, q)
		if err != nil {
			return outputStoreError(formatter, opts.Table, err)
		}
		result.Total = &total
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(renderRows(result))
}

// openSource connects to PostgreSQL when a DSN is given and opens the
// SQLite file read-only otherwise.
func openSource(ctx context.Context, opts *ListOptions) (rowSource, error) {
	if opts.DSN != "" {
		pg, err := pgstore.Connect(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return pgSource{Store: pg}, nil
	}

	if _, err := os.Stat(opts.Database); err != nil {
		return nil, fmt.Errorf("database not found: %s", opts.Database)
	}
	return store.OpenReadOnly(opts.Database)
}

// outputStoreError maps store failures to CLI errors.
func outputStoreError(formatter *OutputFormatter, table string, err error) error {
	if errors.Is(err, store.ErrUnknownTable) || errors.Is(err, pgstore.ErrUnknownTable) {
		_ = formatter.Error(ErrCodeUnknownTable, fmt.Sprintf("table not found: %s", table), nil)
		return WrapExitError(ExitCommandError, "table not found", err)
	}
	return outputQueryError(formatter, err)
}

// renderRows formats rows as an aligned table followed by a row count.
func renderRows(result ListResult) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i, c := range result.Columns {
			cells[i] = formatCell(row[c])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	fmt.Fprintf(&b, "(%d rows", len(result.Rows))
	if result.Total != nil {
		fmt.Fprintf(&b, " of %d", *result.Total)
	}
	b.WriteString(")")
	return b.String()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
