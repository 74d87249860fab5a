package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/listq/internal/query"
	"github.com/roach88/listq/internal/querysql"
	"github.com/roach88/listq/internal/sqlval"
)

// SQLOptions holds flags for the sql command.
type SQLOptions struct {
	*RootOptions
	Fields []string // allow-list; empty disables the check
}

// SQLResult is the sql command's JSON payload.
type SQLResult struct {
	SQL            string      `json:"sql"`
	Binds          sqlval.List `json:"binds"`
	ParameterCount int         `json:"parameter_count"`
}

// NewSQLCommand creates the sql command.
func NewSQLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SQLOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Compile a list query to SQL",
		Long: `Compile an HTTP list query string into a parameterized SQL fragment
(WHERE, ORDER BY, LIMIT/OFFSET) and its bind values.

Field names are used verbatim as SQL identifiers. Pass --fields to reject
queries naming any other field.

Examples:
  listq sql 'name=contains:dam&order=age:desc'
  listq sql 'age=between:20,40' --fields name,age --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Fields, "fields", nil, "allowed field names (comma-separated)")

	return cmd
}

func runSQL(opts *SQLOptions, search string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	q, err := query.Parse(search)
	if err != nil {
		return outputQueryError(formatter, err)
	}

	stmt, err := querysql.NewSQLCompiler(opts.Fields...).Compile(q)
	if err != nil {
		return outputQueryError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(SQLResult{
			SQL:            stmt.SQL,
			Binds:          stmt.Args,
			ParameterCount: querysql.TotalParameterCount(q),
		})
	}

	return formatter.Success(stmt.SQL + "\nbinds: " + strings.Join(sqlval.FormatAll(stmt.Args), ", "))
}
