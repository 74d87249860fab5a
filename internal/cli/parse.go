package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/listq/internal/query"
)

// ParseResult is the parse command's JSON payload.
type ParseResult struct {
	Query query.Query `json:"query"`
	HTTP  string      `json:"http"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Parse a list query string",
		Long: `Parse an HTTP list query string and print its filters, sort fields
and pagination, followed by the canonical query string.

Filters are written field=similarity:v1,v2 or field=value. Similarities:
  ` + similarityTokens() + `

Examples:
  listq parse 'name=contains:dam&order=age:desc'
  listq parse '?surname=black&surname=steel&limit=10' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

// similarityTokens lists every similarity token, comma separated.
func similarityTokens() string {
	sims := query.Similarities()
	tokens := make([]string, len(sims))
	for i, sim := range sims {
		tokens[i] = sim.String()
	}
	return strings.Join(tokens, ", ")
}

func runParse(opts *RootOptions, search string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	q, err := query.Parse(search)
	if err != nil {
		return outputQueryError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ParseResult{Query: q, HTTP: q.Encode()})
	}
	return formatter.Success(describeQuery(q))
}

// describeQuery renders q for humans.
func describeQuery(q query.Query) string {
	var b strings.Builder

	b.WriteString("Filters:\n")
	if q.Parameters.Len() == 0 {
		b.WriteString("  (none)\n")
	}
	for field, param := range q.Parameters.All() {
		fmt.Fprintf(&b, "  %s %s [%s]\n", field, param.Similarity, strings.Join(param.Values, ", "))
	}

	b.WriteString("Sort:\n")
	if q.SortFields.Len() == 0 {
		b.WriteString("  (none)\n")
	}
	for name, order := range q.SortFields.All() {
		fmt.Fprintf(&b, "  %s %s\n", name, order.SQL())
	}

	fmt.Fprintf(&b, "Limit: %d\n", q.Limit)
	fmt.Fprintf(&b, "Offset: %d\n", q.Offset)
	fmt.Fprintf(&b, "HTTP: %s", q.Encode())
	return b.String()
}
