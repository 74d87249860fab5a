package querysql

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/listq/internal/query"
	"github.com/roach88/listq/internal/sqlval"
)

// Statement is a compiled SQL fragment and its bind values.
type Statement struct {
	SQL  string      `json:"sql"`
	Args sqlval.List `json:"args"`
}

// SQLCompiler compiles queries to "?"-parameterized SQL fragments.
type SQLCompiler struct {
	// AllowedFields restricts filter and sort identifiers.
	// nil disables the check.
	AllowedFields []string
}

// NewSQLCompiler creates a compiler that only accepts the given fields.
// With no fields, identifiers are not checked.
func NewSQLCompiler(allowed ...string) *SQLCompiler {
	if len(allowed) == 0 {
		return &SQLCompiler{}
	}
	return &SQLCompiler{AllowedFields: allowed}
}

// Compile converts q to a Statement.
// Fails when a field is outside AllowedFields, or when a verbatim field name
// would shift placeholder positions.
func (c *SQLCompiler) Compile(q query.Query) (Statement, error) {
	if c.AllowedFields != nil {
		if err := query.Validate(q, c.AllowedFields).Err(); err != nil {
			return Statement{}, fmt.Errorf("validate fields: %w", err)
		}
	}

	sql := ToSQL(q)
	args := Values(q)

	if n := strings.Count(sql, "?"); n != len(args) {
		return Statement{}, fmt.Errorf("placeholder mismatch: %d placeholders, %d values", n, len(args))
	}

	return Statement{SQL: sql, Args: args}, nil
}

// ToSQL returns the WHERE, ORDER BY and LIMIT/OFFSET clauses joined by
// spaces. LIMIT ? OFFSET ? is always present.
func ToSQL(q query.Query) string {
	parts := make([]string, 0, 3)
	if where := WhereClause(q.Parameters); where != "" {
		parts = append(parts, "WHERE "+where)
	}
	if order := OrderClause(q.SortFields); order != "" {
		parts = append(parts, "ORDER BY "+order)
	}
	parts = append(parts, "LIMIT ? OFFSET ?")
	return strings.Join(parts, " ")
}

// WhereClause returns the conditions for params joined by " AND ", without
// the WHERE keyword. Fields that produce no condition are left out.
func WhereClause(params query.Parameters) string {
	conds, _ := compileParameters(params)
	return strings.Join(conds, " AND ")
}

// OrderClause returns "name ASC|DESC" items joined by ", ", without the
// ORDER BY keyword. Blank names are skipped.
func OrderClause(fields query.SortFields) string {
	items := make([]string, 0, fields.Len())
	for name, order := range fields.All() {
		if strings.TrimSpace(name) == "" {
			continue
		}
		items = append(items, name+" "+order.SQL())
	}
	return strings.Join(items, ", ")
}

// ParameterValues returns the bind values for WhereClause, in placeholder
// order.
func ParameterValues(params query.Parameters) []sqlval.Value {
	_, values := compileParameters(params)
	return values
}

// PaginationValues returns the bind values for "LIMIT ? OFFSET ?".
func PaginationValues(q query.Query) []sqlval.Value {
	return []sqlval.Value{toInteger(q.Limit), toInteger(q.Offset)}
}

// Values returns the bind values for ToSQL: filter values followed by
// limit and offset.
func Values(q query.Query) []sqlval.Value {
	return append(ParameterValues(q.Parameters), PaginationValues(q)...)
}

// TotalParameterCount returns the sum of all filter value counts plus two
// for limit and offset. An odd trailing Between value is counted even
// though it is not bound.
func TotalParameterCount(q query.Query) int {
	n := 2
	for _, param := range q.Parameters.All() {
		n += len(param.Values)
	}
	return n
}

// compileParameters produces conditions and values together so their
// order cannot drift apart.
func compileParameters(params query.Parameters) ([]string, []sqlval.Value) {
	var (
		conds  []string
		values []sqlval.Value
	)
	for field, param := range params.All() {
		cond, vals := compileParameter(field, param)
		if cond == "" {
			continue
		}
		conds = append(conds, cond)
		values = append(values, vals...)
	}
	return conds, values
}

// compileParameter returns one condition for field and its bind values.
// An empty condition means the field is skipped.
func compileParameter(field string, param query.Parameter) (string, []sqlval.Value) {
	vals := param.Values
	if len(vals) == 0 {
		return "", nil
	}

	switch param.Similarity {
	case query.Equals:
		return compileEquals(field, vals), bindAll(param.Similarity, vals)
	case query.Contains, query.StartsWith, query.EndsWith:
		return anyOf(field+" LIKE ?", len(vals)), bindAll(param.Similarity, vals)
	case query.Lesser:
		return anyOf(field+" < ?", len(vals)), bindAll(param.Similarity, vals)
	case query.LesserOrEqual:
		return anyOf(field+" <= ?", len(vals)), bindAll(param.Similarity, vals)
	case query.Greater:
		return anyOf(field+" > ?", len(vals)), bindAll(param.Similarity, vals)
	case query.GreaterOrEqual:
		return anyOf(field+" >= ?", len(vals)), bindAll(param.Similarity, vals)
	case query.Between:
		pairs := len(vals) / 2
		if pairs == 0 {
			return "", nil
		}
		return anyOf(field+" BETWEEN ? AND ?", pairs), bindAll(param.Similarity, vals[:pairs*2])
	default:
		return "", nil
	}
}

func compileEquals(field string, vals []string) string {
	if len(vals) == 1 {
		if vals[0] == nullLiteral {
			return field + " IS ?"
		}
		return field + " = ?"
	}
	return field + " IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(vals)), ", ") + ")"
}

// anyOf OR-joins n copies of cond, parenthesized when n > 1.
func anyOf(cond string, n int) string {
	if n == 1 {
		return cond
	}
	items := make([]string, n)
	for i := range items {
		items[i] = cond
	}
	return "(" + strings.Join(items, " OR ") + ")"
}

// nullLiteral is the filter value that binds SQL NULL.
const nullLiteral = "null"

func bindAll(sim query.Similarity, vals []string) []sqlval.Value {
	out := make([]sqlval.Value, len(vals))
	for i, v := range vals {
		out[i] = bindValue(sim, v)
	}
	return out
}

// bindValue types one filter value: "null" binds NULL, pattern similarities
// bind LIKE wildcards, everything else binds an integer, then a real, then
// text, whichever parses first.
func bindValue(sim query.Similarity, v string) sqlval.Value {
	if v == nullLiteral {
		return sqlval.Null{}
	}
	if sim.IsPattern() {
		return sqlval.Text(likePattern(sim, v))
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return sqlval.Integer(n)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return sqlval.Real(f)
	}
	return sqlval.Text(v)
}

// likePattern wraps v in LIKE wildcards: open on the right for
// starts-with, on the left for ends-with, both sides for contains.
func likePattern(sim query.Similarity, v string) string {
	prefix, suffix := "%", "%"
	switch sim {
	case query.StartsWith:
		prefix = ""
	case query.EndsWith:
		suffix = ""
	}
	return prefix + v + suffix
}

func toInteger(n uint64) sqlval.Integer {
	if n > math.MaxInt64 {
		return sqlval.Integer(math.MaxInt64)
	}
	return sqlval.Integer(n)
}
