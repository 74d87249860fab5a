// Package querysql compiles a query.Query into a parameterized SQL fragment
// and its bind values.
//
// The fragment has the shape
//
//	WHERE <cond> [AND <cond>]* ORDER BY <field> {ASC|DESC}[, ...] LIMIT ? OFFSET ?
//
// with WHERE and ORDER BY omitted when empty. Values are never
// interpolated: every literal becomes a '?' placeholder, and the bind
// sequence lists one value per placeholder in the order they appear.
//
// Field names are emitted verbatim. Use SQLCompiler with an allow-list, or
// query.Validate, before compiling untrusted input.
package querysql
