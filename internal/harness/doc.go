// Package harness runs conformance scenarios for list queries.
//
// A scenario feeds one HTTP query string through parsing, re-encoding and
// SQL compilation, and optionally runs it against an in-memory SQLite
// table built by the scenario's setup statements.
//
// # Scenario Format
//
//	name: contains_sorted
//	description: "Substring filter with descending sort"
//	query: "name=contains:dam&order=age:desc"
//	fields: [name, age]          # optional allow-list for the compiler
//	setup:                       # optional SQL run before the query
//	  - CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, age INTEGER)
//	  - INSERT INTO people VALUES (1, 'damian', 34), (2, 'adam', 28)
//	table: people                # required with setup
//	columns: [id, name]          # optional selected columns
//	key: id                      # row identity column, defaults to id
//	expect:
//	  http: "name=contains:dam&order=age:desc&limit=50&offset=0"
//	  sql: "WHERE name LIKE ? ORDER BY age DESC LIMIT ? OFFSET ?"
//	  binds: ['text("%dam%")', integer(50), integer(0)]
//	  rows: [1, 2]
//
// Binds use the sqlval.Format notation. An expected error is the error
// code (for example INVALID_SORT_FIELD or UNKNOWN_FIELD) and excludes sql,
// binds and rows.
//
// # Golden Snapshots
//
// Snapshot renders a scenario's outcome as line-oriented text, normalized
// to Unicode NFC so composed and decomposed input compare equal.
// RunWithGolden compares it against testdata/golden/<name>.golden:
//
//	go test ./internal/harness -update
package harness
