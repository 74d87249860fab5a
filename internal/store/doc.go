// Package store runs compiled list queries against SQLite.
//
// The store is the driver boundary for the query compiler: it discovers a
// table's columns, uses them as the identifier allow-list, compiles the
// query, prepends "SELECT <columns> FROM <table>" and binds the values with
// go-sqlite3.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
