// Package pgstore runs list queries against PostgreSQL through pgx.
//
// Compiled statements use '?' placeholders and "IS ?" for single null
// equality. BuildSelect rewrites both for PostgreSQL: placeholders become
// $1..$n and "IS ?" becomes "IS NOT DISTINCT FROM ?", since PostgreSQL only
// accepts a NULL literal after IS.
//
// Table columns are read from information_schema in the connection's
// current schema and act as the allow-list for every identifier in a query.
package pgstore
