// Package query models a list query: field filters, sort order and
// pagination, and converts it to and from an HTTP query string.
//
// QUERY STRING GRAMMAR:
//
//	name=contains:damian&surname=equals:black,steel&order=date_created:desc&limit=40&offset=0
//
// Every key other than the reserved keys (order, limit, offset) names a
// field. Its value is either similarity-qualified ("similarity:v1,v2") or a
// bare value, which is shorthand for "equals:value".
//
// MERGE RULES:
//
// Repeated keys are folded left to right:
//   - A similarity-qualified value replaces any earlier entry for the key.
//   - A bare value is appended to an earlier Equals entry, creates a new
//     Equals entry when the key is unseen, and is discarded when the key
//     already holds a non-Equals entry.
//   - The last valid order= token wins.
//
// STRICTNESS:
//
// Structural grammar errors (a token without '=', an order value without a
// colon, an unknown similarity, a malformed "similarity:values" pair) abort
// the parse with a *ParseError. Non-numeric limit/offset values fall back to
// their defaults and an order value that contains a colon but fails to parse
// is ignored, so pagination stays robust against client noise.
//
// Field names are passed through verbatim. Check them with Validate before
// using them as SQL identifiers.
//
// SQL compilation lives in package querysql; this package has no database
// dependency.
package query
