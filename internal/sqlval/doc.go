// Package sqlval defines the typed bind values produced by the SQL compiler.
//
// Value is a sealed interface: only Null, Integer, Real, Text and Blob
// implement it, so type switches over Value are exhaustive. Driver adapters
// convert values with Native.
package sqlval
