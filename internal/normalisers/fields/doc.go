// Package fields holds the value resolution and coercion helpers shared by
// the normalisers: fixed-precedence field lookup, string/boolean coercion
// and upstream date normalisation.
package fields
