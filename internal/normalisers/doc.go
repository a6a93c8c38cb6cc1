// Package normalisers provides implementations of the Normaliser interface
// for each canonical entity kind. Each normaliser maps one upstream record
// shape onto its canonical record using fixed field-precedence tables.
//
// Normalisers are registered with the Registry at startup.
package normalisers
