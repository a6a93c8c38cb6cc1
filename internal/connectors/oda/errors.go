package oda

import "errors"

// Envelope errors. They are wrapped in a *domain.DecodeError.
var (
	// ErrEnvelopeMissing indicates the response object lacks the record array.
	ErrEnvelopeMissing = errors.New("oda: envelope key missing")

	// ErrEnvelopeNotArray indicates the envelope key is not an array of objects.
	ErrEnvelopeNotArray = errors.New("oda: envelope is not an array of objects")
)
