package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates an unknown entity kind.
	ErrUnsupportedKind = errors.New("unsupported entity kind")

	// ErrSyncInProgress indicates a sync round is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrConstraint indicates a store write violated a uniqueness constraint.
	ErrConstraint = errors.New("constraint violation")

	// ErrMissingExternalID indicates a record has no usable external identifier.
	ErrMissingExternalID = errors.New("missing external id")
)

// TransportError reports an upstream endpoint that was unreachable or
// answered with a non-success status. It fails the whole source for the round.
type TransportError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s: GET %s: status %d", e.Source, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport: %s: GET %s: %v", e.Source, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports an upstream body that could not be parsed as the
// expected envelope. It fails the whole source for the round.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecordError reports a single record that could not be written.
// Record errors are collected, never propagated.
type RecordError struct {
	// Index is the record's position in the upstream response.
	Index int

	// ExternalID is the record key, empty when the record had none.
	ExternalID string

	Err error
}

func (e *RecordError) Error() string {
	if e.ExternalID == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.ExternalID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsSourceFatal reports whether err ends a source's attempt for the round.
func IsSourceFatal(err error) bool {
	var te *TransportError
	var de *DecodeError
	return errors.As(err, &te) || errors.As(err, &de)
}
