// Package oda provides the source fetcher for the Folketing open data API
// (oda.ft.dk) and API-compatible mirrors.
//
// # Request Model
//
// Each Fetch performs exactly one GET against the source's endpoint and
// decodes the JSON envelope's record array. Pagination links are ignored:
// upstream responses are assumed to be returned whole.
//
// # Errors
//
// Network failures and non-2xx statuses are reported as *domain.TransportError;
// bodies that are not the expected envelope as *domain.DecodeError. Both
// fail only the source being fetched.
//
// # Rate Limiting
//
// A token bucket (golang.org/x/time/rate) throttles requests across all
// sources sharing a client, and Retry-After hints from throttled responses
// delay the next request.
package oda
