// Package connectors holds the upstream fetchers. Each connector knows how
// to read one API family and implements driven.Fetcher.
//
// The oda connector reads the parliament open data (OData) API.
package connectors
