package oda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies us to the upstream API.
	DefaultUserAgent = "tingsync/1.0"

	// MaxBodyBytes bounds how much of a response body is read.
	MaxBodyBytes = 64 << 20

	// nextLinkKey marks a paginated response. We only read the first page.
	nextLinkKey = "odata.nextLink"
)

// Config holds client settings.
type Config struct {
	// Timeout bounds each individual request. Rounds are not bounded.
	Timeout time.Duration

	// RatePerSecond is the proactive throttle shared by all sources.
	RatePerSecond float64

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Ensure Client implements the interface.
var _ driven.Fetcher = (*Client)(nil)

// Client fetches records from the parliament open data API.
type Client struct {
	http        *http.Client
	rateLimiter *RateLimiter
	userAgent   string
}

// NewClient creates a client from cfg, filling in defaults.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		http:        httpClient,
		rateLimiter: NewRateLimiter(cfg.RatePerSecond),
		userAgent:   userAgent,
	}
}

// Fetch performs one GET against the source endpoint and returns the
// records of its envelope array, in upstream order.
func (c *Client) Fetch(ctx context.Context, source domain.SyncSource) ([]domain.RawRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Source: source.ID, URL: source.URL, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, http.NoBody)
	if err != nil {
		return nil, &domain.TransportError{Source: source.ID, URL: source.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debug("GET %s (source %s)", source.URL, source.ID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Source: source.ID, URL: source.URL, Err: err}
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &domain.TransportError{
			Source:     source.ID,
			URL:        source.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &domain.TransportError{Source: source.ID, URL: source.URL, Err: fmt.Errorf("read body: %w", err)}
	}

	records, err := decodeEnvelope(body, source.EnvelopeKey())
	if err != nil {
		return nil, &domain.DecodeError{Source: source.ID, Err: err}
	}

	logger.Debug("Fetched %d records from %s", len(records), source.ID)
	return records, nil
}

// decodeEnvelope extracts the record array stored under key.
// Numbers are kept as json.Number so large identifiers keep their text form.
func decodeEnvelope(body []byte, key string) ([]domain.RawRecord, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("parse envelope: body is null")
	}

	if next, ok := envelope[nextLinkKey]; ok && string(next) != "null" {
		logger.Warn("Upstream response is paginated; only the first page is synchronised")
	}

	rawArray, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEnvelopeMissing, key)
	}

	dec := json.NewDecoder(bytes.NewReader(rawArray))
	dec.UseNumber()
	var records []domain.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelopeNotArray, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: null", ErrEnvelopeNotArray)
	}

	return records, nil
}
