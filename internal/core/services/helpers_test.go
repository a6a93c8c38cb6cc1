package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeFetcher serves canned records per source ID.
type fakeFetcher struct {
	mu      sync.Mutex
	records map[string][]domain.RawRecord
	errs    map[string]error
	panics  map[string]bool
	calls   map[string]int

	// started receives the source ID when Fetch begins, if set.
	started chan string
	// release blocks Fetch until closed, if set.
	release chan struct{}
}

var _ driven.Fetcher = (*fakeFetcher)(nil)

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		records: make(map[string][]domain.RawRecord),
		errs:    make(map[string]error),
		panics:  make(map[string]bool),
		calls:   make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, source domain.SyncSource) ([]domain.RawRecord, error) {
	f.mu.Lock()
	f.calls[source.ID]++
	records, err, panics := f.records[source.ID], f.errs[source.ID], f.panics[source.ID]
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- source.ID
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if panics {
		panic("upstream exploded")
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeFetcher) Calls(sourceID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[sourceID]
}

func (f *fakeFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// rawRecords builds n raw records with ids 1..n.
func rawRecords(n int) []domain.RawRecord {
	records := make([]domain.RawRecord, n)
	for i := range records {
		records[i] = domain.RawRecord{
			"id":    fmt.Sprint(i + 1),
			"titel": fmt.Sprintf("Record %d", i+1),
		}
	}
	return records
}

func caseSource(id string) domain.SyncSource {
	return domain.SyncSource{
		ID:   id,
		Kind: domain.KindCase,
		URL:  "http://upstream.test/" + id,
	}
}

func repSource(id string) domain.SyncSource {
	return domain.SyncSource{
		ID:   id,
		Kind: domain.KindRepresentative,
		URL:  "http://upstream.test/" + id,
	}
}

// failingWatermarkStore fails Get and/or Save.
type failingWatermarkStore struct {
	getErr  error
	saveErr error
}

func (s *failingWatermarkStore) Get(_ context.Context) (*domain.Watermark, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return nil, domain.ErrNotFound
}

func (s *failingWatermarkStore) Save(_ context.Context, _ domain.Watermark) error {
	return s.saveErr
}
