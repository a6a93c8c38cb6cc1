package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

func run(source string, minute int) *domain.SyncRunResult {
	start := time.Date(2024, 1, 1, 0, minute, 0, 0, time.UTC)
	return &domain.SyncRunResult{
		RoundID:   fmt.Sprintf("round-%d", minute),
		Source:    source,
		Outcome:   domain.OutcomeSuccess,
		StartedAt: start,
		EndedAt:   start.Add(time.Second),
	}
}

func TestRunStore_RecordAndList(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, run("cases", 1)))
	require.NoError(t, store.RecordRun(ctx, run("cases", 2)))
	require.NoError(t, store.RecordRun(ctx, run("representatives", 3)))
	require.NoError(t, store.RecordRun(ctx, nil))

	runs, err := store.ListRuns(ctx, "cases", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "round-2", runs[0].RoundID)
	assert.Equal(t, "round-1", runs[1].RoundID)

	limited, err := store.ListRuns(ctx, "cases", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRunStore_ListLatestPerSource(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, run("cases", 1)))
	require.NoError(t, store.RecordRun(ctx, run("cases", 5)))
	require.NoError(t, store.RecordRun(ctx, run("representatives", 3)))

	latest, err := store.ListRuns(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "round-5", latest[0].RoundID)
	assert.Equal(t, "round-3", latest[1].RoundID)
}

func TestRunStore_RecordErrorsCopied(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	r := run("cases", 1)
	r.RecordErrors = []domain.RecordError{{Index: 2, ExternalID: "x", Err: errors.New("boom")}}
	require.NoError(t, store.RecordRun(ctx, r))
	r.RecordErrors[0].Index = 99

	runs, err := store.ListRuns(ctx, "cases", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, runs[0].RecordErrors[0].Index)
}

func TestRunStore_Prune(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.RecordRun(ctx, run("cases", i)))
	}
	require.NoError(t, store.RecordRun(ctx, run("representatives", 0)))

	require.NoError(t, store.PruneRuns(ctx, 3))

	runs, err := store.ListRuns(ctx, "cases", 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "round-9", runs[0].RoundID)
	assert.Equal(t, "round-7", runs[2].RoundID)

	reps, _ := store.ListRuns(ctx, "representatives", 0)
	assert.Len(t, reps, 1)

	require.NoError(t, store.PruneRuns(ctx, -1))
	runs, _ = store.ListRuns(ctx, "cases", 0)
	assert.Empty(t, runs)
}
