package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

func TestStatusCmd_NeverSynced(t *testing.T) {
	mock := setupSyncTest(t)
	mock.status = &domain.SyncStatus{Interval: time.Hour}

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Last sync: never")
	assert.Contains(t, out, "Next due:  now")
	assert.Contains(t, out, "Interval:  1h0m0s")
	assert.NotContains(t, out, "Recent runs")
}

func TestStatusCmd_WithRuns(t *testing.T) {
	mock := setupSyncTest(t)
	last := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.status = &domain.SyncStatus{
		Watermark: &domain.Watermark{LastSync: last},
		Running:   true,
		Interval:  time.Hour,
		NextDue:   last.Add(time.Hour),
		Recent: []domain.SyncRunResult{
			{Source: "cases", Outcome: domain.OutcomeSuccess, Message: "fetched 3", StartedAt: last},
			{Source: "representatives", Outcome: domain.OutcomeRejected, Message: "decode failed", StartedAt: last},
		},
	}

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, last.Local().Format(timeFormat))
	assert.Contains(t, out, "A round is running")
	assert.Contains(t, out, "Recent runs")
	assert.Contains(t, out, "ok  cases")
	assert.Contains(t, out, "err representatives")
}

func TestStatusCmd_Error(t *testing.T) {
	mock := setupSyncTest(t)
	mock.err = errors.New("db locked")

	_, err := execute(t, "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}
