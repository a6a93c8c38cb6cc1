package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/logger"
)

// mockSyncOrchestrator implements driving.SyncOrchestrator for testing.
type mockSyncOrchestrator struct {
	round  *domain.RoundResult
	err    error
	status *domain.SyncStatus
	forced bool
	calls  int
}

func (m *mockSyncOrchestrator) MaybeSync(_ context.Context) (*domain.RoundResult, error) {
	m.calls++
	return m.round, m.err
}

func (m *mockSyncOrchestrator) ForceSync(_ context.Context) (*domain.RoundResult, error) {
	m.calls++
	m.forced = true
	return m.round, m.err
}

func (m *mockSyncOrchestrator) Status(_ context.Context) (*domain.SyncStatus, error) {
	if m.status == nil {
		return &domain.SyncStatus{}, m.err
	}
	return m.status, m.err
}

// resetCLI restores flags and services to their defaults after a test.
func resetCLI(t *testing.T) {
	t.Helper()
	reset := func() {
		teardown()
		syncOrchestrator = nil
		entityService = nil
		appSettings = nil
		verbose = false
		configPath = ""
		dataDir = ""
		memoryStores = false
		syncForce = false
		entitiesLimit = 20
		entitiesOffset = 0
		entitiesJSON = false
		serveAddr = ""
		serveNoTrigger = false
		logger.SetVerbose(false)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		// cobra keeps the first inherited context on subcommands; drop it so
		// each Execute passes its own context down.
		for _, c := range rootCmd.Commands() {
			c.SetContext(nil)
			for _, sub := range c.Commands() {
				sub.SetContext(nil)
			}
		}
	}
	reset()
	t.Cleanup(reset)
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func strPtr(s string) *string { return &s }
