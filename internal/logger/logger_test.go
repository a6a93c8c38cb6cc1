package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())
	assert.Equal(t, LevelWarn, GetLevel())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	assert.Equal(t, LevelDebug, GetLevel())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := reset(t)
	SetVerbose(false)

	Debug("test message")
	Info("test message")

	assert.Zero(t, buf.Len(), "expected no output when verbose is disabled")
}

func TestSection(t *testing.T) {
	buf := reset(t)

	Section("Sync")
	assert.Zero(t, buf.Len())

	SetVerbose(true)
	Section("Sync")
	assert.Equal(t, "\n=== Sync ===\n", buf.String())
}

func TestInfo(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	Info("fetched %d", 3)

	assert.Equal(t, "[INFO] fetched 3\n", buf.String())
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	buf := reset(t)
	SetVerbose(false)

	Warn("source %s rejected", "cases")
	Error("save failed")

	assert.Equal(t, "[WARN] source cases rejected\n[ERROR] save failed\n", buf.String())
}

func TestSetLevel(t *testing.T) {
	buf := reset(t)
	SetLevel(LevelError)

	Warn("hidden")
	Error("shown")

	assert.Equal(t, "[ERROR] shown\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}

func TestConcurrentAccess(t *testing.T) {
	reset(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("debug")
		}()
		go func() {
			defer wg.Done()
			_ = IsVerbose()
			Warn("warn")
		}()
	}
	wg.Wait()
}
