package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tingsync/internal/core/ports/driving"
	"github.com/custodia-labs/tingsync/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose      bool
	configPath   string
	dataDir      string
	memoryStores bool
)

// Services used by the commands. They are wired on first use; tests
// replace them with mocks.
var (
	syncOrchestrator driving.SyncOrchestrator
	entityService    driving.EntityService
	appSettings      *settings
)

// annotationStandalone marks commands that need no services.
const annotationStandalone = "standalone"

var rootCmd = &cobra.Command{
	Use:   "tingsync",
	Short: "Synchronise parliamentary open data into a local store",
	Long: `tingsync pulls representatives and cases from the parliament open data
API, normalises them and reconciles them into a local SQLite store.

A round runs only when the last completed round is older than the
configured minimum interval. Each source succeeds or fails on its own.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.tingsync/config.toml)")
	flags.StringVar(&dataDir, "data-dir", "", "data directory (default ~/.tingsync/data)")
	flags.BoolVar(&memoryStores, "memory", false, "keep entities and watermark in memory only")
}

// Execute runs the root command and releases wired resources.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationStandalone] == "true" {
		return nil
	}
	if syncOrchestrator != nil && entityService != nil {
		return nil
	}
	return wire()
}
