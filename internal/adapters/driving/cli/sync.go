package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

var syncForce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise all sources if a round is due",
	Long: `Runs one synchronisation round across all configured sources.

The round is skipped when the last completed round is more recent than the
minimum interval. Use --force to ignore the watermark. A source that fails
is reported and does not affect the others.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "run even if the last round is recent")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	var (
		round *domain.RoundResult
		err   error
	)
	if syncForce {
		round, err = syncOrchestrator.ForceSync(ctx)
	} else {
		round, err = syncOrchestrator.MaybeSync(ctx)
	}

	if round != nil {
		renderRound(cmd.OutOrStdout(), NewStyles(cmd.OutOrStdout(), nil), round)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}
