package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tingsync/internal/adapters/driving/api"
	"github.com/custodia-labs/tingsync/internal/core/services"
	"github.com/custodia-labs/tingsync/internal/logger"
)

var (
	serveAddr      string
	serveNoTrigger bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read API and synchronise in the background",
	Long: `Starts the HTTP API and the background trigger.

The trigger waits a short startup delay, then checks on a fixed interval
whether a round is due. The API exposes the stored entities, the sync
status and a run-if-due endpoint.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr or "+api.DefaultAddr+")")
	serveCmd.Flags().BoolVar(&serveNoTrigger, "no-trigger", false, "do not synchronise in the background")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil || entityService == nil {
		return errors.New("services not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	triggerCfg := currentTrigger()
	if serveNoTrigger {
		triggerCfg.Enabled = false
	}
	trigger := services.NewTrigger(triggerCfg, syncOrchestrator)

	triggerDone := make(chan struct{})
	go func() {
		defer close(triggerDone)
		if err := trigger.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("trigger: %v", err)
		}
	}()

	server := api.NewServer(listenAddr(), api.NewRouter(entityService, syncOrchestrator))
	cmd.Printf("Serving on %s\n", server.Addr())

	err := server.ListenAndServe(ctx)

	stop()
	_ = trigger.Stop()
	<-triggerDone

	return err
}
