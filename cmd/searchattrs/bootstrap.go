package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Start reconciliation in the background and keep running",
	Long: `Fires the reconciliation without waiting for it, the way an application
does at startup, then keeps running until interrupted. The outcome is logged
when the run completes.`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(e.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	newReconciler(e).Start(ctx, e.cfg.Temporal.Namespace)
	e.logger.Info(ctx, "ready", "namespace", e.cfg.Temporal.Namespace, "address", e.cfg.Temporal.Address)

	<-ctx.Done()
	e.logger.Info(e.ctx, "shutting down")
	return nil
}
