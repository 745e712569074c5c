package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/postiz/searchattrs/runtime/searchattr"
	"github.com/postiz/searchattrs/runtime/telemetry"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Register missing search attributes and wait for the result",
	Long: `Lists the custom search attributes of the namespace and registers the
required ones that are missing. Reconciliation failures are reported but never
fail the command.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	res := newReconciler(e).Reconcile(e.ctx, e.cfg.Temporal.Namespace)
	fmt.Fprintln(cmd.OutOrStdout(), summarize(res))
	return nil
}

func newReconciler(e *env) *searchattr.Reconciler {
	return searchattr.New(e.client,
		searchattr.WithLogger(e.logger),
		searchattr.WithMetrics(telemetry.NewClueMetrics()),
		searchattr.WithTracer(telemetry.NewClueTracer()),
	)
}

func summarize(res searchattr.Result) string {
	line := fmt.Sprintf("namespace=%s outcome=%s", res.Namespace, res.Outcome)
	if len(res.Missing) > 0 {
		line += " missing=" + strings.Join(res.Missing, ",")
	}
	if res.Err != nil {
		line += fmt.Sprintf(" operation=%s error=%q", res.Operation, res.Err.Error())
	}
	return line
}
