package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	"goa.design/clue/log"

	"github.com/postiz/searchattrs/config"
	"github.com/postiz/searchattrs/runtime/telemetry"
	"github.com/postiz/searchattrs/runtime/temporal"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "searchattrs",
	Short:        "Reconcile Temporal custom search attributes",
	Long:         `searchattrs registers the custom search attributes workflows are tagged with (organizationId, postId) in a Temporal namespace, adding only those that are missing.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to a YAML config file")
	flags.String(config.FlagAddress, "", "Temporal frontend address (default from config or localhost:7233)")
	flags.String(config.FlagNamespace, "", "Temporal namespace (default from config or \"default\")")
	flags.Bool(config.FlagDebug, false, "enable debug logs")
}

// env bundles what every subcommand needs.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	logger telemetry.Logger
	client *temporal.Client
}

// setup loads the configuration, configures logging and builds the lazily
// connected Temporal client. Callers must call close.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	ctx := log.Context(cmd.Context(), log.WithFormat(logFormat(cfg)))
	if cfg.Log.Debug {
		ctx = log.Context(ctx, log.WithDebug())
		log.Debugf(ctx, "debug logs enabled")
	}
	logger := telemetry.NewClueLogger()

	cli, err := temporal.New(temporal.Options{
		ClientOptions: &client.Options{
			HostPort:  cfg.Temporal.Address,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewSDKLogger(ctx, logger),
		},
		Instrumentation: temporal.InstrumentationOptions{
			DisableTracing: cfg.Telemetry.DisableTracing,
			DisableMetrics: cfg.Telemetry.DisableMetrics,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal client: %w", err)
	}
	return &env{ctx: ctx, cfg: cfg, logger: logger, client: cli}, nil
}

func (e *env) close() {
	e.client.Close()
}

func logFormat(cfg *config.Config) log.FormatFunc {
	switch cfg.Log.Format {
	case "json":
		return log.FormatJSON
	case "terminal":
		return log.FormatTerminal
	}
	if log.IsTerminal() {
		return log.FormatTerminal
	}
	return log.FormatJSON
}
