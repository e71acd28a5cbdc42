package commands

import (
	"fmt"
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/config"
	"github.com/hidro-hq/ana-telemetry/internal/logger"
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"github.com/spf13/cobra"
)

// options are the persistent flags every subcommand shares.
type options struct {
	baseURL string
	timeout time.Duration
	format  string

	cfg    *config.Config
	log    logger.Logger
	client *ana.Client
}

// NewRootCmd builds the ana command tree. Flags override cfg.
func NewRootCmd(cfg *config.Config, log logger.Logger) *cobra.Command {
	opts := &options{cfg: cfg, log: log}

	root := &cobra.Command{
		Use:           "ana",
		Short:         "ana queries the ANA ServiceANA telemetry web service and prints the result as a table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := parseFormat(opts.format); err != nil {
				return err
			}
			opts.client = ana.NewClient(ana.ClientConfig{
				BaseURL:   opts.baseURL,
				Timeout:   opts.timeout,
				UserAgent: opts.cfg.UserAgent,
				Logger:    opts.log,
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", cfg.ANABaseURL, "ServiceANA.asmx base URL")
	flags.DurationVar(&opts.timeout, "timeout", cfg.HTTPTimeout, "request timeout")
	flags.StringVarP(&opts.format, "format", "f", string(formatTable), "output format: table, csv or markdown")

	root.AddCommand(
		newRiversCmd(opts),
		newStatesCmd(opts),
		newStationsCmd(opts),
		newTelemetricCmd(opts),
		newSeriesCmd(opts),
		newDataCmd(opts),
	)
	return root
}

// requireFlags fails when any named flag was left at its empty default.
func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if v, _ := cmd.Flags().GetString(name); v == "" {
			return fmt.Errorf("--%s is required", name)
		}
	}
	return nil
}
