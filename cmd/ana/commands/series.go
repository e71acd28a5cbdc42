package commands

import (
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"github.com/spf13/cobra"
)

func newSeriesCmd(opts *options) *cobra.Command {
	var (
		req         ana.SeriesRequest
		kind        string
		consistency string
	)
	cmd := &cobra.Command{
		Use:   "series <station-code>",
		Short: "Fetch a station's historical series (HidroSerieHistorica).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "start", "end", "kind"); err != nil {
				return err
			}
			req.StationCode = args[0]
			req.Kind = ana.SeriesKind(kind)
			req.Consistency = ana.Consistency(consistency)
			tbl, err := opts.client.TimeSeries(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, tbl)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Start, "start", "", "first day, dd/mm/yyyy")
	flags.StringVar(&req.End, "end", "", "last day, dd/mm/yyyy")
	flags.StringVar(&kind, "kind", "", "L (levels), P (precipitation) or I (flows)")
	flags.StringVar(&consistency, "consistency", "", "R (raw) or P (processed); empty for both")
	return cmd
}

func newDataCmd(opts *options) *cobra.Command {
	var req ana.DataRequest
	cmd := &cobra.Command{
		Use:   "data <station-code>",
		Short: "Fetch a station's telemetry readings (DadosHidrometeorologicos).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "start", "end"); err != nil {
				return err
			}
			req.StationCode = args[0]
			tbl, err := opts.client.StationData(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd, tbl)
		},
	}

	cmd.Flags().StringVar(&req.Start, "start", "", "first day, dd/mm/yyyy")
	cmd.Flags().StringVar(&req.End, "end", "", "last day, dd/mm/yyyy")
	return cmd
}
