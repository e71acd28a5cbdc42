package commands

import (
	"fmt"

	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"github.com/spf13/cobra"
)

func newStationsCmd(opts *options) *cobra.Command {
	var (
		f         ana.StationFilter
		typ       string
		gathering string
	)
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Search the station inventory (HidroInventario).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Type = ana.StationType(typ)
			f.Gathering = ana.Gathering(gathering)
			tbl, err := opts.client.ListStations(cmd.Context(), f)
			if err != nil {
				return err
			}
			return opts.print(cmd, tbl)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.Code, "code", "", "station code (padded to eight digits)")
	flags.StringVar(&f.CodeTo, "code-to", "", "upper bound of a station code range")
	flags.StringVar(&typ, "type", "", "station type: F (fluviometric) or P (pluviometric)")
	flags.StringVar(&gathering, "gathering", "", "T (telemetric) or M (manual)")
	flags.StringVar(&f.Name, "name", "", "station name")
	flags.StringVar(&f.River, "river", "", "river code")
	flags.StringVar(&f.SubBasin, "sub-basin", "", "sub-basin code")
	flags.StringVar(&f.Basin, "basin", "", "basin code")
	flags.StringVar(&f.Municipality, "municipality", "", "municipality name")
	flags.StringVar(&f.State, "state", "", "state name")
	flags.StringVar(&f.Responsible, "responsible", "", "responsible agency acronym")
	flags.StringVar(&f.Operator, "operator", "", "operating agency acronym")
	return cmd
}

func newTelemetricCmd(opts *options) *cobra.Command {
	var (
		status string
		origin string
	)
	cmd := &cobra.Command{
		Use:   "telemetric",
		Short: "List telemetric stations (ListaEstacoesTelemetricas).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := ana.TelemetricFilter{Origin: ana.Origin(origin)}
			switch status {
			case "active":
				active := true
				f.Active = &active
			case "maintenance":
				active := false
				f.Active = &active
			case "", "all":
			default:
				return fmt.Errorf("unknown --status %q (want active, maintenance or all)", status)
			}
			tbl, err := opts.client.ListTelemetricStations(cmd.Context(), f)
			if err != nil {
				return err
			}
			return opts.print(cmd, tbl)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "active, maintenance or all")
	cmd.Flags().StringVar(&origin, "origin", "", "origin code 1-5, empty for all")
	return cmd
}
