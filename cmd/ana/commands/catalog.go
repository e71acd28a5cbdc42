package commands

import "github.com/spf13/cobra"

func newRiversCmd(opts *options) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "rivers",
		Short: "List rivers (HidroRio), optionally a single river code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := opts.client.ListRivers(cmd.Context(), code)
			if err != nil {
				return err
			}
			return opts.print(cmd, tbl)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "river code")
	return cmd
}

func newStatesCmd(opts *options) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "states",
		Short: "List Brazilian states (HidroEstado), optionally a single state code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := opts.client.ListStates(cmd.Context(), code)
			if err != nil {
				return err
			}
			return opts.print(cmd, tbl)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "state code")
	return cmd
}
