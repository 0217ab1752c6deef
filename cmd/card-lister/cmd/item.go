package cmd

import (
	"github.com/spf13/cobra"
)

func itemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-id>",
		Short: "Look up a listing on eBay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tc := a.tradingClient(a.rateLimiter())
			item, err := tc.GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), item)
			}
			return printItem(cmd.OutOrStdout(), item)
		},
	}
}
