package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/goosebones/pokemon/internal/api/client"
)

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func remoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Control a running card-lister server",
	}

	cmd.AddCommand(remoteTriggerCmd())
	cmd.AddCommand(remoteStatusCmd())
	cmd.AddCommand(remoteLastCmd())
	cmd.AddCommand(remoteQuotaCmd())
	cmd.AddCommand(remoteItemCmd())

	return cmd
}

func remoteTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Start a batch run on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			started, err := newClient().TriggerRun(cmd.Context())
			if err != nil {
				return err
			}
			msg := "run started"
			if !started {
				msg = "a run is already in progress"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}
}

func remoteStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the server is running a batch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := newClient().RunStatus(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), st)
			}
			state := "idle"
			if st.Running {
				state = "running"
			}
			if st.Halted {
				state += " (scheduled runs halted by fee breaker; trigger a run to resume)"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), state)
			return err
		},
	}
}

func remoteLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the server's most recent run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			last, err := newClient().LatestRun(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if last == nil || last.Run == nil {
				_, err = fmt.Fprintln(out, "no runs recorded")
				return err
			}
			if jsonOutput() {
				return printJSON(out, last)
			}
			if err := printSummary(out, last.Run); err != nil {
				return err
			}
			if last.Error != "" {
				_, err = fmt.Fprintf(out, "\nrun aborted: %s\n", last.Error)
			}
			return err
		},
	}
}

func remoteQuotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the server's eBay API quota",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().GetQuota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), q)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Used:\t%d / %d\n", q.DailyUsed, q.DailyLimit)
			tw.writef("Remaining:\t%d\n", q.Remaining)
			tw.writef("Resets:\t%s\n", q.ResetAt.Local().Format(time.RFC1123))
			return tw.finish()
		},
	}
}

func remoteItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-id>",
		Short: "Look up a listing through the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := newClient().GetItem(cmd.Context(), args[0])
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
