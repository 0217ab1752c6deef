package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goosebones/pokemon/internal/metrics"
)

const pushTimeout = 10 * time.Second

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "List every unprocessed row once",
		Long: "Reads the configured row source and lists every unprocessed row in\n" +
			"order. An interrupt stops the run after the row in flight completes.",
		RunE: runOnce,
	}
}

func runOnce(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, open, _, err := a.runner(ctx)
	if err != nil {
		return err
	}

	src, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			a.log.Error("closing row source", "error", cerr)
		}
	}()

	sum, runErr := runner.Run(ctx, src)

	if url := a.cfg.Metrics.PushgatewayURL; url != "" {
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		if err := metrics.Push(pushCtx, url, a.cfg.Metrics.Job); err != nil {
			a.log.Warn("pushing metrics", "error", err)
		}
		cancel()
	}

	if sum != nil {
		out := cmd.OutOrStdout()
		if jsonOutput() {
			err = printJSON(out, sum)
		} else {
			err = printSummary(out, sum)
		}
		if err != nil {
			return err
		}
	}

	return runErr
}
