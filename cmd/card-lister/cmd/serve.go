package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/goosebones/pokemon/api/openapi"
	"github.com/goosebones/pokemon/internal/api/handlers"
	mw "github.com/goosebones/pokemon/internal/api/middleware"
	"github.com/goosebones/pokemon/internal/ebay"
	"github.com/goosebones/pokemon/internal/lister"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 5 * time.Minute
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and run scheduler",
		Long: "Serves the HTTP API and, when schedule.run_interval is set, starts a\n" +
			"batch run on that interval. Only one run happens at a time.",
		RunE: runServe,
	}
}

// routes holds the dependencies of the HTTP API.
type routes struct {
	runs  handlers.RunController
	items ebay.ItemGetter
	quota *ebay.RateLimiter
	ready map[string]handlers.Pinger
}

func newRouter(log *slog.Logger, r routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("card-lister",
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return "HTTP " + req.Method
		}),
	)))
	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	health := handlers.NewHealthHandler(r.ready)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Card Lister API", Version))
	handlers.RegisterRunRoutes(api, handlers.NewRunsHandler(r.runs))
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(r.items))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(r.quota))

	openapi.RegisterRoutes(e, "/openapi.json")

	return e
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, open, deps, err := a.runner(ctx)
	if err != nil {
		return err
	}

	ready := map[string]handlers.Pinger{}
	var schedOpts []lister.SchedulerOption
	if deps.postgres != nil {
		schedOpts = append(schedOpts, lister.WithRunHistory(deps.postgres))
		ready["postgres"] = deps.postgres
	}

	sched, err := lister.NewScheduler(runner, open, a.cfg.Schedule.RunInterval, a.log, schedOpts...)
	if err != nil {
		return err
	}

	e := newRouter(a.log, routes{
		runs:  sched,
		items: deps.trading,
		quota: deps.rateLimiter,
		ready: ready,
	})
	e.Server.ReadTimeout = a.cfg.Server.ReadTimeout
	e.Server.WriteTimeout = a.cfg.Server.WriteTimeout

	sched.Start()
	a.log.Info("scheduler started", "interval", a.cfg.Schedule.RunInterval)

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			sched.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	}

	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.log.Error("shutting down server", "error", err)
	}

	// Rows are never abandoned mid-flight; wait for the run in progress.
	<-sched.Stop().Done()
	if !waitIdle(sched, drainTimeout) {
		a.log.Warn("run still in progress at exit", "waited", drainTimeout)
	}

	a.log.Info("server stopped")
	return nil
}

func waitIdle(s *lister.Scheduler, limit time.Duration) bool {
	deadline := time.Now().Add(limit)
	for s.Running() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
	return true
}
