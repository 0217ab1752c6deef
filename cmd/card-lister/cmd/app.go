package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"

	"github.com/goosebones/pokemon/internal/config"
	"github.com/goosebones/pokemon/internal/ebay"
	"github.com/goosebones/pokemon/internal/lister"
	"github.com/goosebones/pokemon/internal/media"
	"github.com/goosebones/pokemon/internal/notify"
	"github.com/goosebones/pokemon/internal/rows"
	"github.com/goosebones/pokemon/internal/tracing"
	"github.com/goosebones/pokemon/pkg/listing"
	"github.com/goosebones/pokemon/pkg/logger"
)

// app holds the loaded config, the logger and everything that must be
// closed on exit.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	closers []io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, closer, err := logger.NewWithFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)

	a := &app{cfg: cfg, log: log, closers: []io.Closer{closer}}

	shutdown, err := tracing.Setup(context.Background(), cfg.Tracing, Version)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	a.onClose(closerFunc(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdown(ctx)
	}))

	return a, nil
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func (a *app) onClose(c io.Closer) {
	a.closers = append(a.closers, c)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn("closing resource", "error", err)
		}
	}
}

func (a *app) rateLimiter() *ebay.RateLimiter {
	rl := a.cfg.Ebay.RateLimit
	return ebay.NewRateLimiter(rl.PerSecond, rl.Burst, rl.DailyLimit)
}

func (a *app) tradingClient(rl *ebay.RateLimiter) *ebay.TradingClient {
	e := a.cfg.Ebay
	hc := &http.Client{
		Timeout:   e.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	opts := []ebay.TradingOption{
		ebay.WithTradingURL(e.TradingURL),
		ebay.WithSiteID(e.SiteID),
		ebay.WithCompatLevel(e.CompatLevel),
		ebay.WithTradingHTTPClient(hc),
		ebay.WithRateLimiter(rl),
		ebay.WithTradingLogger(a.log),
	}

	var tokens ebay.TokenProvider
	if e.UsesOAuth() {
		tokens = ebay.NewOAuthTokenProvider(
			e.AppID, e.CertID, e.RefreshToken,
			ebay.WithTokenURL(e.TokenURL),
			ebay.WithScopes(e.Scopes...),
			ebay.WithHTTPClient(hc),
		)
	} else {
		tokens = ebay.StaticToken(e.AuthToken)
		opts = append(opts, ebay.WithRequesterCredentials())
	}

	return ebay.NewTradingClient(tokens, opts...)
}

// uploader selects the picture host. eBay Picture Services goes through the
// Trading client so uploads share its rate limit and quota.
func (a *app) uploader(ctx context.Context, tc *ebay.TradingClient) (media.Uploader, error) {
	m := a.cfg.Media

	var (
		store media.PictureStore
		label string
	)
	switch m.Backend {
	case config.MediaBackendGCS:
		var opts []option.ClientOption
		if m.GCS.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(m.GCS.CredentialsFile))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating storage client: %w", err)
		}
		a.onClose(client)
		store = media.NewGCSStore(client, m.GCS.Bucket, m.GCS.Prefix, m.GCS.PublicBaseURL)
		label = config.MediaBackendGCS
	default:
		store = tc
		label = config.MediaBackendEPS
	}

	return media.NewDirUploader(m.ImageRoot, store,
		media.WithLogger(a.log),
		media.WithBackendLabel(label),
	), nil
}

func (a *app) notifier() (notify.Notifier, error) {
	n := a.cfg.Notifications

	var out notify.Multi
	if n.Discord.Enabled {
		out = append(out, notify.NewDiscordNotifier(n.Discord.WebhookURL))
	}
	if n.Email.Enabled {
		email, err := notify.NewEmailNotifier(
			n.Email.APIKey, n.Email.From, n.Email.To,
			notify.WithFromName(n.Email.FromName),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring e-mail notifications: %w", err)
		}
		out = append(out, email)
	}

	if len(out) == 0 {
		return notify.NewNoOpNotifier(a.log), nil
	}
	return out, nil
}

// postgres opens the row database. Callers close it through the app.
func (a *app) postgres(ctx context.Context) (*rows.PostgresSource, error) {
	db := a.cfg.Rows.Database
	pg, err := rows.NewPostgresSource(ctx, db.DSN(), db.PoolSize)
	if err != nil {
		return nil, err
	}
	a.onClose(pg)
	return pg, nil
}

func (a *app) openXLSX() (*rows.XLSXSource, error) {
	x := a.cfg.Rows.XLSX
	return rows.OpenXLSX(x.Path, x.Sheet, rows.WithXLSXLogger(a.log))
}

// sharedSource keeps a long-lived source open across runs.
type sharedSource struct {
	rows.Source
}

func (sharedSource) Close() error { return nil }

// sourceOpener returns an opener for the configured backend and, for
// postgres, the database that doubles as run history.
func (a *app) sourceOpener(ctx context.Context) (lister.SourceOpener, *rows.PostgresSource, error) {
	switch a.cfg.Rows.Backend {
	case config.RowsBackendPostgres:
		pg, err := a.postgres(ctx)
		if err != nil {
			return nil, nil, err
		}
		return func(context.Context) (rows.Source, error) {
			return sharedSource{pg}, nil
		}, pg, nil
	case config.RowsBackendXLSX:
		// The workbook is reopened for every run so edits made between runs
		// are picked up.
		return func(context.Context) (rows.Source, error) {
			return a.openXLSX()
		}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown rows backend %q", a.cfg.Rows.Backend)
	}
}

func (a *app) titleFormatter() listing.TitleFormatter {
	return listing.NewTitleFormatter(a.cfg.Listing.Policy())
}

// runner wires a Runner and returns the row source opener alongside it.
func (a *app) runner(ctx context.Context) (*lister.Runner, lister.SourceOpener, *runDeps, error) {
	rl := a.rateLimiter()
	tc := a.tradingClient(rl)

	up, err := a.uploader(ctx, tc)
	if err != nil {
		return nil, nil, nil, err
	}

	n, err := a.notifier()
	if err != nil {
		return nil, nil, nil, err
	}

	open, pg, err := a.sourceOpener(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []lister.RunnerOption{
		lister.WithLogger(a.log),
		lister.WithTitleFormatter(a.titleFormatter()),
		lister.WithBuilder(listing.NewBuilder(a.cfg.Listing.Defaults())),
	}
	if pg != nil {
		opts = append(opts, lister.WithRunRecorder(pg))
	}

	deps := &runDeps{trading: tc, rateLimiter: rl, postgres: pg}
	return lister.NewRunner(up, tc, n, opts...), open, deps, nil
}

// runDeps exposes pieces of the runner wiring the serve command also needs.
type runDeps struct {
	trading     *ebay.TradingClient
	rateLimiter *ebay.RateLimiter
	postgres    *rows.PostgresSource
}
