// Package server assembles the HTTP service from its parts and runs it
// until the process is told to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	api "github.com/tphakala/healthdiary-go/internal/api/v2"
	"github.com/tphakala/healthdiary-go/internal/completion"
	"github.com/tphakala/healthdiary-go/internal/conf"
	"github.com/tphakala/healthdiary-go/internal/httpclient"
	"github.com/tphakala/healthdiary-go/internal/logging"
	"github.com/tphakala/healthdiary-go/internal/observability"
	"github.com/tphakala/healthdiary-go/internal/tablestore"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// Run builds the service from settings and serves it until ctx is
// cancelled or a termination signal arrives.
func Run(ctx context.Context, settings *conf.Settings) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	store := buildStore(settings, m)
	completer := buildCompleter(settings, m)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if settings.WebServer.Debug {
		e.Use(middleware.Logger())
	}

	api.New(e, settings, store, completer, m)

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting HTTP server", "listen", settings.WebServer.Listen)
		if err := e.Start(settings.WebServer.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// buildStore creates the table storage client, or returns nil when no
// connection string is configured. The missing credential is reported per
// request, not at startup, so the rest of the API stays usable.
func buildStore(settings *conf.Settings, m *observability.Metrics) api.EntryStore {
	if settings.Storage.ConnectionString == "" {
		logging.Warn("table storage disabled", "reason", conf.EnvStorageConnectionString+" is not set")
		return nil
	}

	creds := tablestore.CredentialsFromConnectionString(settings.Storage.ConnectionString)
	opts := []tablestore.Option{
		tablestore.WithHTTPClient(httpclient.New(nil)),
		tablestore.WithMetrics(m.TableStore),
	}
	if settings.Storage.Endpoint != "" {
		opts = append(opts, tablestore.WithEndpoint(settings.Storage.Endpoint))
	}
	return tablestore.New(creds, opts...)
}

// buildCompleter creates the text-completion client, or returns nil when
// no API key is configured.
func buildCompleter(settings *conf.Settings, m *observability.Metrics) api.Completer {
	if settings.Completion.APIKey == "" {
		logging.Warn("completion service disabled", "reason", conf.EnvCompletionAPIKey+" is not set")
		return nil
	}

	opts := []completion.Option{
		completion.WithMetrics(m.Completion),
	}
	if settings.Completion.Model != "" {
		opts = append(opts, completion.WithModel(settings.Completion.Model))
	}
	if settings.Completion.Endpoint != "" {
		opts = append(opts, completion.WithEndpoint(settings.Completion.Endpoint))
	}
	return completion.New(settings.Completion.APIKey, opts...)
}
