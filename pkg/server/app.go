package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/service"
	"github.com/mmkaya-ui/borsa2/internal/marketstore"
	pkgch "github.com/mmkaya-ui/borsa2/pkg/clickhouse"
	"github.com/mmkaya-ui/borsa2/pkg/config"
	xhttp "github.com/mmkaya-ui/borsa2/pkg/http"
	applogger "github.com/mmkaya-ui/borsa2/pkg/logger"
)

// Runner is a long-lived background component tied to the app lifetime.
type Runner interface {
	Run(ctx context.Context)
}

// App encapsulates the application lifecycle: the snapshot refresh loop, an
// optional live feed, the HTTP server and infrastructure teardown.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	store      *marketstore.Store
	feed       Runner
	handler    xhttp.Handler
	publisher  service.AlertPublisher
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. feed and chClient
// may be nil when the respective backends are disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	store *marketstore.Store,
	feed Runner,
	handler xhttp.Handler,
	publisher service.AlertPublisher,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		store:     store,
		feed:      feed,
		handler:   handler,
		publisher: publisher,
		chClient:  chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.feed != nil {
		go a.feed.Run(ctx)
		a.log.Info("live feed started")
	}

	go a.store.Run(ctx)
	a.log.Info("market store started",
		applogger.Duration("refresh_interval", a.cfg.Market.RefreshInterval),
	)

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithRequestMetrics(a.log, time.Second))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.publisher.Close(); err != nil {
		a.log.Warn("alert publisher close error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
