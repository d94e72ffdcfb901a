// @title WeddingBot Lottery API
// @version 1.0
// @description Draw control, history and live event stream for the wedding photo lottery.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/WeddingBot_Go/internal/bootstrap"
	"github.com/osse101/WeddingBot_Go/internal/config"
	"github.com/osse101/WeddingBot_Go/internal/database"
	"github.com/osse101/WeddingBot_Go/internal/eventlog"
	"github.com/osse101/WeddingBot_Go/internal/handler"
	"github.com/osse101/WeddingBot_Go/internal/lottery"
	"github.com/osse101/WeddingBot_Go/internal/server"
	"github.com/osse101/WeddingBot_Go/internal/sse"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// Defaults keep a dev setup running; production .env files are checked here
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "detail", w)
	}

	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolCfg := database.DefaultPoolConfig()
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	poolCfg.ApplicationName = cfg.InstanceName

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), poolCfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			return err
		}
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	lotteryService := lottery.NewService(repos.Lottery, repos.Photo, repos.Track, publisher, nil, lottery.CacheConfig{
		Size: cfg.TrackCacheSize,
		TTL:  cfg.TrackCacheTTL,
	})
	eventlogService := eventlog.NewService(repos.EventLog)

	hub := sse.NewHub()
	hub.Start()

	dispatcher, notifyPool, err := bootstrap.InitializeNotifications(cfg, publisher)
	if err != nil {
		return err
	}

	watchdog := bootstrap.StartWatchdog(ctx, cfg, lotteryService)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventlogService,
		SSEHub:          hub,
		Dispatcher:      dispatcher,
		Watchdog:        watchdog,
	}); err != nil {
		return err
	}

	stopChangeFeed := bootstrap.StartChangeFeed(ctx, cfg, dbPool, repos.Lottery, publisher)
	sched, maintenancePool := bootstrap.StartMaintenance(cfg, eventlogService)

	schemaVersion := func(ctx context.Context) (int64, error) { return database.MigrationStatus(ctx, dbPool) }
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, schemaVersion, lotteryService, eventlogService, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		MaintenancePool:    maintenancePool,
		NotifyPool:         notifyPool,
		Watchdog:           watchdog,
		SSEHub:             hub,
		StopChangeFeed:     stopChangeFeed,
		ResilientPublisher: publisher,
	})
	return nil
}
