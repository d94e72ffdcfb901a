package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/scheduler"
	"github.com/osse101/WeddingBot_Go/internal/server"
	"github.com/osse101/WeddingBot_Go/internal/sse"
	"github.com/osse101/WeddingBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	MaintenancePool    *worker.Pool
	NotifyPool         *worker.Pool
	Watchdog           *worker.LockWatchdogWorker
	SSEHub             *sse.Hub
	StopChangeFeed     context.CancelFunc
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests, close streams)
// 2. Change feed and timers (no new events enter the bus)
// 3. Worker pools (finish queued notifications)
// 4. Event publisher (flush pending events)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Stopping the hub first ends open event streams so Server.Stop does not wait on them
	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.StopChangeFeed != nil {
		components.StopChangeFeed()
	}

	if components.Watchdog != nil {
		if err := components.Watchdog.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWatchdogShutdownFailed, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.MaintenancePool != nil {
		components.MaintenancePool.Stop()
	}
	if components.NotifyPool != nil {
		components.NotifyPool.Stop()
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
