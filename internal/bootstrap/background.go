package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/config"
	"github.com/osse101/WeddingBot_Go/internal/database/postgres"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/eventlog"
	"github.com/osse101/WeddingBot_Go/internal/lottery"
	"github.com/osse101/WeddingBot_Go/internal/repository"
	"github.com/osse101/WeddingBot_Go/internal/scheduler"
	"github.com/osse101/WeddingBot_Go/internal/worker"
)

// StartChangeFeed listens for lottery rows written by other instances and
// republishes them on the local bus. The returned cancel stops the listener;
// it is a no-op when the feed is disabled.
func StartChangeFeed(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, repo repository.Lottery, bus event.Bus) context.CancelFunc {
	if !cfg.DBChangeFeed {
		slog.Info(LogMsgChangeFeedDisabled)
		return func() {}
	}

	feed := lottery.NewChangeFeed(repo, bus)
	listener := postgres.NewChangeListener(dbPool, cfg.InstanceName, feed.HandleChange)

	feedCtx, cancel := context.WithCancel(ctx)
	go listener.Run(feedCtx)

	slog.Info(LogMsgChangeFeedStarted, "origin", cfg.InstanceName)
	return cancel
}

// StartMaintenance schedules periodic jobs on a small dedicated pool
func StartMaintenance(cfg *config.Config, eventlogService eventlog.Service) (*scheduler.Scheduler, *worker.Pool) {
	pool := worker.NewPool(MaintenanceWorkers, MaintenanceQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JobNameEventLogCleanup, cfg.CleanupInterval, eventlog.NewCleanupJob(eventlogService, cfg.EventLogRetentionDays))
	slog.Info(LogMsgCleanupScheduled,
		"interval", cfg.CleanupInterval,
		"retention_days", cfg.EventLogRetentionDays)

	return sched, pool
}

// StartWatchdog starts the stale draw lock watchdog
func StartWatchdog(ctx context.Context, cfg *config.Config, svc lottery.Service) *worker.LockWatchdogWorker {
	watchdog := worker.NewLockWatchdogWorker(svc, cfg.DrawLockTimeout)
	watchdog.Start(ctx)
	return watchdog
}
