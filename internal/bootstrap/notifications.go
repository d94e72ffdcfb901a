package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/WeddingBot_Go/internal/config"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/notify"
	"github.com/osse101/WeddingBot_Go/internal/worker"
)

// InitializeNotifications builds the winner DM dispatcher and the worker pool
// it sends on. Without a Discord token the dispatcher still subscribes but
// skips every winner, so draws behave the same either way.
func InitializeNotifications(cfg *config.Config, bus event.Bus) (*notify.Dispatcher, *worker.Pool, error) {
	pool := worker.NewPoolWithTimeout(cfg.NotifyWorkers, NotifyQueueSize, cfg.NotifyTimeout)

	var notifier notify.Notifier
	if cfg.NotificationsConfigured() {
		session, err := notify.NewDiscordSession(cfg.DiscordToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSession, err)
		}
		notifier = notify.NewDiscordNotifier(session)
		slog.Info(LogMsgNotificationsEnabled, "workers", cfg.NotifyWorkers, "timeout", cfg.NotifyTimeout)
	} else {
		slog.Info(LogMsgNotificationsDisabled)
	}

	pool.Start()
	return notify.NewDispatcher(notifier, pool, bus), pool, nil
}
