package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/eventlog"
	"github.com/osse101/WeddingBot_Go/internal/metrics"
	"github.com/osse101/WeddingBot_Go/internal/notify"
	"github.com/osse101/WeddingBot_Go/internal/sse"
	"github.com/osse101/WeddingBot_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	SSEHub          *sse.Hub
	Dispatcher      *notify.Dispatcher
	Watchdog        *worker.LockWatchdogWorker
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (draw, winner and notification counters)
// - Event logger (persists lottery events to the audit log)
// - SSE subscriber (pushes state, winners and errors to displays)
// - Winner notification dispatcher
// - Draw lock watchdog
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
	metrics.RegisterSSEClientGauge(deps.SSEHub.ClientCount)

	if deps.Dispatcher != nil {
		deps.Dispatcher.Subscribe(deps.EventBus)
		slog.Info(LogMsgNotifyDispatcherRegistered)
	}

	if deps.Watchdog != nil {
		deps.Watchdog.Subscribe(deps.EventBus)
		slog.Info(LogMsgWatchdogRegistered)
	}

	return nil
}
