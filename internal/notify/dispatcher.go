package notify

import (
	"context"
	"fmt"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/worker"
)

// Queue accepts notification jobs without blocking the publisher
type Queue interface {
	TryEnqueue(job worker.Job) bool
}

// Dispatcher turns accepted draws into notification jobs. It never fails the
// draw: every outcome is logged and published as a winner.notified event.
type Dispatcher struct {
	notifier Notifier
	queue    Queue
	bus      event.Bus
}

// NewDispatcher creates a dispatcher. A nil notifier disables delivery.
func NewDispatcher(notifier Notifier, queue Queue, bus event.Bus) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		queue:    queue,
		bus:      bus,
	}
}

// Subscribe registers the dispatcher for new winner events
func (d *Dispatcher) Subscribe(bus event.Bus) {
	bus.Subscribe(event.LotteryNewWinner, d.HandleNewWinner)
}

// HandleNewWinner queues one notification per winner
func (d *Dispatcher) HandleNewWinner(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Winners replayed from another instance were already notified there
	if src, _ := evt.GetMetadataValue(event.MetadataKeySource).(string); src == event.SourceChangeFeed {
		log.Debug(LogMsgNotifySkippedChangeFeed, "event_id", evt.ID)
		return nil
	}

	payload, err := event.DecodePayload[event.NewWinnerPayloadV1](evt.Payload)
	if err != nil {
		log.Warn(LogMsgNotifyInvalidPayload, "error", err)
		return nil
	}

	if !payload.NotifyWinner {
		log.Debug(LogMsgNotifySkippedDisabled, "draw_id", payload.DrawID)
		return nil
	}
	if d.notifier == nil {
		log.Info(LogMsgNotifySkippedNoSender, "draw_id", payload.DrawID)
		return nil
	}

	for _, rec := range payload.Winners {
		req := RequestFromRecord(payload.DrawID, rec)
		if !d.queue.TryEnqueue(d.job(req)) {
			log.Warn(LogMsgNotifyQueueFull, "draw_id", req.DrawID, "user_id", req.WinnerUserID)
			d.report(ctx, req, fmt.Errorf("%w: %s", domain.ErrNotificationDispatchFailure, ErrContextQueueFull))
			continue
		}
		log.Info(LogMsgNotifyQueued, "draw_id", req.DrawID, "user_id", req.WinnerUserID)
	}
	return nil
}

func (d *Dispatcher) job(req Request) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		err := d.notifier.Notify(ctx, req)
		d.report(ctx, req, err)
		return err
	})
}

func (d *Dispatcher) report(ctx context.Context, req Request, err error) {
	log := logger.FromContext(ctx)
	if err != nil {
		log.Error(LogMsgNotifyFailed, "draw_id", req.DrawID, "user_id", req.WinnerUserID, "error", err)
	} else {
		log.Info(LogMsgNotifyDelivered, "draw_id", req.DrawID, "user_id", req.WinnerUserID)
	}

	if pubErr := d.bus.Publish(ctx, event.NewWinnerNotifiedEvent(req.DrawID, req.WinnerUserID, err)); pubErr != nil {
		log.Warn(LogMsgNotifyPublishFailed, "error", pubErr)
	}
}
