package metrics

import (
	"context"
	"errors"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all lottery events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.LotteryStateChanged,
		event.LotteryNewWinner,
		event.LotteryHistoryChanged,
		event.LotteryError,
		event.WinnerNotified,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Winners replayed from the
// change feed were already counted by the instance that drew them.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	source, _ := evt.Metadata[event.MetadataKeySource].(string)
	EventsPublished.WithLabelValues(string(evt.Type), source).Inc()

	switch evt.Type {
	case event.LotteryNewWinner:
		if source == event.SourceChangeFeed {
			break
		}
		payload, err := event.DecodePayload[event.NewWinnerPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		DrawsTotal.Inc()
		WinnersTotal.Add(float64(len(payload.Winners)))
		EligibleParticipants.Set(float64(payload.ParticipantsCount))

	case event.LotteryError:
		payload, err := event.DecodePayload[event.ErrorPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		LotteryErrors.WithLabelValues(payload.Code).Inc()

	case event.WinnerNotified:
		payload, err := event.DecodePayload[event.WinnerNotifiedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		outcome := OutcomeDelivered
		if !payload.Delivered {
			outcome = OutcomeFailed
		}
		Notifications.WithLabelValues(outcome).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordDrawRejection counts a rejected draw request by its domain error
func RecordDrawRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrNoEligibleParticipants):
		DrawRejections.WithLabelValues(ReasonNoEligible).Inc()
	case errors.Is(err, domain.ErrDrawAlreadyInProgress):
		DrawRejections.WithLabelValues(ReasonDrawInProgress).Inc()
	case errors.Is(err, domain.ErrPersistenceFailure):
		DrawRejections.WithLabelValues(ReasonPersistence).Inc()
	}
}
