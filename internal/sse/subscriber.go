package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/WeddingBot_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for the lottery events pushed to displays
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.LotteryStateChanged, s.handleStateChanged)
	s.bus.Subscribe(event.LotteryNewWinner, s.handleNewWinner)
	s.bus.Subscribe(event.LotteryHistoryChanged, s.handleHistoryChanged)
	s.bus.Subscribe(event.LotteryError, s.handleError)

	slog.Info(LogMsgSubscribed, "types", []string{
		string(event.LotteryStateChanged),
		string(event.LotteryNewWinner),
		string(event.LotteryHistoryChanged),
		string(event.LotteryError),
	})
}

func (s *Subscriber) handleStateChanged(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.StatePayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeState, payload.State)
	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeState,
		"version", payload.State.Version,
		"is_drawing", payload.State.IsDrawing)
	return nil
}

func (s *Subscriber) handleNewWinner(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.NewWinnerPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeNewWinner, NewWinnerPayload{
		DrawID:            payload.DrawID,
		Winners:           payload.Winners,
		ParticipantsCount: payload.ParticipantsCount,
	})
	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeNewWinner,
		"draw_id", payload.DrawID,
		"winners", len(payload.Winners))
	return nil
}

func (s *Subscriber) handleHistoryChanged(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.HistoryChangedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeHistory, HistoryPayload{
		DeletedID: payload.DeletedID,
		Cleared:   payload.Cleared,
		Removed:   payload.Removed,
	})
	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeHistory,
		"cleared", payload.Cleared,
		"removed", payload.Removed)
	return nil
}

func (s *Subscriber) handleError(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ErrorPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeError, ErrorPayload{Code: payload.Code, Message: payload.Message})
	return nil
}
