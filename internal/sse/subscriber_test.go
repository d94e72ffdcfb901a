package sse

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
)

func TestSubscriber_MapsLotteryEventsToFrames(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	client := hub.Register(nil)
	waitForClients(t, hub, 1)
	ctx := context.Background()

	state := domain.DefaultLotteryState()
	state.IsDrawing = true
	require.NoError(t, bus.Publish(ctx, event.NewStateChangedEvent(state, event.SourceService)))

	drawID := uuid.New()
	require.NoError(t, bus.Publish(ctx, event.NewWinnerEvent(domain.DrawResult{
		DrawID:            drawID,
		Winners:           []domain.HistoryRecord{{ID: drawID, WinnerUserID: "alice"}},
		ParticipantsCount: 5,
	}, true, "admin")))

	deleted := uuid.New()
	require.NoError(t, bus.Publish(ctx, event.NewHistoryChangedEvent(&deleted, false, 1)))

	require.NoError(t, bus.Publish(ctx, event.NewErrorEvent("draw_failed", "persistence failure", "admin")))

	frame := <-client.EventChannel
	assert.Equal(t, EventTypeState, frame.Type)
	var gotState domain.LotteryState
	require.NoError(t, json.Unmarshal(frame.Payload, &gotState))
	assert.True(t, gotState.IsDrawing)

	frame = <-client.EventChannel
	assert.Equal(t, EventTypeNewWinner, frame.Type)
	var winner NewWinnerPayload
	require.NoError(t, json.Unmarshal(frame.Payload, &winner))
	assert.Equal(t, drawID, winner.DrawID)
	assert.Equal(t, 5, winner.ParticipantsCount)
	require.Len(t, winner.Winners, 1)

	frame = <-client.EventChannel
	assert.Equal(t, EventTypeHistory, frame.Type)
	var history HistoryPayload
	require.NoError(t, json.Unmarshal(frame.Payload, &history))
	require.NotNil(t, history.DeletedID)
	assert.Equal(t, deleted, *history.DeletedID)
	assert.False(t, history.Cleared)
	assert.Equal(t, int64(1), history.Removed)

	frame = <-client.EventChannel
	assert.Equal(t, EventTypeError, frame.Type)
	var errPayload ErrorPayload
	require.NoError(t, json.Unmarshal(frame.Payload, &errPayload))
	assert.Equal(t, "draw_failed", errPayload.Code)
}
