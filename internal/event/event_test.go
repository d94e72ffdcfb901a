package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event

	bus.Subscribe(LotteryStateChanged, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	state := domain.DefaultLotteryState()
	state.IsActive = true
	require.NoError(t, bus.Publish(context.Background(), NewStateChangedEvent(state, SourceService)))

	assert.Equal(t, LotteryStateChanged, got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, SourceService, got.GetMetadataValue(MetadataKeySource))

	payload, err := DecodePayload[StatePayloadV1](got.Payload)
	require.NoError(t, err)
	assert.True(t, payload.State.IsActive)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewErrorEvent("x", "y", "")))
}

func TestMemoryBus_MultipleHandlersAndErrors(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	bus.Subscribe(LotteryError, func(ctx context.Context, e Event) error {
		count++
		return nil
	})
	bus.Subscribe(LotteryError, func(ctx context.Context, e Event) error {
		count++
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), NewErrorEvent("code", "msg", "admin"))
	assert.Error(t, err)
	assert.Equal(t, 2, count, "all handlers run even when one fails")
}

func TestDecodePayload_FromMap(t *testing.T) {
	id := uuid.New()
	raw := map[string]interface{}{
		"drawId":            id.String(),
		"participantsCount": 4,
		"notifyWinner":      true,
		"winners": []interface{}{
			map[string]interface{}{"id": id.String(), "winnerUserId": "u1"},
		},
	}

	p, err := DecodePayload[NewWinnerPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, id, p.DrawID)
	assert.Equal(t, 4, p.ParticipantsCount)
	require.Len(t, p.Winners, 1)
	assert.Equal(t, "u1", p.Winners[0].WinnerUserID)
}

func TestNewWinnerNotifiedEvent(t *testing.T) {
	ok := NewWinnerNotifiedEvent(uuid.New(), "u1", nil)
	p, err := DecodePayload[WinnerNotifiedPayloadV1](ok.Payload)
	require.NoError(t, err)
	assert.True(t, p.Delivered)

	failed := NewWinnerNotifiedEvent(uuid.New(), "u1", errors.New("dm closed"))
	p, err = DecodePayload[WinnerNotifiedPayloadV1](failed.Payload)
	require.NoError(t, err)
	assert.False(t, p.Delivered)
	assert.Equal(t, "dm closed", p.Error)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := RetryInitialDelay
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*base, CalculateRetryDelay(base, 3))
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
}
