package lottery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestUpdateControl_Validation(t *testing.T) {
	bad := domain.AnimationMode("fireworks")
	tests := []struct {
		name    string
		update  domain.ControlUpdate
		wantErr error
	}{
		{"empty", domain.ControlUpdate{}, domain.ErrInvalidInput},
		{"negative cap", domain.ControlUpdate{MaxPhotosForWeighting: intPtr(-1)}, domain.ErrInvalidInput},
		{"zero winners", domain.ControlUpdate{WinnersPerDraw: intPtr(0)}, domain.ErrInvalidInput},
		{"too many winners", domain.ControlUpdate{WinnersPerDraw: intPtr(domain.MaxWinnersPerDraw + 1)}, domain.ErrInvalidInput},
		{"unknown mode", domain.ControlUpdate{AnimationMode: &bad}, domain.ErrInvalidAnimationMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, nil, nil, &recordingBus{}, nil, CacheConfig{})
			_, err := svc.UpdateControl(context.Background(), "admin", tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateControl_PublishesState(t *testing.T) {
	repo := new(MockRepository)
	bus := &recordingBus{}
	ctx := context.Background()

	update := domain.ControlUpdate{IsActive: boolPtr(true), MaxPhotosForWeighting: intPtr(0)}
	updated := activeState()
	updated.MaxPhotosForWeighting = 0
	repo.On("UpdateState", ctx, update).Return(updated, nil)

	svc := NewService(repo, nil, nil, bus, nil, CacheConfig{})
	state, err := svc.UpdateControl(ctx, "admin", update)

	require.NoError(t, err)
	assert.True(t, state.EqualProbability())
	events := bus.ofType(event.LotteryStateChanged)
	require.Len(t, events, 1)
	payload, err := event.DecodePayload[event.StatePayloadV1](events[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, *updated, payload.State)
}

func TestUpdateControl_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateState", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	svc := NewService(repo, nil, nil, &recordingBus{}, nil, CacheConfig{})
	_, err := svc.UpdateControl(context.Background(), "admin", domain.ControlUpdate{IsActive: boolPtr(false)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextFailedToUpdateState)
}

func TestReset_Idempotent(t *testing.T) {
	state := activeState()
	id := uuid.New()
	state.CurrentDrawID = &id
	state.IsDrawing = true
	repo := newMemoryRepo(*state)

	svc := NewService(repo, nil, nil, &recordingBus{}, nil, CacheConfig{})
	ctx := context.Background()

	once, err := svc.Reset(ctx, "admin")
	require.NoError(t, err)
	twice, err := svc.Reset(ctx, "admin")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.False(t, twice.IsDrawing)
	assert.Nil(t, twice.CurrentDrawID)
	assert.True(t, twice.IsActive, "settings survive a reset")
}

func TestHistory_LimitBounds(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListHistory", mock.Anything, domain.DefaultHistoryLimit).Return([]domain.HistoryRecord{}, nil).Once()
	repo.On("ListHistory", mock.Anything, domain.MaxHistoryLimit).Return([]domain.HistoryRecord{}, nil).Once()

	svc := NewService(repo, nil, nil, &recordingBus{}, nil, CacheConfig{})
	_, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.History(context.Background(), 100000)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteHistory(t *testing.T) {
	t.Run("current draw deleted publishes state", func(t *testing.T) {
		repo := new(MockRepository)
		bus := &recordingBus{}
		id := uuid.New()
		repo.On("DeleteHistory", mock.Anything, id).Return(activeState(), nil)

		svc := NewService(repo, nil, nil, bus, nil, CacheConfig{})
		require.NoError(t, svc.DeleteHistory(context.Background(), id))

		assert.Len(t, bus.ofType(event.LotteryHistoryChanged), 1)
		assert.Len(t, bus.ofType(event.LotteryStateChanged), 1)
	})

	t.Run("older record leaves state alone", func(t *testing.T) {
		repo := new(MockRepository)
		bus := &recordingBus{}
		id := uuid.New()
		repo.On("DeleteHistory", mock.Anything, id).Return(nil, nil)

		svc := NewService(repo, nil, nil, bus, nil, CacheConfig{})
		require.NoError(t, svc.DeleteHistory(context.Background(), id))
		assert.Empty(t, bus.ofType(event.LotteryStateChanged))
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DeleteHistory", mock.Anything, mock.Anything).Return(nil, domain.ErrHistoryNotFound)

		svc := NewService(repo, nil, nil, &recordingBus{}, nil, CacheConfig{})
		err := svc.DeleteHistory(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
	})
}

func TestClearHistory(t *testing.T) {
	repo := new(MockRepository)
	bus := &recordingBus{}
	repo.On("ClearHistory", mock.Anything).Return(int64(4), activeState(), nil)

	svc := NewService(repo, nil, nil, bus, nil, CacheConfig{})
	removed, err := svc.ClearHistory(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	events := bus.ofType(event.LotteryHistoryChanged)
	require.Len(t, events, 1)
	payload, err := event.DecodePayload[event.HistoryChangedPayloadV1](events[0].Payload)
	require.NoError(t, err)
	assert.True(t, payload.Cleared)
}

func TestEligibleParticipants(t *testing.T) {
	photos := new(MockPhotoRepository)
	photos.On("ListPublicPhotos", mock.Anything).Return(guestPhotos("a", "b", "a"), nil)

	svc := NewService(nil, photos, nil, nil, nil, CacheConfig{})
	got, err := svc.EligibleParticipants(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].PublicPhotoCount)
}

func TestExclusionSet_RoundResetScenario(t *testing.T) {
	// after two draws of A and B the exclusion set reloaded from history still holds both
	repo := new(MockRepository)
	repo.On("ListWinnerUserIDs", mock.Anything).Return([]string{"A", "B"}, nil)

	svc := NewService(repo, nil, nil, nil, utils.NewSeededRNG(1), CacheConfig{TTL: time.Minute})
	set, err := svc.ExclusionSet(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, set.IDs())
}
