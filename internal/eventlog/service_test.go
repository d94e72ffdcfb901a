package eventlog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	mockBus := new(MockEventBus)

	for _, et := range LoggedEventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent_WinnerRecordsAdmin(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewWinnerEvent(domain.DrawResult{
		DrawID:            uuid.New(),
		Winners:           []domain.HistoryRecord{{ID: uuid.New(), WinnerUserID: "alice"}},
		ParticipantsCount: 3,
	}, true, "admin-7")

	mockRepo.On("LogEvent", ctx, string(event.LotteryNewWinner),
		mock.MatchedBy(func(u *string) bool { return u != nil && *u == "admin-7" }),
		mock.MatchedBy(func(p map[string]interface{}) bool {
			return p["participantsCount"] == float64(3)
		}),
		mock.Anything,
	).Return(nil)

	require.NoError(t, svc.handleEvent(ctx, evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_StateHasNoUser(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewStateChangedEvent(domain.DefaultLotteryState(), event.SourceService)
	mockRepo.On("LogEvent", ctx, string(event.LotteryStateChanged), (*string)(nil), mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.handleEvent(ctx, evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_UnflattenablePayloadSkipped(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	err := svc.handleEvent(context.Background(), event.Event{Type: event.LotteryError, Payload: "plain string"})
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Recent(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()
	filter := repository.EventLogFilter{Limit: 5}
	entries := []repository.EventLogEntry{{ID: 1, EventType: string(event.LotteryNewWinner)}}

	mockRepo.On("GetEvents", ctx, filter).Return(entries, nil)

	got, err := service.Recent(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)

	count, err := service.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}
