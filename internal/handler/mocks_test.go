package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// MockLotteryService mocks lottery.Service
type MockLotteryService struct {
	mock.Mock
}

func (m *MockLotteryService) GetState(ctx context.Context) (*domain.LotteryState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockLotteryService) UpdateControl(ctx context.Context, adminID string, update domain.ControlUpdate) (*domain.LotteryState, error) {
	args := m.Called(ctx, adminID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockLotteryService) Reset(ctx context.Context, adminID string) (*domain.LotteryState, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockLotteryService) Draw(ctx context.Context, adminID string) (*domain.DrawResult, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DrawResult), args.Error(1)
}

func (m *MockLotteryService) History(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

func (m *MockLotteryService) DeleteHistory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLotteryService) ClearHistory(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLotteryService) EligibleParticipants(ctx context.Context) ([]domain.EligibleParticipant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EligibleParticipant), args.Error(1)
}

func (m *MockLotteryService) PublicPhotos(ctx context.Context) ([]domain.Photo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *MockLotteryService) ExclusionSet(ctx context.Context) (domain.ExclusionSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ExclusionSet), args.Error(1)
}

func (m *MockLotteryService) GetTrack(ctx context.Context) (*domain.TrackConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackConfig), args.Error(1)
}

func (m *MockLotteryService) UpdateTrack(ctx context.Context, track domain.TrackConfig) (*domain.TrackConfig, error) {
	args := m.Called(ctx, track)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackConfig), args.Error(1)
}

func (m *MockLotteryService) ReleaseStaleLock(ctx context.Context, maxAge time.Duration) (bool, error) {
	args := m.Called(ctx, maxAge)
	return args.Bool(0), args.Error(1)
}

// MockEventLogService mocks eventlog.Service
type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) Recent(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventLogEntry), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

// MockDBPool mocks database.Pool
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
