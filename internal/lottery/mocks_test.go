package lottery

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// MockRepository mocks repository.Lottery
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetState(ctx context.Context) (*domain.LotteryState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockRepository) UpdateState(ctx context.Context, update domain.ControlUpdate) (*domain.LotteryState, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockRepository) SetDrawing(ctx context.Context, drawing bool) (*domain.LotteryState, error) {
	args := m.Called(ctx, drawing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockRepository) ResetState(ctx context.Context) (*domain.LotteryState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockRepository) ListHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

func (m *MockRepository) GetHistory(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryRecord), args.Error(1)
}

func (m *MockRepository) DeleteHistory(ctx context.Context, id uuid.UUID) (*domain.LotteryState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockRepository) ClearHistory(ctx context.Context) (int64, *domain.LotteryState, error) {
	args := m.Called(ctx)
	var state *domain.LotteryState
	if args.Get(1) != nil {
		state = args.Get(1).(*domain.LotteryState)
	}
	return args.Get(0).(int64), state, args.Error(2)
}

func (m *MockRepository) ListWinnerUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) BeginDrawTx(ctx context.Context) (repository.DrawTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.DrawTx), args.Error(1)
}

// MockDrawTx mocks repository.DrawTx
type MockDrawTx struct {
	mock.Mock
}

func (m *MockDrawTx) InsertHistory(ctx context.Context, records []domain.HistoryRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockDrawTx) CompleteDraw(ctx context.Context, drawID uuid.UUID) (*domain.LotteryState, error) {
	args := m.Called(ctx, drawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockDrawTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDrawTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPhotoRepository mocks repository.Photo
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) ListPublicPhotos(ctx context.Context) ([]domain.Photo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

// MockTrackRepository mocks repository.Track
type MockTrackRepository struct {
	mock.Mock
}

func (m *MockTrackRepository) GetTrackConfig(ctx context.Context) (*domain.TrackConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackConfig), args.Error(1)
}

func (m *MockTrackRepository) SaveTrackConfig(ctx context.Context, track domain.TrackConfig) (*domain.TrackConfig, error) {
	args := m.Called(ctx, track)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackConfig), args.Error(1)
}
