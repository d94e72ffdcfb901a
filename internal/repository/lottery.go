package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Lottery defines the data access required by the lottery service.
// The state is a single row; history is append-only.
type Lottery interface {
	GetState(ctx context.Context) (*domain.LotteryState, error)
	UpdateState(ctx context.Context, update domain.ControlUpdate) (*domain.LotteryState, error)
	// SetDrawing writes the draw lock flag. The lottery service reads the state first
	// and sets the flag afterwards; this is not a compare-and-swap.
	SetDrawing(ctx context.Context, drawing bool) (*domain.LotteryState, error)
	// ResetState clears the current draw and the draw lock. Settings are kept.
	ResetState(ctx context.Context) (*domain.LotteryState, error)

	ListHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error)
	GetHistory(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
	DeleteHistory(ctx context.Context, id uuid.UUID) (*domain.LotteryState, error)
	ClearHistory(ctx context.Context) (int64, *domain.LotteryState, error)
	ListWinnerUserIDs(ctx context.Context) ([]string, error)

	BeginDrawTx(ctx context.Context) (DrawTx, error)
}

// DrawTx persists the outcome of one draw atomically
type DrawTx interface {
	Tx
	InsertHistory(ctx context.Context, records []domain.HistoryRecord) error
	// CompleteDraw points the state at drawID and releases the draw lock
	CompleteDraw(ctx context.Context, drawID uuid.UUID) (*domain.LotteryState, error)
}

// Photo is the read side of the photo corpus. Uploads live elsewhere.
type Photo interface {
	ListPublicPhotos(ctx context.Context) ([]domain.Photo, error)
}

// Track stores the machine-mode track configuration
type Track interface {
	// GetTrackConfig returns nil, nil when no track has been saved yet
	GetTrackConfig(ctx context.Context) (*domain.TrackConfig, error)
	SaveTrackConfig(ctx context.Context, track domain.TrackConfig) (*domain.TrackConfig, error)
}
