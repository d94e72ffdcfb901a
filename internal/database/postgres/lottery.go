package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/database/generated"
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// LotteryRepository implements repository.Lottery for PostgreSQL
type LotteryRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewLotteryRepository creates a new LotteryRepository
func NewLotteryRepository(db *pgxpool.Pool) *LotteryRepository {
	return &LotteryRepository{
		db: db,
		q:  generated.New(db),
	}
}

// stateResult maps a state row. A missing singleton row is ErrStateNotFound.
func stateResult(row generated.LotteryState, err error, errContext string) (*domain.LotteryState, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errContext, err)
	}
	return stateFromRow(row), nil
}

// GetState returns the singleton lottery state
func (r *LotteryRepository) GetState(ctx context.Context) (*domain.LotteryState, error) {
	row, err := r.q.GetLotteryState(ctx)
	return stateResult(row, err, ErrContextGetState)
}

// UpdateState applies a partial update. Nil fields keep their stored value.
func (r *LotteryRepository) UpdateState(ctx context.Context, update domain.ControlUpdate) (*domain.LotteryState, error) {
	row, err := r.q.UpdateLotteryControl(ctx, generated.UpdateLotteryControlParams{
		IsActive:              pgBool(update.IsActive),
		MaxPhotosForWeighting: pgInt4(update.MaxPhotosForWeighting),
		WinnersPerDraw:        pgInt4(update.WinnersPerDraw),
		AnimationMode:         pgText(update.AnimationMode),
		NotifyWinnerEnabled:   pgBool(update.NotifyWinnerEnabled),
	})
	return stateResult(row, err, ErrContextUpdateState)
}

// SetDrawing writes the draw lock flag
func (r *LotteryRepository) SetDrawing(ctx context.Context, drawing bool) (*domain.LotteryState, error) {
	row, err := r.q.SetLotteryDrawing(ctx, drawing)
	return stateResult(row, err, ErrContextUpdateState)
}

// ResetState clears the current draw and the lock. When both are already
// clear nothing is written and the stored state is returned unchanged.
func (r *LotteryRepository) ResetState(ctx context.Context) (*domain.LotteryState, error) {
	row, err := r.q.ResetLotteryState(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetState(ctx)
	}
	return stateResult(row, err, ErrContextUpdateState)
}

// ListHistory returns the most recent records first
func (r *LotteryRepository) ListHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	rows, err := r.q.ListHistory(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListHistory, err)
	}
	records := make([]domain.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, historyFromRow(row))
	}
	return records, nil
}

// GetHistory returns one record by id
func (r *LotteryRepository) GetHistory(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	row, err := r.q.GetHistory(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHistoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetHistory, err)
	}
	h := historyFromRow(row)
	return &h, nil
}

// DeleteHistory removes one record. If it was the current draw the state
// pointer is cleared in the same transaction and the new state is returned.
func (r *LotteryRepository) DeleteHistory(ctx context.Context, id uuid.UUID) (*domain.LotteryState, error) {
	txh, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}
	defer SafeRollback(ctx, txh.tx)

	deleted, err := txh.q.DeleteHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDeleteHistory, err)
	}
	if deleted == 0 {
		return nil, domain.ErrHistoryNotFound
	}

	var state *domain.LotteryState
	row, err := txh.q.ClearCurrentDrawIfMatches(ctx, pgUUID(id))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Not the current draw; the state is untouched
	case err != nil:
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateState, err)
	default:
		state = stateFromRow(row)
	}

	if err := txh.Commit(ctx); err != nil {
		return nil, err
	}
	return state, nil
}

// ClearHistory removes every record and clears the current draw
func (r *LotteryRepository) ClearHistory(ctx context.Context) (int64, *domain.LotteryState, error) {
	txh, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return 0, nil, err
	}
	defer SafeRollback(ctx, txh.tx)

	removed, err := txh.q.ClearHistory(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", ErrContextClearHistory, err)
	}

	row, err := txh.q.ClearCurrentDraw(ctx)
	state, err := stateResult(row, err, ErrContextUpdateState)
	if err != nil {
		return 0, nil, err
	}

	if err := txh.Commit(ctx); err != nil {
		return 0, nil, err
	}
	return removed, state, nil
}

// ListWinnerUserIDs returns every user who appears in history
func (r *LotteryRepository) ListWinnerUserIDs(ctx context.Context) ([]string, error) {
	ids, err := r.q.ListWinnerUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListHistory, err)
	}
	return ids, nil
}

// BeginDrawTx opens the transaction that records one draw
func (r *LotteryRepository) BeginDrawTx(ctx context.Context) (repository.DrawTx, error) {
	txh, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}
	return &drawTx{txHelper: txh}, nil
}

type drawTx struct {
	*txHelper
}

// InsertHistory writes one record per winner
func (t *drawTx) InsertHistory(ctx context.Context, records []domain.HistoryRecord) error {
	for _, h := range records {
		err := t.q.InsertHistory(ctx, generated.InsertHistoryParams{
			ID:                h.ID,
			WinnerUserID:      h.WinnerUserID,
			WinnerDisplayName: h.WinnerDisplayName,
			WinnerAvatarUrl:   h.WinnerAvatarURL,
			PhotoCountAtDraw:  int32(h.PhotoCountAtDraw),
			DrawTime:          pgTime(h.DrawTime),
			AdminID:           h.AdminID,
			ParticipantsCount: int32(h.ParticipantsCount),
			WinnerPhotoID:     h.WinnerPhotoID,
			WinnerPhotoUrl:    h.WinnerPhotoURL,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextInsertHistory, err)
		}
	}
	return nil
}

// CompleteDraw points the state at drawID and releases the lock
func (t *drawTx) CompleteDraw(ctx context.Context, drawID uuid.UUID) (*domain.LotteryState, error) {
	row, err := t.q.CompleteLotteryDraw(ctx, pgUUID(drawID))
	return stateResult(row, err, ErrContextUpdateState)
}

func (t *drawTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
