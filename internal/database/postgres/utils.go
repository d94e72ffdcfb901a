package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/database/generated"
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgFailedToRollback, "error", err)
	}
}

// txHelper pairs a transaction with queries bound to it
type txHelper struct {
	tx pgx.Tx
	q  *generated.Queries
}

// beginTx starts a new transaction. Use SafeRollback in defer to ensure proper cleanup.
func beginTx(ctx context.Context, db *pgxpool.Pool, q *generated.Queries) (*txHelper, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	return &txHelper{tx: tx, q: q.WithTx(tx)}, nil
}

func (h *txHelper) Commit(ctx context.Context) error {
	if err := h.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}
	return nil
}

// ---- Row mapping ----

func stateFromRow(row generated.LotteryState) *domain.LotteryState {
	return &domain.LotteryState{
		IsActive:              row.IsActive,
		IsDrawing:             row.IsDrawing,
		CurrentDrawID:         ptrUUID(row.CurrentDrawID),
		MaxPhotosForWeighting: int(row.MaxPhotosForWeighting),
		WinnersPerDraw:        int(row.WinnersPerDraw),
		AnimationMode:         domain.AnimationMode(row.AnimationMode),
		NotifyWinnerEnabled:   row.NotifyWinnerEnabled,
		Version:               row.Version,
		UpdatedAt:             row.UpdatedAt.Time,
	}
}

func historyFromRow(row generated.LotteryHistory) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:                row.ID,
		WinnerUserID:      row.WinnerUserID,
		WinnerDisplayName: row.WinnerDisplayName,
		WinnerAvatarURL:   row.WinnerAvatarUrl,
		PhotoCountAtDraw:  int(row.PhotoCountAtDraw),
		DrawTime:          row.DrawTime.Time,
		AdminID:           row.AdminID,
		ParticipantsCount: int(row.ParticipantsCount),
		WinnerPhotoID:     row.WinnerPhotoID,
		WinnerPhotoURL:    row.WinnerPhotoUrl,
	}
}

func photoFromRow(row generated.Photo) domain.Photo {
	return domain.Photo{
		ID:          row.ID,
		ImageURL:    row.ImageUrl,
		OwnerUserID: row.OwnerUserID,
		DisplayName: row.DisplayName,
		AvatarURL:   row.AvatarUrl,
		IsPublic:    row.IsPublic,
		CreatedAt:   row.CreatedAt.Time,
	}
}

// ---- pgtype conversions ----

// ptrUUID converts a nullable pgtype.UUID to *uuid.UUID
func ptrUUID(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgBool(v *bool) pgtype.Bool {
	if v == nil {
		return pgtype.Bool{}
	}
	return pgtype.Bool{Bool: *v, Valid: true}
}

func pgInt4(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

// pgText passes optional enums as nullable text
func pgText[T ~string](v *T) pgtype.Text {
	if v == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*v), Valid: true}
}
