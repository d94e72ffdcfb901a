package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/database/generated"
	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// TrackRepository stores the machine-mode track as a JSONB document
type TrackRepository struct {
	q *generated.Queries
}

// NewTrackRepository creates a new TrackRepository
func NewTrackRepository(db *pgxpool.Pool) *TrackRepository {
	return &TrackRepository{q: generated.New(db)}
}

// GetTrackConfig returns nil, nil when no track has been saved
func (r *TrackRepository) GetTrackConfig(ctx context.Context) (*domain.TrackConfig, error) {
	row, err := r.q.GetTrackConfig(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetTrack, err)
	}

	var track domain.TrackConfig
	if err := json.Unmarshal(row.Config, &track); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUnmarshalTrack, err)
	}
	// The column is authoritative over any updatedAt inside the document
	track.UpdatedAt = row.UpdatedAt.Time
	return &track, nil
}

// SaveTrackConfig replaces the stored track
func (r *TrackRepository) SaveTrackConfig(ctx context.Context, track domain.TrackConfig) (*domain.TrackConfig, error) {
	raw, err := json.Marshal(track)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextMarshalTrack, err)
	}

	updatedAt, err := r.q.SaveTrackConfig(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextSaveTrack, err)
	}
	track.UpdatedAt = updatedAt.Time
	return &track, nil
}
