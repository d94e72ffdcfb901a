package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/database/generated"
	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// PhotoRepository reads the guest photo corpus
type PhotoRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{
		db: db,
		q:  generated.New(db),
	}
}

// ListPublicPhotos returns public photos in upload order
func (r *PhotoRepository) ListPublicPhotos(ctx context.Context) ([]domain.Photo, error) {
	rows, err := r.q.ListPublicPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListPhotos, err)
	}
	photos := make([]domain.Photo, 0, len(rows))
	for _, row := range rows {
		photos = append(photos, photoFromRow(row))
	}
	return photos, nil
}

// UpsertPhotos inserts or replaces photos in one transaction. Used by the
// devtool seeder; the upload pipeline writes this table directly.
func (r *PhotoRepository) UpsertPhotos(ctx context.Context, photos []domain.Photo) error {
	txh, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, txh.tx)

	now := time.Now().UTC()
	for _, p := range photos {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		err := txh.q.UpsertPhoto(ctx, generated.UpsertPhotoParams{
			ID:          p.ID,
			ImageUrl:    p.ImageURL,
			OwnerUserID: p.OwnerUserID,
			DisplayName: p.DisplayName,
			AvatarUrl:   p.AvatarURL,
			IsPublic:    p.IsPublic,
			CreatedAt:   pgTime(p.CreatedAt),
		})
		if err != nil {
			return fmt.Errorf("%s %q: %w", ErrContextUpsertPhoto, p.ID, err)
		}
	}
	return txh.Commit(ctx)
}
