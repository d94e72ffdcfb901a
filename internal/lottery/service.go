package lottery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/repository"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Service defines the lottery operations exposed to admins and display screens
type Service interface {
	GetState(ctx context.Context) (*domain.LotteryState, error)
	UpdateControl(ctx context.Context, adminID string, update domain.ControlUpdate) (*domain.LotteryState, error)
	Reset(ctx context.Context, adminID string) (*domain.LotteryState, error)
	Draw(ctx context.Context, adminID string) (*domain.DrawResult, error)

	History(ctx context.Context, limit int) ([]domain.HistoryRecord, error)
	DeleteHistory(ctx context.Context, id uuid.UUID) error
	ClearHistory(ctx context.Context) (int64, error)

	EligibleParticipants(ctx context.Context) ([]domain.EligibleParticipant, error)
	PublicPhotos(ctx context.Context) ([]domain.Photo, error)
	ExclusionSet(ctx context.Context) (domain.ExclusionSet, error)

	GetTrack(ctx context.Context) (*domain.TrackConfig, error)
	UpdateTrack(ctx context.Context, track domain.TrackConfig) (*domain.TrackConfig, error)

	ReleaseStaleLock(ctx context.Context, maxAge time.Duration) (bool, error)
}

// CacheConfig sizes the track config cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type cachedTrackEntry struct {
	Version  string
	Track    domain.TrackConfig
	CachedAt time.Time
}

type service struct {
	repo       repository.Lottery
	photos     repository.Photo
	tracks     repository.Track
	eventBus   event.Bus
	rng        utils.RandomSource
	trackCache *expirable.LRU[string, *cachedTrackEntry]
	now        func() time.Time
}

// NewService creates a new lottery service. rng may be nil to use the default source.
func NewService(repo repository.Lottery, photos repository.Photo, tracks repository.Track, eventBus event.Bus, rng utils.RandomSource, cacheCfg CacheConfig) Service {
	if rng == nil {
		rng = utils.DefaultRNG()
	}
	if cacheCfg.Size <= 0 {
		cacheCfg.Size = DefaultTrackCacheSize
	}
	if cacheCfg.TTL <= 0 {
		cacheCfg.TTL = DefaultTrackCacheTTL
	}
	return &service{
		repo:       repo,
		photos:     photos,
		tracks:     tracks,
		eventBus:   eventBus,
		rng:        rng,
		trackCache: expirable.NewLRU[string, *cachedTrackEntry](cacheCfg.Size, nil, cacheCfg.TTL),
		now:        time.Now,
	}
}

// GetState returns the singleton lottery state
func (s *service) GetState(ctx context.Context) (*domain.LotteryState, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetState, err)
	}
	return state, nil
}

// UpdateControl applies a validated partial update and pushes the new state
func (s *service) UpdateControl(ctx context.Context, adminID string, update domain.ControlUpdate) (*domain.LotteryState, error) {
	if err := validateControlUpdate(update); err != nil {
		return nil, err
	}

	state, err := s.repo.UpdateState(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToUpdateState, err)
	}

	logger.FromContext(ctx).Info(LogMsgControlUpdated, "admin_id", adminID, "version", state.Version)
	s.publish(ctx, event.NewStateChangedEvent(*state, event.SourceService))
	return state, nil
}

// Reset clears the current draw and the draw lock. Applying it twice leaves
// the same state as applying it once.
func (s *service) Reset(ctx context.Context, adminID string) (*domain.LotteryState, error) {
	state, err := s.repo.ResetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToResetState, err)
	}

	logger.FromContext(ctx).Info(LogMsgStateReset, "admin_id", adminID, "version", state.Version)
	s.publish(ctx, event.NewStateChangedEvent(*state, event.SourceService))
	return state, nil
}

// History returns the newest records first
func (s *service) History(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	if limit > domain.MaxHistoryLimit {
		limit = domain.MaxHistoryLimit
	}
	records, err := s.repo.ListHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListHistory, err)
	}
	return records, nil
}

// DeleteHistory purges a single record. If it was the current draw the state
// pointer is cleared as well.
func (s *service) DeleteHistory(ctx context.Context, id uuid.UUID) error {
	state, err := s.repo.DeleteHistory(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToDeleteHistory, err)
	}

	logger.FromContext(ctx).Info(LogMsgHistoryDeleted, "id", id)
	s.publish(ctx, event.NewHistoryChangedEvent(&id, false, 1))
	if state != nil {
		s.publish(ctx, event.NewStateChangedEvent(*state, event.SourceService))
	}
	return nil
}

// ClearHistory purges every record, which also empties the exclusion set
func (s *service) ClearHistory(ctx context.Context) (int64, error) {
	removed, state, err := s.repo.ClearHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToClearHistory, err)
	}

	logger.FromContext(ctx).Info(LogMsgHistoryCleared, "removed", removed)
	s.publish(ctx, event.NewHistoryChangedEvent(nil, true, removed))
	if state != nil {
		s.publish(ctx, event.NewStateChangedEvent(*state, event.SourceService))
	}
	return removed, nil
}

// EligibleParticipants derives the eligible set from the current public photos
func (s *service) EligibleParticipants(ctx context.Context) ([]domain.EligibleParticipant, error) {
	photos, err := s.PublicPhotos(ctx)
	if err != nil {
		return nil, err
	}
	return BuildEligibility(photos), nil
}

// PublicPhotos returns the selection universe shown by display screens
func (s *service) PublicPhotos(ctx context.Context) ([]domain.Photo, error) {
	photos, err := s.photos.ListPublicPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadPhotos, err)
	}
	return photos, nil
}

// ExclusionSet returns the users who already won, rebuilt from history
func (s *service) ExclusionSet(ctx context.Context) (domain.ExclusionSet, error) {
	ids, err := s.repo.ListWinnerUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadExclusions, err)
	}
	return domain.NewExclusionSetFromIDs(ids), nil
}

// publish delivers an event; failures are logged and never fail the operation
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func validateControlUpdate(u domain.ControlUpdate) error {
	if u.Empty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if u.MaxPhotosForWeighting != nil {
		if v := *u.MaxPhotosForWeighting; v < 0 || v > domain.MaxPhotosForWeightingLimit {
			return fmt.Errorf("%w: maxPhotosForWeighting must be between 0 and %d", domain.ErrInvalidInput, domain.MaxPhotosForWeightingLimit)
		}
	}
	if u.WinnersPerDraw != nil {
		if v := *u.WinnersPerDraw; v < 1 || v > domain.MaxWinnersPerDraw {
			return fmt.Errorf("%w: winnersPerDraw must be between 1 and %d", domain.ErrInvalidInput, domain.MaxWinnersPerDraw)
		}
	}
	if u.AnimationMode != nil && !u.AnimationMode.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAnimationMode, *u.AnimationMode)
	}
	return nil
}
