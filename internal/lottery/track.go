package lottery

import (
	"context"
	"fmt"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// GetTrack returns the stored track, the default when none is stored
func (s *service) GetTrack(ctx context.Context) (*domain.TrackConfig, error) {
	if entry, ok := s.trackCache.Get(trackCacheKey); ok {
		if entry.Version == CacheSchemaVersion {
			logger.FromContext(ctx).Debug(LogMsgTrackCacheHit)
			track := entry.Track
			return &track, nil
		}
		s.trackCache.Remove(trackCacheKey)
	}

	track, err := s.tracks.GetTrackConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetTrack, err)
	}
	if track == nil {
		logger.FromContext(ctx).Debug(LogMsgTrackDefaultApplied)
		def := domain.DefaultTrackConfig()
		track = &def
	}

	s.cacheTrack(*track)
	return track, nil
}

// UpdateTrack validates and stores a new track
func (s *service) UpdateTrack(ctx context.Context, track domain.TrackConfig) (*domain.TrackConfig, error) {
	if err := ValidateTrack(track); err != nil {
		return nil, err
	}

	saved, err := s.tracks.SaveTrackConfig(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveTrack, err)
	}

	s.cacheTrack(*saved)
	logger.FromContext(ctx).Info(LogMsgTrackUpdated, "nodes", len(saved.Nodes))
	return saved, nil
}

func (s *service) cacheTrack(track domain.TrackConfig) {
	s.trackCache.Add(trackCacheKey, &cachedTrackEntry{
		Version:  CacheSchemaVersion,
		Track:    track,
		CachedAt: s.now(),
	})
}

// ValidateTrack checks that every point lies on the design canvas and the
// chamber dimensions are usable
func ValidateTrack(track domain.TrackConfig) error {
	if len(track.Nodes) > MaxTrackNodes {
		return fmt.Errorf("%w: at most %d nodes", domain.ErrInvalidTrackConfig, MaxTrackNodes)
	}
	for i, p := range track.ControlPoints() {
		if p.X < TrackCoordMin || p.X > TrackCoordMax || p.Y < TrackCoordMin || p.Y > TrackCoordMax {
			return fmt.Errorf("%w: point %d (%.1f, %.1f) outside canvas", domain.ErrInvalidTrackConfig, i, p.X, p.Y)
		}
	}
	if track.TokenDiameter <= 0 {
		return fmt.Errorf("%w: tokenDiameter must be positive", domain.ErrInvalidTrackConfig)
	}
	if track.ChamberWidth <= track.TokenDiameter || track.ChamberHeight <= track.TokenDiameter {
		return fmt.Errorf("%w: chamber must be larger than a token", domain.ErrInvalidTrackConfig)
	}
	return nil
}
