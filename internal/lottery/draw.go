package lottery

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// Draw selects winners and records them in history.
//
// Preconditions are checked in order: a non-empty eligible set, then a free
// draw lock. The lock is read then written (not compare-and-swap), so two
// admins racing within one round trip can both pass the check. Once the lock
// is held it is always released, including when persistence fails.
func (s *service) Draw(ctx context.Context, adminID string) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDrawCalled, "admin_id", adminID)

	state, err := s.repo.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetState, err)
	}

	photos, err := s.PublicPhotos(ctx)
	if err != nil {
		return nil, err
	}

	pool := BuildEligibility(photos)
	if state.AnimationMode == domain.AnimationMachine {
		excluded, err := s.ExclusionSet(ctx)
		if err != nil {
			return nil, err
		}
		pool = ExcludeWinners(pool, excluded)
		log.Debug(LogMsgExclusionsApplied, "excluded", len(excluded), "remaining", len(pool))
	}

	if len(pool) == 0 {
		log.Info(LogMsgDrawRejected, "reason", domain.ErrMsgNoEligibleParticipants)
		return nil, domain.ErrNoEligibleParticipants
	}
	if state.IsDrawing {
		log.Info(LogMsgDrawRejected, "reason", domain.ErrMsgDrawAlreadyInProgress)
		return nil, domain.ErrDrawAlreadyInProgress
	}

	locked, err := s.repo.SetDrawing(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailure, ErrContextFailedToAcquireLock, err)
	}
	s.publish(ctx, event.NewStateChangedEvent(*locked, event.SourceService))

	completed := false
	defer func() {
		if !completed {
			s.releaseLock(ctx, adminID)
		}
	}()

	result, finalState, err := s.persistDraw(ctx, adminID, *state, pool, photos)
	if err != nil {
		log.Error(LogMsgDrawFailed, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	completed = true

	log.Info(LogMsgDrawCompleted,
		"draw_id", result.DrawID,
		"winners", len(result.Winners),
		"participants", result.ParticipantsCount)

	s.publish(ctx, event.NewStateChangedEvent(*finalState, event.SourceService))
	s.publish(ctx, event.NewWinnerEvent(*result, finalState.NotifyWinnerEnabled, adminID))
	return result, nil
}

func (s *service) persistDraw(ctx context.Context, adminID string, state domain.LotteryState, pool []domain.EligibleParticipant, photos []domain.Photo) (*domain.DrawResult, *domain.LotteryState, error) {
	winners := SelectWinners(pool, state.MaxPhotosForWeighting, state.WinnersPerDraw, s.rng)
	byOwner := PhotosByOwner(photos)
	drawTime := s.now().UTC()

	records := make([]domain.HistoryRecord, 0, len(winners))
	for _, w := range winners {
		rec := domain.HistoryRecord{
			ID:                uuid.New(),
			WinnerUserID:      w.UserID,
			WinnerDisplayName: w.DisplayName,
			WinnerAvatarURL:   w.AvatarURL,
			PhotoCountAtDraw:  w.PublicPhotoCount,
			DrawTime:          drawTime,
			AdminID:           adminID,
			ParticipantsCount: len(pool),
		}
		if photo, ok := PickPhoto(byOwner[w.UserID], s.rng); ok {
			rec.WinnerPhotoID = photo.ID
			rec.WinnerPhotoURL = photo.ImageURL
		} else {
			logger.FromContext(ctx).Warn(LogMsgWinnerHasNoPhoto, "user_id", w.UserID)
		}
		records = append(records, rec)
	}

	tx, err := s.repo.BeginDrawTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.InsertHistory(ctx, records); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToInsertHistory, err)
	}

	drawID := records[len(records)-1].ID
	finalState, err := tx.CompleteDraw(ctx, drawID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToCompleteDraw, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	return &domain.DrawResult{
		DrawID:            drawID,
		Winners:           records,
		ParticipantsCount: len(pool),
	}, finalState, nil
}

// releaseLock clears the draw lock on a context detached from the request so a
// cancelled request cannot leave the lottery stuck
func (s *service) releaseLock(ctx context.Context, adminID string) {
	log := logger.FromContext(ctx)
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LockReleaseTimeout)
	defer cancel()

	state, err := s.repo.SetDrawing(releaseCtx, false)
	if err != nil {
		log.Error(LogMsgLockReleaseFailed, "error", err)
		s.publish(releaseCtx, event.NewErrorEvent(ErrorCodeDrawFailed, domain.ErrMsgPersistenceFailure, adminID))
		return
	}

	log.Warn(LogMsgLockReleased, "version", state.Version)
	s.publish(releaseCtx, event.NewStateChangedEvent(*state, event.SourceService))
	s.publish(releaseCtx, event.NewErrorEvent(ErrorCodeDrawFailed, domain.ErrMsgPersistenceFailure, adminID))
}
