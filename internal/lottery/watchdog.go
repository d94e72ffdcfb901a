package lottery

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// ReleaseStaleLock clears a draw lock that has been held longer than maxAge.
// A crashed process can leave isDrawing set; without this only an admin
// reset would clear it. Returns whether a lock was released.
func (s *service) ReleaseStaleLock(ctx context.Context, maxAge time.Duration) (bool, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToGetState, err)
	}
	if !state.IsDrawing || s.now().Sub(state.UpdatedAt) < maxAge {
		return false, nil
	}

	released, err := s.repo.SetDrawing(ctx, false)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	logger.FromContext(ctx).Warn(LogMsgStaleLockReleased,
		"held_since", state.UpdatedAt,
		"version", released.Version)
	s.publish(ctx, event.NewStateChangedEvent(*released, event.SourceService))
	s.publish(ctx, event.NewErrorEvent(ErrorCodeLockExpired, domain.ErrMsgDrawLockExpired, ""))
	return true, nil
}
