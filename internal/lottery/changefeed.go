package lottery

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// ChangeFeed republishes rows written by other server instances onto the
// local bus so that this instance's display screens see them too.
type ChangeFeed struct {
	repo     repository.Lottery
	eventBus event.Bus
}

// NewChangeFeed creates a ChangeFeed
func NewChangeFeed(repo repository.Lottery, eventBus event.Bus) *ChangeFeed {
	return &ChangeFeed{repo: repo, eventBus: eventBus}
}

// HandleChange maps one row change to lottery events. A history insert is
// published as a single-winner draw with notifications off; the instance
// that ran the draw owns notification.
func (f *ChangeFeed) HandleChange(ctx context.Context, change repository.RowChange) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgChangeReceived, "table", change.Table, "op", change.Op, "origin", change.Origin)

	switch change.Table {
	case repository.ChangeTableState:
		state, err := f.repo.GetState(ctx)
		if err != nil {
			log.Warn(LogMsgChangeLookupFailed, "table", change.Table, "error", err)
			return
		}
		f.publish(ctx, event.NewStateChangedEvent(*state, event.SourceChangeFeed))

	case repository.ChangeTableHistory:
		id, err := uuid.Parse(change.ID)
		if err != nil {
			log.Warn(LogMsgChangeLookupFailed, "table", change.Table, "error", err)
			return
		}
		switch change.Op {
		case repository.ChangeOpInsert:
			rec, err := f.repo.GetHistory(ctx, id)
			if err != nil {
				log.Warn(LogMsgChangeLookupFailed, "table", change.Table, "error", err)
				return
			}
			evt := event.NewWinnerEvent(domain.DrawResult{
				DrawID:            rec.ID,
				Winners:           []domain.HistoryRecord{*rec},
				ParticipantsCount: rec.ParticipantsCount,
			}, false, rec.AdminID)
			evt.Metadata[event.MetadataKeySource] = event.SourceChangeFeed
			f.publish(ctx, evt)
		case repository.ChangeOpDelete:
			evt := event.NewHistoryChangedEvent(&id, false, 1)
			evt.Metadata[event.MetadataKeySource] = event.SourceChangeFeed
			f.publish(ctx, evt)
		}
	}
}

func (f *ChangeFeed) publish(ctx context.Context, evt event.Event) {
	if err := f.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
