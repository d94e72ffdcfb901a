package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
)

func newWinnerEvent(notify bool, winners ...string) event.Event {
	result := domain.DrawResult{DrawID: uuid.New(), ParticipantsCount: 5}
	for _, w := range winners {
		result.Winners = append(result.Winners, domain.HistoryRecord{ID: uuid.New(), WinnerUserID: w})
	}
	return event.NewWinnerEvent(result, notify, "admin")
}

func setupDispatcher(t *testing.T, notifier Notifier, queue Queue) (*Dispatcher, *outcomeRecorder) {
	t.Helper()
	bus := event.NewMemoryBus()
	rec := &outcomeRecorder{}
	bus.Subscribe(event.WinnerNotified, rec.handle)
	d := NewDispatcher(notifier, queue, bus)
	d.Subscribe(bus)
	return d, rec
}

func TestDispatcher_HandleNewWinner(t *testing.T) {
	t.Run("queues one job per winner and reports outcomes", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(r Request) bool { return r.WinnerUserID == "u1" })).Return(nil)
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(r Request) bool { return r.WinnerUserID == "u2" })).
			Return(errors.New("dm closed"))
		queue := &inlineQueue{}
		d, rec := setupDispatcher(t, notifier, queue)

		err := d.HandleNewWinner(context.Background(), newWinnerEvent(true, "u1", "u2"))

		require.NoError(t, err)
		assert.Equal(t, 2, queue.jobs)
		outcomes := rec.all()
		require.Len(t, outcomes, 2)
		assert.True(t, outcomes[0].Delivered)
		assert.False(t, outcomes[1].Delivered)
		assert.Contains(t, outcomes[1].Error, "dm closed")
		notifier.AssertExpectations(t)
	})

	t.Run("skips when notifications disabled for the draw", func(t *testing.T) {
		notifier := new(MockNotifier)
		queue := &inlineQueue{}
		d, rec := setupDispatcher(t, notifier, queue)

		require.NoError(t, d.HandleNewWinner(context.Background(), newWinnerEvent(false, "u1")))

		assert.Zero(t, queue.jobs)
		assert.Empty(t, rec.all())
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("skips without a configured sender", func(t *testing.T) {
		queue := &inlineQueue{}
		d, rec := setupDispatcher(t, nil, queue)

		require.NoError(t, d.HandleNewWinner(context.Background(), newWinnerEvent(true, "u1")))

		assert.Zero(t, queue.jobs)
		assert.Empty(t, rec.all())
	})

	t.Run("skips replicated winners", func(t *testing.T) {
		notifier := new(MockNotifier)
		queue := &inlineQueue{}
		d, _ := setupDispatcher(t, notifier, queue)
		evt := newWinnerEvent(true, "u1")
		evt.Metadata[event.MetadataKeySource] = event.SourceChangeFeed

		require.NoError(t, d.HandleNewWinner(context.Background(), evt))

		assert.Zero(t, queue.jobs)
	})

	t.Run("full queue reports a failure without blocking", func(t *testing.T) {
		notifier := new(MockNotifier)
		d, rec := setupDispatcher(t, notifier, &inlineQueue{full: true})

		require.NoError(t, d.HandleNewWinner(context.Background(), newWinnerEvent(true, "u1")))

		outcomes := rec.all()
		require.Len(t, outcomes, 1)
		assert.False(t, outcomes[0].Delivered)
		assert.Contains(t, outcomes[0].Error, ErrContextQueueFull)
	})

	t.Run("ignores malformed payload", func(t *testing.T) {
		d, _ := setupDispatcher(t, new(MockNotifier), &inlineQueue{})
		evt := event.Event{Type: event.LotteryNewWinner, Payload: "garbage"}
		assert.NoError(t, d.HandleNewWinner(context.Background(), evt))
	})
}
