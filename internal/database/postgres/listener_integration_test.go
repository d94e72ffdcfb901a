package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

func TestChangeListener_ForwardsForeignChanges(t *testing.T) {
	listenerPool := openTestPool(t, "instance-a")
	writerPool := openTestPool(t, "instance-b")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan repository.RowChange, 8)
	listener := NewChangeListener(listenerPool, "instance-a", func(_ context.Context, c repository.RowChange) {
		changes <- c
	})
	done := make(chan struct{})
	go func() {
		listener.Run(ctx)
		close(done)
	}()
	// LISTEN must be registered before the writes below
	time.Sleep(200 * time.Millisecond)

	// own writes are dropped
	_, err := NewLotteryRepository(listenerPool).SetDrawing(context.Background(), true)
	require.NoError(t, err)

	writer := NewLotteryRepository(writerPool)
	active := true
	_, err = writer.UpdateState(context.Background(), domain.ControlUpdate{IsActive: &active})
	require.NoError(t, err)

	select {
	case c := <-changes:
		assert.Equal(t, repository.ChangeTableState, c.Table)
		assert.Equal(t, repository.ChangeOpUpdate, c.Op)
		assert.Equal(t, "instance-b", c.Origin)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification from the other instance")
	}

	select {
	case c := <-changes:
		t.Fatalf("unexpected extra change %+v", c)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}
