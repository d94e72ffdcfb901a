package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

func record(userID string, at time.Time) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:                uuid.New(),
		WinnerUserID:      userID,
		WinnerDisplayName: "Guest " + userID,
		PhotoCountAtDraw:  2,
		DrawTime:          at,
		AdminID:           "admin-1",
		ParticipantsCount: 4,
		WinnerPhotoID:     "photo-" + userID,
		WinnerPhotoURL:    "https://img.example/" + userID + ".jpg",
	}
}

func recordDraw(t *testing.T, repo *LotteryRepository, records ...domain.HistoryRecord) *domain.LotteryState {
	t.Helper()
	ctx := context.Background()
	tx, err := repo.BeginDrawTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	require.NoError(t, tx.InsertHistory(ctx, records))
	state, err := tx.CompleteDraw(ctx, records[len(records)-1].ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return state
}

func TestLotteryRepository_StateLifecycle(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewLotteryRepository(pool)
	ctx := context.Background()

	state, err := repo.GetState(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsActive)
	assert.Equal(t, domain.AnimationShuffle, state.AnimationMode)
	assert.Nil(t, state.CurrentDrawID)

	active := true
	mode := domain.AnimationMachine
	updated, err := repo.UpdateState(ctx, domain.ControlUpdate{IsActive: &active, AnimationMode: &mode})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, domain.AnimationMachine, updated.AnimationMode)
	assert.Equal(t, 5, updated.MaxPhotosForWeighting, "untouched fields keep their value")
	assert.Greater(t, updated.Version, state.Version)

	locked, err := repo.SetDrawing(ctx, true)
	require.NoError(t, err)
	assert.True(t, locked.IsDrawing)

	reset, err := repo.ResetState(ctx)
	require.NoError(t, err)
	assert.False(t, reset.IsDrawing)
	assert.True(t, reset.IsActive, "reset keeps settings")

	again, err := repo.ResetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, reset.Version, again.Version, "second reset writes nothing")
}

func TestLotteryRepository_DrawAndHistory(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewLotteryRepository(pool)
	ctx := context.Background()

	_, err := repo.SetDrawing(ctx, true)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	first := record("alice", now)
	second := record("bob", now)
	state := recordDraw(t, repo, first, second)

	require.NotNil(t, state.CurrentDrawID)
	assert.Equal(t, second.ID, *state.CurrentDrawID)
	assert.False(t, state.IsDrawing, "completing a draw releases the lock")

	history, err := repo.ListHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "same draw time orders by insertion, newest first")

	got, err := repo.GetHistory(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.WinnerUserID)
	assert.Equal(t, first.WinnerPhotoURL, got.WinnerPhotoURL)

	ids, err := repo.ListWinnerUserIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)

	_, err = repo.GetHistory(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestLotteryRepository_DrawTxRollback(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewLotteryRepository(pool)
	ctx := context.Background()

	tx, err := repo.BeginDrawTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertHistory(ctx, []domain.HistoryRecord{record("carol", time.Now())}))
	require.NoError(t, tx.Rollback(ctx))

	history, err := repo.ListHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLotteryRepository_DeleteAndClear(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewLotteryRepository(pool)
	ctx := context.Background()

	old := record("alice", time.Now().Add(-time.Minute))
	recordDraw(t, repo, old)
	current := record("bob", time.Now())
	recordDraw(t, repo, current)

	state, err := repo.DeleteHistory(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, state, "deleting a past record leaves state untouched")

	state, err = repo.DeleteHistory(ctx, current.ID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Nil(t, state.CurrentDrawID)

	_, err = repo.DeleteHistory(ctx, current.ID)
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)

	recordDraw(t, repo, record("carol", time.Now()), record("dave", time.Now()))
	removed, state, err := repo.ClearHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Nil(t, state.CurrentDrawID)
}

func TestPhotoRepository_ListPublicPhotos(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewPhotoRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.UpsertPhotos(ctx, []domain.Photo{
		{ID: "p1", ImageURL: "u1", OwnerUserID: "alice", DisplayName: "Alice", IsPublic: true, CreatedAt: base},
		{ID: "p2", ImageURL: "u2", OwnerUserID: "bob", DisplayName: "Bob", IsPublic: false, CreatedAt: base.Add(time.Minute)},
		{ID: "p3", ImageURL: "u3", OwnerUserID: "alice", DisplayName: "Alice", IsPublic: true, CreatedAt: base.Add(2 * time.Minute)},
	}))

	photos, err := repo.ListPublicPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "p1", photos[0].ID)
	assert.Equal(t, "p3", photos[1].ID)
}

func TestTrackRepository_RoundTrip(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewTrackRepository(pool)
	ctx := context.Background()

	track, err := repo.GetTrackConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, track)

	saved, err := repo.SaveTrackConfig(ctx, domain.DefaultTrackConfig())
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	loaded, err := repo.GetTrackConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, domain.DefaultTrackConfig().Nodes, loaded.Nodes)
	assert.Equal(t, saved.UpdatedAt.Unix(), loaded.UpdatedAt.Unix())
}

func TestEventLogRepository(t *testing.T) {
	pool := openTestPool(t, testOrigin)
	repo := NewEventLogRepository(pool)
	ctx := context.Background()

	admin := "admin-1"
	require.NoError(t, repo.LogEvent(ctx, "lottery.new_winner", &admin, map[string]interface{}{"winners": 1}, nil))
	require.NoError(t, repo.LogEvent(ctx, "lottery.state_changed", nil, map[string]interface{}{"version": 2}, map[string]interface{}{"source": "service"}))

	eventType := "lottery.new_winner"
	events, err := repo.GetEvents(ctx, repository.EventLogFilter{EventType: &eventType})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, admin, *events[0].UserID)

	all, err := repo.GetEvents(ctx, repository.EventLogFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := repo.CleanupOldEvents(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
