package display

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

func TestLatestDraw_GroupsOneDraw(t *testing.T) {
	drawTime := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	first, second, older := uuid.New(), uuid.New(), uuid.New()
	records := []domain.HistoryRecord{
		{ID: second, WinnerUserID: "b", DrawTime: drawTime, AdminID: "admin"},
		{ID: first, WinnerUserID: "a", DrawTime: drawTime, AdminID: "admin"},
		{ID: older, WinnerUserID: "c", DrawTime: drawTime.Add(-time.Hour), AdminID: "admin"},
	}

	d := LatestDraw(records, domain.AnimationTournament)

	require.NotNil(t, d)
	assert.Equal(t, second, d.ID)
	assert.Equal(t, domain.AnimationTournament, d.Mode)
	require.Len(t, d.Winners, 2)
	assert.Equal(t, "a", d.Winners[0].WinnerUserID)
	assert.Equal(t, "b", d.Winners[1].WinnerUserID)

	assert.Nil(t, LatestDraw(nil, domain.AnimationShuffle))
}

func TestClient_Snapshot(t *testing.T) {
	drawID := uuid.New()
	state := domain.DefaultLotteryState()
	state.IsActive = true
	state.WinnersPerDraw = 3
	state.CurrentDrawID = &drawID

	var gotLimit, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/lottery/state":
			_ = json.NewEncoder(w).Encode(state)
		case "/api/v1/lottery/history":
			gotLimit = r.URL.Query().Get("limit")
			_ = json.NewEncoder(w).Encode(domain.HistoryList{Records: []domain.HistoryRecord{
				{ID: drawID, WinnerUserID: "u"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL+"/", "secret").Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "3", gotLimit)
	assert.True(t, snap.State.IsActive)
	require.NotNil(t, snap.Latest)
	assert.Equal(t, drawID, snap.Latest.ID)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Photos(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "").Track(context.Background())
	assert.ErrorIs(t, err, domain.ErrChannelUnavailable)
}

func TestClient_Exclusions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.ExclusionList{UserIDs: []string{"a", "b"}})
	}))
	defer srv.Close()

	set, err := NewClient(srv.URL, "").Exclusions(context.Background())
	require.NoError(t, err)
	assert.True(t, set.Contains("a"))
	assert.True(t, set.Contains("b"))
	assert.False(t, set.Contains("c"))
}
