package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func testState() *domain.LotteryState {
	s := domain.DefaultLotteryState()
	s.IsActive = true
	s.Version = 3
	return &s
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func TestHandleGetState(t *testing.T) {
	t.Run("returns state", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("GetState", mock.Anything).Return(testState(), nil)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleGetState(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/state", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isActive":true`)
		assert.Contains(t, w.Body.String(), `"animationMode":"shuffle"`)
		svc.AssertExpectations(t)
	})

	t.Run("unprovisioned state is 404", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("GetState", mock.Anything).Return(nil, domain.ErrStateNotFound)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleGetState(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/state", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgStateNotFoundError)
	})
}

func TestHandleUpdateControl(t *testing.T) {
	mode := domain.AnimationMachine

	tests := []struct {
		name           string
		body           interface{}
		wantUpdate     *domain.ControlUpdate
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "single field",
			body:           map[string]interface{}{"field": "winnersPerDraw", "value": 3, "adminId": "admin-1"},
			wantUpdate:     &domain.ControlUpdate{WinnersPerDraw: intPtr(3)},
			expectedStatus: http.StatusOK,
		},
		{
			name: "multiple fields",
			body: map[string]interface{}{
				"updates": map[string]interface{}{"isActive": false, "animationMode": "machine", "maxPhotosForWeighting": 0},
				"adminId": "admin-1",
			},
			wantUpdate:     &domain.ControlUpdate{IsActive: boolPtr(false), AnimationMode: &mode, MaxPhotosForWeighting: intPtr(0)},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing admin",
			body:           map[string]interface{}{"field": "isActive", "value": true},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"adminid":"This field is required"`,
		},
		{
			name:           "no fields",
			body:           map[string]interface{}{"adminId": "admin-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgControlNoFields,
		},
		{
			name: "both forms",
			body: map[string]interface{}{
				"field": "isActive", "value": true,
				"updates": map[string]interface{}{"isActive": false},
				"adminId": "admin-1",
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgControlBothForms,
		},
		{
			name:           "unknown field",
			body:           map[string]interface{}{"field": "isDrawing", "value": true, "adminId": "admin-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   fmt.Sprintf(ErrMsgControlUnknownField, "isDrawing"),
		},
		{
			name:           "fractional count",
			body:           map[string]interface{}{"field": "winnersPerDraw", "value": 1.5, "adminId": "admin-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   fmt.Sprintf(ErrMsgControlBadValue, "winnersPerDraw"),
		},
		{
			name:           "wrong type",
			body:           map[string]interface{}{"field": "isActive", "value": "yes", "adminId": "admin-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   fmt.Sprintf(ErrMsgControlBadValue, "isActive"),
		},
		{
			name:           "unknown mode",
			body:           map[string]interface{}{"field": "animationMode", "value": "roulette", "adminId": "admin-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be one of shuffle, waterfall, tournament, machine",
		},
		{
			name:           "winners below one",
			body:           map[string]interface{}{"field": "winnersPerDraw", "value": 0, "adminId": "admin-1"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"winnersperdraw":"Must be at least 1"`,
		},
		{
			name:           "invalid json",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "service rejects",
			body:           map[string]interface{}{"field": "maxPhotosForWeighting", "value": 10, "adminId": "admin-1"},
			wantUpdate:     &domain.ControlUpdate{MaxPhotosForWeighting: intPtr(10)},
			serviceErr:     fmt.Errorf("%w: maxPhotosForWeighting out of range", domain.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "maxPhotosForWeighting out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockLotteryService{}
			if tt.wantUpdate != nil {
				if tt.serviceErr != nil {
					svc.On("UpdateControl", mock.Anything, "admin-1", *tt.wantUpdate).Return(nil, tt.serviceErr)
				} else {
					svc.On("UpdateControl", mock.Anything, "admin-1", *tt.wantUpdate).Return(testState(), nil)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/lottery/control", jsonBody(t, tt.body))
			w := httptest.NewRecorder()
			NewLotteryHandler(svc).HandleUpdateControl(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleUpdateControl_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	body := map[string]interface{}{"field": "isDrawing", "value": true, "adminId": "admin-9"}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lottery/control", jsonBody(t, body))
	w := httptest.NewRecorder()
	NewLotteryHandler(&MockLotteryService{}).HandleUpdateControl(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, buf.String(), `"msg":"`+LogMsgControlRejected+`"`)
	assert.Contains(t, buf.String(), `"admin_id":"admin-9"`)
}

func TestHandleReset(t *testing.T) {
	svc := &MockLotteryService{}
	// Reset keeps the settings and only clears the draw and the lock
	reset := *testState()
	reset.AnimationMode = domain.AnimationMachine
	reset.WinnersPerDraw = 2
	svc.On("Reset", mock.Anything, "admin-1").Return(&reset, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/lottery/control/reset", jsonBody(t, domain.AdminRequest{AdminID: "admin-1"}))
	w := httptest.NewRecorder()
	NewLotteryHandler(svc).HandleReset(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.LotteryState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.IsDrawing)
	assert.Nil(t, got.CurrentDrawID)
	assert.True(t, got.IsActive)
	assert.Equal(t, domain.AnimationMachine, got.AnimationMode)
	assert.Equal(t, 2, got.WinnersPerDraw)
	svc.AssertExpectations(t)
}

func TestHandleDraw(t *testing.T) {
	drawID := uuid.MustParse("00000000-0000-0000-0000-000000000007")

	tests := []struct {
		name           string
		result         *domain.DrawResult
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "accepted",
			result: &domain.DrawResult{
				DrawID:            drawID,
				Winners:           []domain.HistoryRecord{{ID: drawID, WinnerUserID: "u1", WinnerDisplayName: "Ada"}},
				ParticipantsCount: 4,
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"winnerDisplayName":"Ada"`,
		},
		{
			name:           "draw in progress",
			err:            domain.ErrDrawAlreadyInProgress,
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgDrawInProgressError,
		},
		{
			name:           "no eligible participants",
			err:            fmt.Errorf("draw: %w", domain.ErrNoEligibleParticipants),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   ErrMsgNoEligibleError,
		},
		{
			name:           "persistence failure hides detail",
			err:            fmt.Errorf("%w: insert history: connection reset", domain.ErrPersistenceFailure),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockLotteryService{}
			if tt.err != nil {
				svc.On("Draw", mock.Anything, "admin-1").Return(nil, tt.err)
			} else {
				svc.On("Draw", mock.Anything, "admin-1").Return(tt.result, nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/lottery/draw", jsonBody(t, domain.AdminRequest{AdminID: "admin-1"}))
			w := httptest.NewRecorder()
			NewLotteryHandler(svc).HandleDraw(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "connection reset")
			svc.AssertExpectations(t)
		})
	}

	t.Run("admin required", func(t *testing.T) {
		svc := &MockLotteryService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lottery/draw", jsonBody(t, map[string]string{}))
		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleDraw(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Draw", mock.Anything, mock.Anything)
	})
}

func TestHandleGetHistory(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("History", mock.Anything, domain.DefaultHistoryLimit).Return([]domain.HistoryRecord{
			{WinnerUserID: "u2", DrawTime: time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)},
		}, nil)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleGetHistory(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/history", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var list domain.HistoryList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list.Records, 1)
		assert.Equal(t, "u2", list.Records[0].WinnerUserID)
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("History", mock.Anything, 5).Return(nil, nil)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleGetHistory(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/history?limit=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"records":[]}`, w.Body.String())
	})

	for _, limit := range []string{"0", "-1", "abc", "501"} {
		t.Run("rejects limit "+limit, func(t *testing.T) {
			svc := &MockLotteryService{}
			w := httptest.NewRecorder()
			NewLotteryHandler(svc).HandleGetHistory(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/history?limit="+limit, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleDeleteHistory(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	t.Run("single record", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("DeleteHistory", mock.Anything, id).Return(nil)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleDeleteHistory(w, httptest.NewRequest(http.MethodDelete, "/api/v1/lottery/history?id="+id.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgHistoryRecordDeleted)
		svc.AssertExpectations(t)
	})

	t.Run("missing record", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("DeleteHistory", mock.Anything, id).Return(domain.ErrHistoryNotFound)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleDeleteHistory(w, httptest.NewRequest(http.MethodDelete, "/api/v1/lottery/history?id="+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := &MockLotteryService{}
		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleDeleteHistory(w, httptest.NewRequest(http.MethodDelete, "/api/v1/lottery/history?id=nope", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidHistoryID)
	})

	t.Run("id required without all", func(t *testing.T) {
		svc := &MockLotteryService{}
		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleDeleteHistory(w, httptest.NewRequest(http.MethodDelete, "/api/v1/lottery/history", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(ErrMsgMissingQueryParam, QueryParamID))
	})

	t.Run("purge all", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("ClearHistory", mock.Anything).Return(int64(12), nil)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleDeleteHistory(w, httptest.NewRequest(http.MethodDelete, "/api/v1/lottery/history?all=true", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"removed":12}`, w.Body.String())
		svc.AssertNotCalled(t, "DeleteHistory", mock.Anything, mock.Anything)
	})
}

func TestHandleGetEligible(t *testing.T) {
	svc := &MockLotteryService{}
	state := testState()
	state.MaxPhotosForWeighting = 3
	svc.On("GetState", mock.Anything).Return(state, nil)
	svc.On("EligibleParticipants", mock.Anything).Return([]domain.EligibleParticipant{
		{UserID: "a", PublicPhotoCount: 1},
		{UserID: "b", PublicPhotoCount: 7},
	}, nil)

	w := httptest.NewRecorder()
	NewLotteryHandler(svc).HandleGetEligible(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/eligible", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list domain.EligibleList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, 4, list.TotalWeight, "weights are capped at maxPhotosForWeighting")
}

func TestHandleGetPhotosAndExclusions(t *testing.T) {
	svc := &MockLotteryService{}
	svc.On("PublicPhotos", mock.Anything).Return(nil, nil)
	svc.On("ExclusionSet", mock.Anything).Return(domain.NewExclusionSetFromIDs([]string{"z", "a"}), nil)
	h := NewLotteryHandler(svc)

	w := httptest.NewRecorder()
	h.HandleGetPhotos(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/photos", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"photos":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleGetExclusions(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/exclusions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userIds":["a","z"]}`, w.Body.String())
}

func TestHandleTrack(t *testing.T) {
	track := domain.DefaultTrackConfig()

	t.Run("get", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("GetTrack", mock.Anything).Return(&track, nil)

		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleGetTrack(w, httptest.NewRequest(http.MethodGet, "/api/v1/lottery/track", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"startPoint":{"x":50,"y":62}`)
	})

	t.Run("invalid track", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("UpdateTrack", mock.Anything, mock.AnythingOfType("domain.TrackConfig")).
			Return(nil, fmt.Errorf("%w: point 1 outside canvas", domain.ErrInvalidTrackConfig))

		req := httptest.NewRequest(http.MethodPut, "/api/v1/lottery/track", jsonBody(t, track))
		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleUpdateTrack(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "outside canvas")
	})

	t.Run("saved", func(t *testing.T) {
		svc := &MockLotteryService{}
		svc.On("UpdateTrack", mock.Anything, mock.MatchedBy(func(tc domain.TrackConfig) bool {
			return len(tc.Nodes) == len(track.Nodes) && tc.TokenDiameter == track.TokenDiameter
		})).Return(&track, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/lottery/track", jsonBody(t, track))
		w := httptest.NewRecorder()
		NewLotteryHandler(svc).HandleUpdateTrack(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrDrawAlreadyInProgress, http.StatusConflict},
		{domain.ErrNoEligibleParticipants, http.StatusUnprocessableEntity},
		{domain.ErrHistoryNotFound, http.StatusNotFound},
		{domain.ErrStateNotFound, http.StatusNotFound},
		{domain.ErrInvalidAnimationMode, http.StatusBadRequest},
		{domain.ErrInvalidTrackConfig, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrPersistenceFailure, http.StatusInternalServerError},
		{fmt.Errorf("wrapped twice: %w", fmt.Errorf("once: %w", domain.ErrDrawAlreadyInProgress)), http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.wantStatus, status, "error: %v", tt.err)
		assert.NotEmpty(t, msg)
	}
}
