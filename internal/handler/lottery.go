package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/lottery"
	"github.com/osse101/WeddingBot_Go/internal/metrics"
)

// LotteryHandler serves the admin control surface and the display read endpoints
type LotteryHandler struct {
	service lottery.Service
}

// NewLotteryHandler creates a new lottery handler
func NewLotteryHandler(service lottery.Service) *LotteryHandler {
	return &LotteryHandler{service: service}
}

// HandleGetState returns the current control record
// @Summary Get lottery state
// @Description Returns the singleton lottery state shared by admins and displays
// @Tags lottery
// @Produce json
// @Success 200 {object} domain.LotteryState
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/lottery/state [get]
func (h *LotteryHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetState(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStateFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleUpdateControl changes one or more control fields
// @Summary Update lottery controls
// @Description Accepts either a single field/value pair or an updates map
// @Tags lottery
// @Accept json
// @Produce json
// @Param request body domain.ControlRequest true "Control update"
// @Success 200 {object} domain.LotteryState
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/lottery/control [post]
func (h *LotteryHandler) HandleUpdateControl(w http.ResponseWriter, r *http.Request) {
	var req domain.ControlRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpUpdateControl); err != nil {
		return
	}

	update, err := parseControlUpdate(req)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgControlRejected, "error", err, "admin_id", req.AdminID)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := GetValidator().ValidateStruct(newControlValues(update)); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return
	}

	state, err := h.service.UpdateControl(r.Context(), req.AdminID, update)
	if err != nil {
		respondServiceError(w, r, OpUpdateControl, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleReset clears the current draw and releases any draw lock. The
// control settings are kept.
// @Summary Reset lottery
// @Description Clears currentDrawId and isDrawing; activity, mode and weighting are unchanged
// @Tags lottery
// @Accept json
// @Produce json
// @Param request body domain.AdminRequest true "Admin"
// @Success 200 {object} domain.LotteryState
// @Router /api/v1/lottery/control/reset [put]
func (h *LotteryHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpReset); err != nil {
		return
	}

	state, err := h.service.Reset(r.Context(), req.AdminID)
	if err != nil {
		respondServiceError(w, r, OpReset, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// HandleDraw runs one draw
// @Summary Draw winners
// @Description Selects winners by weighted sampling without replacement
// @Tags lottery
// @Accept json
// @Produce json
// @Param request body domain.AdminRequest true "Admin"
// @Success 200 {object} domain.DrawResult
// @Failure 409 {object} ErrorResponse "A draw is already in progress"
// @Failure 422 {object} ErrorResponse "No eligible participants"
// @Router /api/v1/lottery/draw [post]
func (h *LotteryHandler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpDraw); err != nil {
		return
	}

	result, err := h.service.Draw(r.Context(), req.AdminID)
	if err != nil {
		metrics.RecordDrawRejection(err)
		respondServiceError(w, r, OpDraw, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleGetHistory lists winners newest first
// @Summary List draw history
// @Tags lottery
// @Produce json
// @Param limit query int false "Maximum records (1-500)"
// @Success 200 {object} domain.HistoryList
// @Router /api/v1/lottery/history [get]
func (h *LotteryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetLimitParam(r, w, domain.DefaultHistoryLimit, domain.MaxHistoryLimit)
	if !ok {
		return
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get history", err)
		return
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	respondJSON(w, http.StatusOK, domain.HistoryList{Records: records})
}

// HandleDeleteHistory removes one record by id, or every record with all=true
// @Summary Delete draw history
// @Tags lottery
// @Produce json
// @Param id query string false "History record id"
// @Param all query bool false "Purge every record"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/lottery/history [delete]
func (h *LotteryHandler) HandleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if all, _ := strconv.ParseBool(r.URL.Query().Get(QueryParamAll)); all {
		removed, err := h.service.ClearHistory(r.Context())
		if err != nil {
			respondServiceError(w, r, "Clear history", err)
			return
		}
		respondJSON(w, http.StatusOK, domain.ClearHistoryResult{Removed: removed})
		return
	}

	rawID, ok := GetQueryParam(r, w, QueryParamID)
	if !ok {
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidHistoryID)
		return
	}

	if err := h.service.DeleteHistory(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete history", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHistoryRecordDeleted})
}

// HandleGetEligible lists who would be in the next draw and their combined weight
// @Summary List eligible participants
// @Tags lottery
// @Produce json
// @Success 200 {object} domain.EligibleList
// @Router /api/v1/lottery/eligible [get]
func (h *LotteryHandler) HandleGetEligible(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetState(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStateFailed, err)
		return
	}
	participants, err := h.service.EligibleParticipants(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEligibleFailed, err)
		return
	}

	list := domain.EligibleList{
		Participants: participants,
		Count:        len(participants),
	}
	if list.Participants == nil {
		list.Participants = []domain.EligibleParticipant{}
	}
	for _, p := range participants {
		list.TotalWeight += p.Weight(state.MaxPhotosForWeighting)
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleGetPhotos returns the public photo universe used by the waterfall and machine modes
// @Summary List public photos
// @Tags lottery
// @Produce json
// @Success 200 {object} domain.PhotoList
// @Router /api/v1/lottery/photos [get]
func (h *LotteryHandler) HandleGetPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.PublicPhotos(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get photos", err)
		return
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	respondJSON(w, http.StatusOK, domain.PhotoList{Photos: photos})
}

// HandleGetExclusions returns the users who already won this session
// @Summary List excluded winners
// @Tags lottery
// @Produce json
// @Success 200 {object} domain.ExclusionList
// @Router /api/v1/lottery/exclusions [get]
func (h *LotteryHandler) HandleGetExclusions(w http.ResponseWriter, r *http.Request) {
	set, err := h.service.ExclusionSet(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get exclusions", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.ExclusionList{UserIDs: set.IDs()})
}

// HandleGetTrack returns the machine-mode flight path
// @Summary Get machine track
// @Tags lottery
// @Produce json
// @Success 200 {object} domain.TrackConfig
// @Router /api/v1/lottery/track [get]
func (h *LotteryHandler) HandleGetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := h.service.GetTrack(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get track", err)
		return
	}
	respondJSON(w, http.StatusOK, track)
}

// HandleUpdateTrack replaces the machine-mode flight path
// @Summary Update machine track
// @Tags lottery
// @Accept json
// @Produce json
// @Param request body domain.TrackConfig true "Track"
// @Success 200 {object} domain.TrackConfig
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/lottery/track [put]
func (h *LotteryHandler) HandleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	var req domain.TrackConfig
	if err := DecodeAndValidateRequest(r, w, &req, OpUpdateTrack); err != nil {
		return
	}

	track, err := h.service.UpdateTrack(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, OpUpdateTrack, err)
		return
	}
	respondJSON(w, http.StatusOK, track)
}

// controlValues carries the typed update through tag validation
type controlValues struct {
	MaxPhotosForWeighting *int                  `validate:"omitempty,min=0,max=1000"`
	WinnersPerDraw        *int                  `validate:"omitempty,min=1,max=50"`
	AnimationMode         *domain.AnimationMode `validate:"omitempty,animation_mode"`
}

func newControlValues(u domain.ControlUpdate) controlValues {
	return controlValues{
		MaxPhotosForWeighting: u.MaxPhotosForWeighting,
		WinnersPerDraw:        u.WinnersPerDraw,
		AnimationMode:         u.AnimationMode,
	}
}

// parseControlUpdate turns the loosely typed request into a ControlUpdate.
// Exactly one of field/value or updates must be supplied.
func parseControlUpdate(req domain.ControlRequest) (domain.ControlUpdate, error) {
	var update domain.ControlUpdate

	hasField := req.Field != ""
	hasUpdates := len(req.Updates) > 0
	switch {
	case hasField && hasUpdates:
		return update, errors.New(ErrMsgControlBothForms)
	case !hasField && !hasUpdates:
		return update, errors.New(ErrMsgControlNoFields)
	}

	values := req.Updates
	if hasField {
		values = map[string]interface{}{string(req.Field): req.Value}
	}

	for key, raw := range values {
		field := domain.ControlField(key)
		switch field {
		case domain.ControlIsActive, domain.ControlNotifyWinnerEnabled:
			b, ok := raw.(bool)
			if !ok {
				return update, fmt.Errorf(ErrMsgControlBadValue, key)
			}
			if field == domain.ControlIsActive {
				update.IsActive = &b
			} else {
				update.NotifyWinnerEnabled = &b
			}
		case domain.ControlMaxPhotosForWeighting, domain.ControlWinnersPerDraw:
			n, ok := asInt(raw)
			if !ok {
				return update, fmt.Errorf(ErrMsgControlBadValue, key)
			}
			if field == domain.ControlMaxPhotosForWeighting {
				update.MaxPhotosForWeighting = &n
			} else {
				update.WinnersPerDraw = &n
			}
		case domain.ControlAnimationMode:
			s, ok := raw.(string)
			if !ok {
				return update, fmt.Errorf(ErrMsgControlBadValue, key)
			}
			mode := domain.AnimationMode(s)
			update.AnimationMode = &mode
		default:
			return update, fmt.Errorf(ErrMsgControlUnknownField, key)
		}
	}
	return update, nil
}

// asInt accepts JSON numbers that hold a whole value
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
