package handler

import (
	"net/http"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/eventlog"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// AdminEventsHandler serves the lottery audit log
type AdminEventsHandler struct {
	eventlogService eventlog.Service
}

// NewAdminEventsHandler creates a new admin events handler
func NewAdminEventsHandler(eventlogService eventlog.Service) *AdminEventsHandler {
	return &AdminEventsHandler{eventlogService: eventlogService}
}

// EventsResponse contains event log query results
type EventsResponse struct {
	Events []EventLogEntry `json:"events"`
}

// EventLogEntry represents a single audit log entry
type EventLogEntry struct {
	ID        int64       `json:"id"`
	EventType string      `json:"event_type"`
	AdminID   *string     `json:"admin_id,omitempty"`
	Payload   interface{} `json:"payload"`
	Metadata  interface{} `json:"metadata,omitempty"`
	CreatedAt string      `json:"created_at"`
}

// HandleGetEvents lists audit entries, newest first
// @Summary List lottery audit events
// @Tags admin
// @Produce json
// @Param admin_id query string false "Acting admin"
// @Param event_type query string false "Event type, e.g. lottery.new_winner"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Maximum entries (1-1000)"
// @Success 200 {object} EventsResponse
// @Router /api/v1/admin/events [get]
func (h *AdminEventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, ok := GetLimitParam(r, w, DefaultEventsLimit, MaxEventsLimit)
	if !ok {
		return
	}
	filter := repository.EventLogFilter{Limit: limit}

	if adminID := query.Get("admin_id"); adminID != "" {
		filter.UserID = &adminID
	}
	if eventType := query.Get("event_type"); eventType != "" {
		filter.EventType = &eventType
	}
	if sinceStr := query.Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSince)
			return
		}
		filter.Since = &since
	}
	if untilStr := query.Get("until"); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUntil)
			return
		}
		filter.Until = &until
	}

	events, err := h.eventlogService.Recent(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEventsFailed, err)
		return
	}

	entries := make([]EventLogEntry, len(events))
	for i, evt := range events {
		entries[i] = EventLogEntry{
			ID:        evt.ID,
			EventType: evt.EventType,
			AdminID:   evt.UserID,
			Payload:   evt.Payload,
			Metadata:  evt.Metadata,
			CreatedAt: evt.CreatedAt.Format(time.RFC3339),
		}
	}

	respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
}
