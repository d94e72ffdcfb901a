package sse

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// SnapshotFunc returns the current lottery state for a newly connected client
type SnapshotFunc func(ctx context.Context) (*domain.LotteryState, error)

// Handler returns an HTTP handler for SSE connections. When snapshot is not
// nil a "state" frame follows the "connected" frame so the display can
// reconcile without waiting for the first poll.
func Handler(hub *Hub, snapshot SnapshotFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			eventTypes = strings.Split(filterParam, ",")
		}

		client := hub.Register(eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(evt Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				slog.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		connected, _ := NewEvent(EventTypeConnected, ConnectedPayload{ClientID: client.ID, Filters: eventTypes})
		if !write(connected) {
			return
		}

		if snapshot != nil && client.Wants(EventTypeState) {
			snapCtx, cancel := context.WithTimeout(r.Context(), SnapshotTimeout)
			state, err := snapshot(snapCtx)
			cancel()
			if err != nil {
				slog.Warn(LogMsgSnapshotFailed, "client_id", client.ID, "error", err)
			} else if evt, err := NewEvent(EventTypeState, state); err == nil {
				if !write(evt) {
					return
				}
			}
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}
				if !write(event) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix(), Payload: []byte("null")}) {
					return
				}
			}
		}
	}
}
