package sse

import (
	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// StatePayload is the payload of a "state" frame
type StatePayload = domain.LotteryState

// NewWinnerPayload is the payload of a "newWinner" frame
type NewWinnerPayload struct {
	DrawID            uuid.UUID              `json:"drawId"`
	Winners           []domain.HistoryRecord `json:"winners"`
	ParticipantsCount int                    `json:"participantsCount"`
}

// HistoryPayload is the payload of a "history" frame, sent when records are
// purged. Screens reload the exclusion set when they see one.
type HistoryPayload struct {
	DeletedID *uuid.UUID `json:"deletedId,omitempty"`
	Cleared   bool       `json:"cleared"`
	Removed   int64      `json:"removed"`
}

// ErrorPayload is the payload of an "error" frame
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConnectedPayload is the payload of the first frame on a stream
type ConnectedPayload struct {
	ClientID string   `json:"clientId"`
	Filters  []string `json:"filters,omitempty"`
}
