package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Encoded bodies are staged in pooled buffers so a failed encode never
// writes half a document
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Headers are already sent, so encoding failures can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgDrawInProgressError = "A draw is already in progress. Wait for it to finish."
	ErrMsgNoEligibleError     = "No eligible participants. Guests need at least one public photo and no previous win."
	ErrMsgHistoryNotFoundErr  = "History record not found"
	ErrMsgStateNotFoundError  = "Lottery state has not been provisioned"
	ErrMsgInvalidModeError    = "Unknown animation mode"
	ErrMsgInvalidTrackError   = "Invalid track configuration"
	ErrMsgInvalidInputError   = "Invalid input"
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage converts domain errors to HTTP status codes and
// messages users can act upon. Validation errors keep their detail since it
// names the offending field.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrDrawAlreadyInProgress):
		return http.StatusConflict, ErrMsgDrawInProgressError
	case errors.Is(err, domain.ErrNoEligibleParticipants):
		return http.StatusUnprocessableEntity, ErrMsgNoEligibleError
	case errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound, ErrMsgHistoryNotFoundErr
	case errors.Is(err, domain.ErrStateNotFound):
		return http.StatusNotFound, ErrMsgStateNotFoundError
	case errors.Is(err, domain.ErrInvalidAnimationMode):
		return http.StatusBadRequest, ErrMsgInvalidModeError
	case errors.Is(err, domain.ErrInvalidTrackConfig):
		return http.StatusBadRequest, detailOr(err, ErrMsgInvalidTrackError)
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, detailOr(err, ErrMsgInvalidInputError)
	case errors.Is(err, domain.ErrPersistenceFailure):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// detailOr returns the error text when it is short enough to show, else fallback
func detailOr(err error, fallback string) string {
	msg := err.Error()
	if msg == "" || len(msg) > 200 {
		return fallback
	}
	return msg
}
