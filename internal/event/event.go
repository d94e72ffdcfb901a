package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	ID       string      `json:"id"`
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Lottery event types
const (
	LotteryStateChanged   Type = domain.EventTypeLotteryStateChanged
	LotteryNewWinner      Type = domain.EventTypeLotteryNewWinner
	LotteryHistoryChanged Type = domain.EventTypeLotteryHistoryChanged
	LotteryError          Type = domain.EventTypeLotteryError
	WinnerNotified        Type = domain.EventTypeWinnerNotified
)

// Metadata keys
const (
	MetadataKeySource  = "source"
	MetadataKeyAdminID = "admin_id"
)

// Event sources. Events republished from the database change feed are tagged so
// subscribers can tell them from in-process mutations.
const (
	SourceService    = "service"
	SourceChangeFeed = "change_feed"
)

// Typed event payloads for type safety

// StatePayloadV1 carries the full state after a mutation
type StatePayloadV1 struct {
	State domain.LotteryState `json:"state"`
}

// NewWinnerPayloadV1 carries every winner of one accepted draw
type NewWinnerPayloadV1 struct {
	DrawID            uuid.UUID              `json:"drawId"`
	Winners           []domain.HistoryRecord `json:"winners"`
	ParticipantsCount int                    `json:"participantsCount"`
	NotifyWinner      bool                   `json:"notifyWinner"`
}

// HistoryChangedPayloadV1 describes a purge of history records
type HistoryChangedPayloadV1 struct {
	DeletedID *uuid.UUID `json:"deletedId,omitempty"`
	Cleared   bool       `json:"cleared"`
	Removed   int64      `json:"removed"`
}

// ErrorPayloadV1 reports a draw that failed after being accepted
type ErrorPayloadV1 struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	AdminID   string `json:"adminId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// WinnerNotifiedPayloadV1 records the outcome of one winner notification
type WinnerNotifiedPayloadV1 struct {
	DrawID       uuid.UUID `json:"drawId"`
	WinnerUserID string    `json:"winnerUserId"`
	Delivered    bool      `json:"delivered"`
	Error        string    `json:"error,omitempty"`
}

func newEvent(t Type, payload interface{}, metadata Metadata) Event {
	return Event{
		ID:       uuid.NewString(),
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: metadata,
	}
}

// NewStateChangedEvent creates a state-changed event
func NewStateChangedEvent(state domain.LotteryState, source string) Event {
	return newEvent(LotteryStateChanged, StatePayloadV1{State: state}, Metadata{MetadataKeySource: source})
}

// NewWinnerEvent creates a new-winner event for an accepted draw
func NewWinnerEvent(result domain.DrawResult, notify bool, adminID string) Event {
	return newEvent(LotteryNewWinner, NewWinnerPayloadV1{
		DrawID:            result.DrawID,
		Winners:           result.Winners,
		ParticipantsCount: result.ParticipantsCount,
		NotifyWinner:      notify,
	}, Metadata{MetadataKeySource: SourceService, MetadataKeyAdminID: adminID})
}

// NewHistoryChangedEvent creates a history purge event
func NewHistoryChangedEvent(deletedID *uuid.UUID, cleared bool, removed int64) Event {
	return newEvent(LotteryHistoryChanged, HistoryChangedPayloadV1{
		DeletedID: deletedID,
		Cleared:   cleared,
		Removed:   removed,
	}, Metadata{MetadataKeySource: SourceService})
}

// NewErrorEvent creates a lottery error event
func NewErrorEvent(code, message, adminID string) Event {
	return newEvent(LotteryError, ErrorPayloadV1{
		Code:      code,
		Message:   message,
		AdminID:   adminID,
		Timestamp: time.Now().Unix(),
	}, Metadata{MetadataKeySource: SourceService})
}

// NewWinnerNotifiedEvent creates a notification outcome event
func NewWinnerNotifiedEvent(drawID uuid.UUID, userID string, err error) Event {
	p := WinnerNotifiedPayloadV1{DrawID: drawID, WinnerUserID: userID, Delivered: err == nil}
	if err != nil {
		p.Error = err.Error()
	}
	return newEvent(WinnerNotified, p, nil)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
