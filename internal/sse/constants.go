package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// SnapshotTimeout bounds the state lookup sent to a newly connected client
	SnapshotTimeout = 5 * time.Second
)

// Frame types pushed to display screens
const (
	EventTypeState     = "state"
	EventTypeNewWinner = "newWinner"
	EventTypeError     = "error"
	EventTypeHistory   = "history"

	// EventTypeConnected is the first frame on every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters the stream to a comma separated list of frame types
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSnapshotFailed     = "Failed to load state snapshot for SSE client"
	LogMsgInvalidPayload     = "Invalid lottery event payload for SSE"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
)

// Stream client reconnect settings
const (
	StreamInitialBackoff    = 1 * time.Second
	StreamMaxBackoff        = 30 * time.Second
	StreamBackoffMultiplier = 2.0

	// StreamBufferSize bounds one data line read from the stream
	StreamBufferSize = 64 * 1024

	// StreamPath is the push endpoint relative to the API base URL
	StreamPath = "/api/v1/events"

	// HeaderAPIKey authenticates stream and API requests
	HeaderAPIKey = "X-API-Key"
)

// Stream client log messages
const (
	LogMsgStreamConnected     = "SSE stream connected"
	LogMsgStreamStopped       = "SSE stream stopped"
	LogMsgStreamFailed        = "SSE stream connection failed"
	LogMsgStreamParseError    = "Failed to parse SSE frame"
	LogMsgStreamHandlerError  = "SSE frame handler error"
	ErrMsgStreamClosed        = "stream closed unexpectedly"
	ErrMsgStreamUnexpectedRes = "unexpected status"
)
