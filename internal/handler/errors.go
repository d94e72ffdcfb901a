package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid 'limit' (must be 1-%d)"
	ErrMsgInvalidHistoryID  = "Invalid history record id"
	ErrMsgInvalidSince      = "Invalid 'since' timestamp format (use RFC3339)"
	ErrMsgInvalidUntil      = "Invalid 'until' timestamp format (use RFC3339)"

	// Control request error messages
	ErrMsgControlNoFields     = "Provide either field/value or updates"
	ErrMsgControlBothForms    = "Provide field/value or updates, not both"
	ErrMsgControlUnknownField = "Unknown control field: %s"
	ErrMsgControlBadValue     = "Invalid value for %s"

	// Operation failures
	ErrMsgGetStateFailed    = "Failed to load lottery state"
	ErrMsgGetEventsFailed   = "Failed to retrieve events"
	ErrMsgGatherMetrics     = "Failed to gather metrics"
	ErrMsgGetEligibleFailed = "Failed to load eligible participants"
)

// Success messages
const (
	MsgHistoryRecordDeleted = "History record deleted"
)

// Query parameters and limits
const (
	QueryParamLimit = "limit"
	QueryParamID    = "id"
	QueryParamAll   = "all"

	DefaultEventsLimit = 50
	MaxEventsLimit     = 1000
)

// Log messages
const (
	LogMsgControlRejected = "Rejected control update"
)

// Operation names used in logs
const (
	OpUpdateControl = "Update control"
	OpReset         = "Reset lottery"
	OpDraw          = "Draw"
	OpUpdateTrack   = "Update track"
)
