package display

import "time"

// API paths relative to the base URL
const (
	apiPrefix      = "/api/v1"
	pathState      = "/lottery/state"
	pathHistory    = "/lottery/history"
	pathPhotos     = "/lottery/photos"
	pathExclusions = "/lottery/exclusions"
	pathTrack      = "/lottery/track"
)

const (
	clientTimeout = 10 * time.Second

	// snapshotHistoryMin is the fewest history records fetched per poll
	snapshotHistoryMin = 1

	// eventBuffer bounds queued inputs to the screen loop
	eventBuffer = 64
)

// Log messages
const (
	LogMsgScreenStarted     = "Display screen started"
	LogMsgScreenStopped     = "Display screen stopped"
	LogMsgPollFailed        = "Display poll failed, keeping current view"
	LogMsgPushDown          = "Push channel unavailable, relying on polling"
	LogMsgPushUp            = "Push channel connected"
	LogMsgFrameDecodeFailed = "Failed to decode push frame"
	LogMsgTransition        = "Display transition"
	LogMsgTargetMissing     = "Winner not in displayed collection"
	LogMsgScheduleFailed    = "Failed to schedule animation"
	LogMsgFetchFailed       = "Display fetch failed"
	LogMsgServerError       = "Server reported lottery error"
)

// Error messages
const (
	ErrMsgUnexpectedStatus = "unexpected status"
)
