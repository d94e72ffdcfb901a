package lottery

import "time"

// ============================================================================
// Track Cache
// ============================================================================

// CacheSchemaVersion is bumped when the cached track structure changes so old
// entries are dropped automatically
const CacheSchemaVersion = "1.0"

const trackCacheKey = "track"

// Default cache sizing when none is configured
const (
	DefaultTrackCacheSize = 4
	DefaultTrackCacheTTL  = 5 * time.Minute
)

// ============================================================================
// Track Validation
// ============================================================================

const (
	// MaxTrackNodes bounds the number of intermediate spline nodes
	MaxTrackNodes = 32

	// Track points are percentages of the design canvas
	TrackCoordMin = 0.0
	TrackCoordMax = 100.0
)

// ============================================================================
// Draw Lock
// ============================================================================

// LockReleaseTimeout bounds the detached release of the draw lock after a failure
const LockReleaseTimeout = 5 * time.Second

// Error codes published on lottery.error events
const (
	ErrorCodeDrawFailed  = "draw_failed"
	ErrorCodeLockExpired = "lock_expired"
)

// ============================================================================
// Error Context Messages
// ============================================================================

const (
	ErrContextFailedToGetState       = "failed to get lottery state"
	ErrContextFailedToUpdateState    = "failed to update lottery state"
	ErrContextFailedToResetState     = "failed to reset lottery state"
	ErrContextFailedToLoadPhotos     = "failed to load public photos"
	ErrContextFailedToLoadExclusions = "failed to load exclusion set"
	ErrContextFailedToAcquireLock    = "failed to acquire draw lock"
	ErrContextFailedToBeginTx        = "failed to begin draw transaction"
	ErrContextFailedToInsertHistory  = "failed to insert history"
	ErrContextFailedToCompleteDraw   = "failed to complete draw"
	ErrContextFailedToCommit         = "failed to commit draw"
	ErrContextFailedToListHistory    = "failed to list history"
	ErrContextFailedToDeleteHistory  = "failed to delete history"
	ErrContextFailedToClearHistory   = "failed to clear history"
	ErrContextFailedToGetTrack       = "failed to get track config"
	ErrContextFailedToSaveTrack      = "failed to save track config"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgDrawCalled          = "Draw called"
	LogMsgDrawRejected        = "Draw rejected"
	LogMsgDrawCompleted       = "Draw completed"
	LogMsgDrawFailed          = "Draw failed after acquiring lock"
	LogMsgLockReleaseFailed   = "Failed to release draw lock"
	LogMsgLockReleased        = "Draw lock released after failure"
	LogMsgControlUpdated      = "Lottery control updated"
	LogMsgStateReset          = "Lottery state reset"
	LogMsgHistoryDeleted      = "History record deleted"
	LogMsgHistoryCleared      = "History cleared"
	LogMsgTrackUpdated        = "Track config updated"
	LogMsgPublishFailed       = "Failed to publish lottery event"
	LogMsgWinnerHasNoPhoto    = "Winner has no public photo at draw time"
	LogMsgExclusionsApplied   = "Machine mode exclusions applied"
	LogMsgTrackCacheHit       = "Track config cache hit"
	LogMsgTrackDefaultApplied = "No track config stored, using default"
	LogMsgStaleLockReleased   = "Stale draw lock released"
	LogMsgChangeReceived      = "Change feed row received"
	LogMsgChangeLookupFailed  = "Failed to load changed row"
)
