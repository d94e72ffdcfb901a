package postgres

import "time"

// ChangeFeedChannel is the NOTIFY channel written by the lottery triggers
const ChangeFeedChannel = "lottery_changes"

// Change listener reconnect backoff
const (
	ListenerMinBackoff = 500 * time.Millisecond
	ListenerMaxBackoff = 30 * time.Second
)

// Error context
const (
	ErrContextBeginTx        = "failed to begin transaction"
	ErrContextCommitTx       = "failed to commit transaction"
	ErrContextGetState       = "failed to get lottery state"
	ErrContextUpdateState    = "failed to update lottery state"
	ErrContextListHistory    = "failed to list history"
	ErrContextGetHistory     = "failed to get history record"
	ErrContextDeleteHistory  = "failed to delete history record"
	ErrContextClearHistory   = "failed to clear history"
	ErrContextInsertHistory  = "failed to insert history"
	ErrContextListPhotos     = "failed to list photos"
	ErrContextUpsertPhoto    = "failed to upsert photo"
	ErrContextGetTrack       = "failed to get track config"
	ErrContextSaveTrack      = "failed to save track config"
	ErrContextMarshalTrack   = "failed to marshal track config"
	ErrContextUnmarshalTrack = "failed to unmarshal track config"
)

// Log messages
const (
	LogMsgListenerStarted     = "Change feed listener started"
	LogMsgListenerStopped     = "Change feed listener stopped"
	LogMsgListenerDisconnect  = "Change feed listener disconnected, reconnecting"
	LogMsgListenerBadPayload  = "Ignoring malformed change notification"
	LogMsgFailedToRollback    = "Failed to rollback transaction"
	LogMsgFailedToUnlisten    = "Failed to unlisten before releasing connection"
)
