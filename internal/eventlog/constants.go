package eventlog

import "github.com/osse101/WeddingBot_Go/internal/event"

// LoggedEventTypes are the lottery events written to the audit log
var LoggedEventTypes = []event.Type{
	event.LotteryStateChanged,
	event.LotteryNewWinner,
	event.LotteryHistoryChanged,
	event.LotteryError,
	event.WinnerNotified,
}

// JSON payload field keys
const (
	PayloadKeyAdminID = "adminId"
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload could not be flattened, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
)
