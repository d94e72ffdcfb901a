package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingWeddingBot  = "Starting WeddingBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgNotifyDispatcherRegistered = "Winner notification dispatcher registered"
	LogMsgWatchdogRegistered         = "Draw lock watchdog registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// =============================================================================
// Background Work
// =============================================================================

const (
	// NotifyQueueSize bounds pending winner DMs; a full queue fails the send
	NotifyQueueSize = 256

	// MaintenanceWorkers runs scheduled jobs such as event log cleanup
	MaintenanceWorkers   = 1
	MaintenanceQueueSize = 8

	// JobNameEventLogCleanup names the scheduled retention job
	JobNameEventLogCleanup = "eventlog_cleanup"
)

const (
	LogMsgNotificationsEnabled       = "Winner notifications enabled"
	LogMsgNotificationsDisabled      = "Winner notifications disabled (no Discord token)"
	LogMsgChangeFeedStarted          = "Database change feed started"
	LogMsgChangeFeedDisabled         = "Database change feed disabled"
	LogMsgCleanupScheduled           = "Event log cleanup scheduled"
	ErrMsgFailedCreateDiscordSession = "failed to create discord session"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgWatchdogShutdownFailed     = "Lock watchdog shutdown failed"

	// ShutdownTimeout bounds the whole graceful shutdown sequence
	ShutdownTimeout = 15 * time.Second
)

// Event publisher defaults used when config leaves them unset
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)
