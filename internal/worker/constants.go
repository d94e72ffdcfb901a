package worker

import "time"

// ============================================================================
// Worker Pool
// ============================================================================

// DefaultJobTimeout bounds a single job when the pool is created without one
const DefaultJobTimeout = 30 * time.Second

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// Log messages for deadline timers
const (
	LogMsgWorkerShuttingDown     = "Shutting down worker"
	LogMsgWorkerCancelledPending = "Cancelled pending worker job"
	LogMsgWorkerShutdownComplete = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout  = "Worker shutdown timed out"
)

// ============================================================================
// Draw Lock Watchdog
// ============================================================================

// watchdogName is used in shutdown logs
const watchdogName = "draw lock watchdog"

// Log messages for the draw lock watchdog
const (
	LogMsgWatchdogArmed          = "Draw lock watchdog armed"
	LogMsgWatchdogDisarmed       = "Draw lock watchdog disarmed"
	LogMsgWatchdogFired          = "Draw lock watchdog fired"
	LogMsgWatchdogReleaseFailed  = "Draw lock watchdog failed to release lock"
	LogMsgWatchdogStartupFailed  = "Draw lock watchdog failed to read state on startup"
	LogMsgWatchdogPayloadInvalid = "Draw lock watchdog received invalid state payload"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
