package config

import "time"

// Defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultServiceName     = "wedding-lottery"
	DefaultVersion         = "dev"
	DefaultLogDir          = "logs"
	DefaultDBName          = "wedding"
	DefaultDBMaxConns      = 10
	DefaultDBMinConns      = 2
	DefaultEventMaxRetries = 5
	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"
	DefaultNotifyWorkers   = 2
	DefaultTrackCacheSize  = 4

	DefaultDrawLockTimeout       = 2 * time.Minute
	DefaultEventLogRetentionDays = 30
	DefaultCleanupInterval       = 6 * time.Hour
)

// Insecure example values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Display client defaults
const (
	DefaultDisplayAPIURL         = "http://localhost:8080"
	DefaultDisplayPollInterval   = 5 * time.Second
	DefaultDisplayBudget         = 10 * time.Second
	DefaultDisplayFlightDuration = 2500 * time.Millisecond
	DefaultDisplayFrameInterval  = time.Second / 60
	DefaultDisplayWidth          = 1920
	DefaultDisplayHeight         = 1080
)
