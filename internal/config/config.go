package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string
	APIKey      string

	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	DBMaxConns      int
	DBMinConns      int
	DBAutoMigrate   bool
	DBChangeFeed    bool
	TrustedProxies  []string
	TrackCacheTTL   time.Duration
	TrackCacheSize  int
	NotifyWorkers   int
	DiscordToken    string
	NotifyTimeout   time.Duration
	EventMaxRetries int
	EventRetryDelay time.Duration
	EventDeadLetter string

	DrawLockTimeout       time.Duration
	EventLogRetentionDays int
	CleanupInterval       time.Duration
	InstanceName          string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:          getEnv("LOG_DIR", DefaultLogDir),
		Environment:     getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName:     getEnv("SERVICE_NAME", DefaultServiceName),
		Version:         getEnv("VERSION", DefaultVersion),
		APIKey:          getEnv("API_KEY", ""),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:      getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMinConns:      getEnvAsInt("DB_MIN_CONNS", DefaultDBMinConns),
		DBAutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", true),
		DBChangeFeed:    getEnvAsBool("LOTTERY_DB_CHANGE_FEED", false),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		TrackCacheTTL:   getEnvAsDuration("TRACK_CACHE_TTL", 5*time.Minute),
		TrackCacheSize:  getEnvAsInt("TRACK_CACHE_SIZE", DefaultTrackCacheSize),
		NotifyWorkers:   getEnvAsInt("NOTIFY_WORKERS", DefaultNotifyWorkers),
		DiscordToken:    getEnv("DISCORD_TOKEN", ""),
		NotifyTimeout:   getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", 2*time.Second),
		EventDeadLetter: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),

		DrawLockTimeout:       getEnvAsDuration("DRAW_LOCK_TIMEOUT", DefaultDrawLockTimeout),
		EventLogRetentionDays: getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		CleanupInterval:       getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultCleanupInterval),
		InstanceName:          getEnv("INSTANCE_NAME", ""),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", cfg.DBMinConns, cfg.DBMaxConns)
	}
	if cfg.NotifyWorkers < 1 {
		cfg.NotifyWorkers = 1
	}
	if cfg.DrawLockTimeout <= 0 {
		return nil, fmt.Errorf("DRAW_LOCK_TIMEOUT must be positive, got %s", cfg.DrawLockTimeout)
	}
	if cfg.InstanceName == "" {
		host, _ := os.Hostname()
		cfg.InstanceName = fmt.Sprintf("%s-%s-%d", cfg.ServiceName, host, os.Getpid())
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// NotificationsConfigured reports whether a messaging platform token is present.
func (c *Config) NotificationsConfigured() bool {
	return c.DiscordToken != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvAsList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
