package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
)

// DisplayConfig configures a display screen client
type DisplayConfig struct {
	APIURL         string
	APIKey         string
	LogLevel       string
	LogFormat      string
	PollInterval   time.Duration
	Budget         time.Duration
	FlightDuration time.Duration
	FrameInterval  time.Duration
	Width          float64
	Height         float64
	Seed           uint64
}

// LoadDisplay reads display settings from the environment
func LoadDisplay() (*DisplayConfig, error) {
	_ = godotenv.Load()

	cfg := &DisplayConfig{
		APIURL:         getEnv("DISPLAY_API_URL", DefaultDisplayAPIURL),
		APIKey:         getEnv("API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		PollInterval:   getEnvAsDuration("DISPLAY_POLL_INTERVAL", DefaultDisplayPollInterval),
		Budget:         getEnvAsDuration("DISPLAY_ANIMATION_BUDGET", DefaultDisplayBudget),
		FlightDuration: getEnvAsDuration("DISPLAY_FLIGHT_DURATION", DefaultDisplayFlightDuration),
		FrameInterval:  getEnvAsDuration("DISPLAY_FRAME_INTERVAL", DefaultDisplayFrameInterval),
		Width:          float64(getEnvAsInt("DISPLAY_WIDTH", DefaultDisplayWidth)),
		Height:         float64(getEnvAsInt("DISPLAY_HEIGHT", DefaultDisplayHeight)),
		Seed:           uint64(getEnvAsInt("DISPLAY_SEED", 0)),
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY environment variable must be set")
	}
	if cfg.PollInterval <= 0 || cfg.Budget <= 0 || cfg.FrameInterval <= 0 {
		return nil, errors.New("display intervals must be positive")
	}
	return cfg, nil
}
