// Command display runs one lottery screen against the API: it listens on the
// event stream, polls as a fallback and plays the draw animations.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/WeddingBot_Go/internal/config"
	"github.com/osse101/WeddingBot_Go/internal/display"
	"github.com/osse101/WeddingBot_Go/internal/logger"
	"github.com/osse101/WeddingBot_Go/internal/sse"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

const serviceName = "weddingbot-display"

// frameLogEvery keeps the log readable at 60 frames a second
const frameLogEvery = 120

func main() {
	if err := run(); err != nil {
		slog.Error("Display failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDisplay()
	if err != nil {
		return err
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, serviceName, "", "", false))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rng := utils.DefaultRNG()
	if cfg.Seed != 0 {
		rng = utils.NewSeededRNG(cfg.Seed)
		slog.Info("Using seeded animation RNG", "seed", cfg.Seed)
	}

	stream := sse.NewStreamClient(cfg.APIURL, cfg.APIKey, []string{
		sse.EventTypeState,
		sse.EventTypeNewWinner,
		sse.EventTypeHistory,
		sse.EventTypeError,
	})
	api := display.NewClient(cfg.APIURL, cfg.APIKey)
	renderer := &display.LogRenderer{FrameLogEvery: frameLogEvery}

	screen := display.NewScreen(*cfg, api, stream, renderer, rng)
	return screen.Run(ctx)
}
