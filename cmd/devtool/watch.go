package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/sse"
)

type WatchCommand struct{}

func (c *WatchCommand) Name() string {
	return "watch"
}

func (c *WatchCommand) Description() string {
	return "Print lottery push events as a display screen receives them"
}

func (c *WatchCommand) Run(args []string) error {
	apiURL := getEnv("API_URL", defaultAPIURL)
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return fmt.Errorf("API_KEY is required")
	}

	PrintHeader(fmt.Sprintf("Watching %s (Ctrl+C to stop)", apiURL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := sse.NewStreamClient(apiURL, apiKey, []string{
		sse.EventTypeState,
		sse.EventTypeNewWinner,
		sse.EventTypeHistory,
		sse.EventTypeError,
	})

	client.OnStatus(func(connected bool, err error) {
		if connected {
			PrintSuccess("Connected")
			return
		}
		PrintWarning("Disconnected: %v", err)
	})

	client.OnEvent(sse.EventTypeState, func(evt sse.Event) error {
		var state domain.LotteryState
		if err := json.Unmarshal(evt.Payload, &state); err != nil {
			return err
		}
		PrintState(state)
		return nil
	})

	client.OnEvent(sse.EventTypeNewWinner, func(evt sse.Event) error {
		var payload sse.NewWinnerPayload
		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			return err
		}
		PrintDraw(payload.DrawID, payload.ParticipantsCount, payload.Winners)
		return nil
	})

	client.OnEvent(sse.EventTypeHistory, func(evt sse.Event) error {
		var payload sse.HistoryPayload
		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			return err
		}
		PrintHistoryChange(payload.DeletedID, payload.Cleared, payload.Removed)
		return nil
	})

	client.OnEvent(sse.EventTypeError, func(evt sse.Event) error {
		var payload sse.ErrorPayload
		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			return err
		}
		PrintError("server error %s: %s", payload.Code, payload.Message)
		return nil
	})

	client.Start(ctx)
	<-ctx.Done()
	client.Stop()
	return nil
}
