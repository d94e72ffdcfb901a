package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/WeddingBot_Go/internal/database/postgres"
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/lottery"
	"github.com/osse101/WeddingBot_Go/internal/validation"
)

type TrackCommand struct{}

func (c *TrackCommand) Name() string {
	return "track"
}

func (c *TrackCommand) Description() string {
	return "Export or import the machine track (export [file], import <file>)"
}

func (c *TrackCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: export, import")
	}

	ctx := context.Background()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	repo := postgres.NewTrackRepository(pool)

	switch args[0] {
	case "export":
		track, err := repo.GetTrackConfig(ctx)
		if err != nil {
			return err
		}
		if track == nil {
			PrintWarning("No saved track, exporting the default")
			def := domain.DefaultTrackConfig()
			track = &def
		}
		if len(args) < 2 {
			data, err := json.MarshalIndent(track, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		if err := validation.NewSchemaValidator().SaveFile(args[1], validation.SchemaTrack, track); err != nil {
			return err
		}
		PrintSuccess("Track written to %s", args[1])
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("track file required")
		}
		var track domain.TrackConfig
		if err := validation.NewSchemaValidator().LoadFile(args[1], validation.SchemaTrack, &track); err != nil {
			return err
		}
		if err := lottery.ValidateTrack(track); err != nil {
			return err
		}
		saved, err := repo.SaveTrackConfig(ctx, track)
		if err != nil {
			return err
		}
		PrintSuccess("Track saved with %d nodes (%s)", len(saved.Nodes), saved.UpdatedAt.Format("2006-01-02 15:04:05"))
		PrintInfo("Running servers pick it up when their track cache expires")
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
	return nil
}
