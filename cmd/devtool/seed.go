package main

import (
	"context"
	"fmt"

	"github.com/osse101/WeddingBot_Go/internal/database/postgres"
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/validation"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed the photo corpus (photos <file.json>, demo <guests>)"
}

// seedPhoto is one entry of a seed file
type seedPhoto struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	OwnerUserID string `json:"ownerUserId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	IsPublic    *bool  `json:"isPublic"`
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: photos, demo")
	}

	var photos []domain.Photo
	switch args[0] {
	case "photos":
		if len(args) < 2 {
			return fmt.Errorf("seed file required")
		}
		loaded, err := loadSeedFile(args[1])
		if err != nil {
			return err
		}
		photos = loaded
	case "demo":
		guests := 12
		if len(args) > 1 {
			if _, err := fmt.Sscanf(args[1], "%d", &guests); err != nil || guests <= 0 {
				return fmt.Errorf("invalid guest count: %s", args[1])
			}
		}
		photos = demoPhotos(guests)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}

	ctx := context.Background()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.NewPhotoRepository(pool).UpsertPhotos(ctx, photos); err != nil {
		return err
	}
	PrintSuccess("Seeded %d photos", len(photos))
	return nil
}

func loadSeedFile(path string) ([]domain.Photo, error) {
	PrintInfo("Reading %s...", path)
	var entries []seedPhoto
	if err := validation.NewSchemaValidator().LoadFile(path, validation.SchemaPhotoSeed, &entries); err != nil {
		return nil, err
	}

	photos := make([]domain.Photo, 0, len(entries))
	for _, e := range entries {
		public := true
		if e.IsPublic != nil {
			public = *e.IsPublic
		}
		photos = append(photos, domain.Photo{
			ID:          e.ID,
			ImageURL:    e.ImageURL,
			OwnerUserID: e.OwnerUserID,
			DisplayName: e.DisplayName,
			AvatarURL:   e.AvatarURL,
			IsPublic:    public,
		})
	}
	return photos, nil
}

// demoPhotos gives guest i i%3+1 photos so weighting is visible
func demoPhotos(guests int) []domain.Photo {
	var photos []domain.Photo
	for g := 0; g < guests; g++ {
		for n := 0; n <= g%3; n++ {
			id := fmt.Sprintf("demo-%02d-%d", g, n)
			photos = append(photos, domain.Photo{
				ID:          id,
				ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", id),
				OwnerUserID: fmt.Sprintf("demo-guest-%02d", g),
				DisplayName: fmt.Sprintf("Guest %d", g+1),
				IsPublic:    true,
			})
		}
	}
	return photos
}
