package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/database/postgres"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// Repositories holds the postgres implementations used by the services
type Repositories struct {
	Lottery  *postgres.LotteryRepository
	Photo    repository.Photo
	Track    repository.Track
	EventLog repository.EventLog
}

// InitializeRepositories creates all repository implementations over one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Lottery:  postgres.NewLotteryRepository(dbPool),
		Photo:    postgres.NewPhotoRepository(dbPool),
		Track:    postgres.NewTrackRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
