package lottery

import (
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// SelectWinners draws up to count participants without replacement.
//
// Each pick draws r uniformly in [0, W) where W is the total weight of the
// remaining pool and returns the first participant whose cumulative weight
// exceeds r. A cap of zero switches to an equal-probability pick. When count
// exceeds the pool everyone remaining is returned.
func SelectWinners(pool []domain.EligibleParticipant, maxPhotos, count int, rng utils.RandomSource) []domain.EligibleParticipant {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	remaining := make([]domain.EligibleParticipant, len(pool))
	copy(remaining, pool)

	n := min(count, len(remaining))
	winners := make([]domain.EligibleParticipant, 0, n)
	for len(winners) < n {
		idx := pickIndex(remaining, maxPhotos, rng)
		winners = append(winners, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return winners
}

func pickIndex(pool []domain.EligibleParticipant, maxPhotos int, rng utils.RandomSource) int {
	if maxPhotos == 0 {
		return rng.IntN(len(pool))
	}

	total := 0
	for _, p := range pool {
		total += p.Weight(maxPhotos)
	}

	r := rng.Float64() * float64(total)
	cumulative := 0
	for i, p := range pool {
		cumulative += p.Weight(maxPhotos)
		if float64(cumulative) > r {
			return i
		}
	}
	// r is strictly below total, only float rounding lands here
	return len(pool) - 1
}

// PickPhoto returns one photo uniformly at random, or false when there are none
func PickPhoto(photos []domain.Photo, rng utils.RandomSource) (domain.Photo, bool) {
	if len(photos) == 0 {
		return domain.Photo{}, false
	}
	return photos[rng.IntN(len(photos))], true
}
