package lottery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

func participants(counts ...int) []domain.EligibleParticipant {
	out := make([]domain.EligibleParticipant, len(counts))
	for i, c := range counts {
		out[i] = domain.EligibleParticipant{
			UserID:           fmt.Sprintf("user-%d", i),
			DisplayName:      fmt.Sprintf("Guest %d", i),
			PublicPhotoCount: c,
		}
	}
	return out
}

func TestSelectWinners_WeightConformance(t *testing.T) {
	// counts [1,3,5,2] with cap 3 give weights [1,3,3,2], W = 9
	pool := participants(1, 3, 5, 2)
	rng := utils.NewSeededRNG(20240601)

	const trials = 9000
	hits := make(map[string]int)
	for i := 0; i < trials; i++ {
		w := SelectWinners(pool, 3, 1, rng)
		require.Len(t, w, 1)
		hits[w[0].UserID]++
	}

	expected := []float64{1.0 / 9, 3.0 / 9, 3.0 / 9, 2.0 / 9}
	for i, p := range pool {
		got := float64(hits[p.UserID]) / trials
		assert.InDelta(t, expected[i], got, 0.025, "participant %d", i)
	}
}

func TestSelectWinners_EqualProbabilityWhenCapIsZero(t *testing.T) {
	pool := participants(1, 10, 100)
	rng := utils.NewSeededRNG(7)

	const trials = 9000
	hits := make(map[string]int)
	for i := 0; i < trials; i++ {
		hits[SelectWinners(pool, 0, 1, rng)[0].UserID]++
	}

	for _, p := range pool {
		assert.InDelta(t, 1.0/3, float64(hits[p.UserID])/trials, 0.025, p.UserID)
	}
}

func TestSelectWinners_WithoutReplacement(t *testing.T) {
	pool := participants(5, 5, 5, 5, 5)
	rng := utils.NewSeededRNG(99)

	for i := 0; i < 200; i++ {
		winners := SelectWinners(pool, 5, 4, rng)
		require.Len(t, winners, 4)
		seen := make(map[string]bool)
		for _, w := range winners {
			assert.False(t, seen[w.UserID], "duplicate winner %s", w.UserID)
			seen[w.UserID] = true
		}
	}
}

func TestSelectWinners_CountExceedsPool(t *testing.T) {
	pool := participants(2, 1)
	winners := SelectWinners(pool, 3, 5, utils.NewSeededRNG(1))
	assert.Len(t, winners, 2)
	assert.ElementsMatch(t, pool, winners)
}

func TestSelectWinners_EmptyAndZero(t *testing.T) {
	rng := utils.NewSeededRNG(1)
	assert.Empty(t, SelectWinners(nil, 3, 1, rng))
	assert.Empty(t, SelectWinners(participants(1), 3, 0, rng))
}

func TestSelectWinners_DoesNotMutatePool(t *testing.T) {
	pool := participants(1, 2, 3)
	before := append([]domain.EligibleParticipant(nil), pool...)
	SelectWinners(pool, 3, 3, utils.NewSeededRNG(3))
	assert.Equal(t, before, pool)
}

func TestPickPhoto(t *testing.T) {
	_, ok := PickPhoto(nil, utils.NewSeededRNG(1))
	assert.False(t, ok)

	photos := []domain.Photo{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	rng := utils.NewSeededRNG(5)
	seen := make(map[string]int)
	for i := 0; i < 3000; i++ {
		p, ok := PickPhoto(photos, rng)
		require.True(t, ok)
		seen[p.ID]++
	}
	for _, p := range photos {
		assert.InDelta(t, 1000, seen[p.ID], 150, p.ID)
	}
}
