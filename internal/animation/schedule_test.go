package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

func allSchedulers() map[domain.AnimationMode]Scheduler {
	out := make(map[domain.AnimationMode]Scheduler)
	for _, mode := range domain.AnimationModes {
		s, err := ForMode(mode)
		if err != nil {
			panic(err)
		}
		out[mode] = s
	}
	return out
}

// assertWellFormed checks the ordering and convergence guarantees shared by every mode
func assertWellFormed(t *testing.T, steps []Step, winnerIndex, size int, budget time.Duration) {
	t.Helper()
	require.NotEmpty(t, steps)

	last := steps[len(steps)-1]
	assert.Equal(t, winnerIndex, last.Index, "must land on the winner")
	assert.Equal(t, budget, last.At, "must end exactly at the budget")

	for i, s := range steps {
		assert.True(t, s.Index >= 0 && s.Index < size, "index %d out of range at step %d", s.Index, i)
		if i == 0 {
			assert.Positive(t, s.At)
			continue
		}
		assert.Greater(t, s.At, steps[i-1].At, "offsets must strictly increase at step %d", i)
		if i >= 2 {
			gap := s.At - steps[i-1].At
			prevGap := steps[i-1].At - steps[i-2].At
			assert.GreaterOrEqual(t, gap, prevGap, "intervals must not shrink at step %d", i)
		}
		if size > 1 && i < len(steps)-2 {
			assert.NotEqual(t, steps[i-1].Index, s.Index, "index repeated at step %d", i)
		}
	}
}

func TestSchedulers_ConvergeForAllSizes(t *testing.T) {
	rng := utils.NewSeededRNG(7)

	for mode, sched := range allSchedulers() {
		t.Run(string(mode), func(t *testing.T) {
			for size := 1; size <= 500; size++ {
				for _, k := range []int{0, size / 2, size - 1, rng.IntN(size)} {
					steps, err := sched.Schedule(k, size, DefaultBudget, rng)
					require.NoError(t, err)
					assertWellFormed(t, steps, k, size, DefaultBudget)
				}
			}
		})
	}
}

func TestSchedulers_WinnerSevenOfTwenty(t *testing.T) {
	for mode, sched := range allSchedulers() {
		t.Run(string(mode), func(t *testing.T) {
			steps, err := sched.Schedule(7, 20, 10000*time.Millisecond, utils.NewSeededRNG(42))
			require.NoError(t, err)

			last := steps[len(steps)-1]
			assert.Equal(t, 7, last.Index)
			assert.InDelta(t, 10000, last.At.Milliseconds(), 500)
		})
	}
}

func TestSchedulers_Decelerate(t *testing.T) {
	for mode, sched := range allSchedulers() {
		t.Run(string(mode), func(t *testing.T) {
			steps, err := sched.Schedule(3, 50, DefaultBudget, utils.NewSeededRNG(1))
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(steps), 4)

			first := steps[1].At - steps[0].At
			lastGap := steps[len(steps)-1].At - steps[len(steps)-2].At
			assert.Greater(t, lastGap, first*2)
		})
	}
}

func TestSchedulers_SingleItem(t *testing.T) {
	for mode, sched := range allSchedulers() {
		t.Run(string(mode), func(t *testing.T) {
			steps, err := sched.Schedule(0, 1, time.Second, utils.NewSeededRNG(1))
			require.NoError(t, err)
			require.Len(t, steps, 1)
			assert.Equal(t, Step{Index: 0, At: time.Second}, steps[0])
		})
	}
}

func TestSchedulers_InvalidInput(t *testing.T) {
	sched := Shuffle{}
	rng := utils.NewSeededRNG(1)

	tests := []struct {
		name   string
		winner int
		size   int
		budget time.Duration
	}{
		{"empty collection", 0, 0, time.Second},
		{"negative index", -1, 5, time.Second},
		{"index past end", 5, 5, time.Second},
		{"zero budget", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sched.Schedule(tt.winner, tt.size, tt.budget, rng)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSchedulers_ShortBudgetStillConverges(t *testing.T) {
	for mode, sched := range allSchedulers() {
		t.Run(string(mode), func(t *testing.T) {
			steps, err := sched.Schedule(4, 9, 100*time.Nanosecond, utils.NewSeededRNG(3))
			require.NoError(t, err)
			assertWellFormed(t, steps, 4, 9, 100*time.Nanosecond)
		})
	}
}

func TestForMode_Unknown(t *testing.T) {
	_, err := ForMode("carousel")
	assert.ErrorIs(t, err, domain.ErrInvalidAnimationMode)
}

func TestWaterfall_IsSequential(t *testing.T) {
	steps, err := Waterfall{}.Schedule(2, 10, DefaultBudget, nil)
	require.NoError(t, err)

	for i := 1; i < len(steps); i++ {
		assert.Equal(t, (steps[i-1].Index+1)%10, steps[i].Index)
	}
}

func TestMachine_AgitationAvoidsWinner(t *testing.T) {
	steps, err := Machine{}.Schedule(5, 12, DefaultBudget, utils.NewSeededRNG(9))
	require.NoError(t, err)
	require.Len(t, steps, MachineSteps)

	for _, s := range steps[:len(steps)-2] {
		assert.NotEqual(t, 5, s.Index)
	}
	assert.Equal(t, 5, steps[len(steps)-2].Index)
	assert.Equal(t, 5, steps[len(steps)-1].Index)
}

func TestTournament_WinnerInEveryRound(t *testing.T) {
	steps, err := Tournament{}.Schedule(11, 40, DefaultBudget, utils.NewSeededRNG(5))
	require.NoError(t, err)

	// 16 + 8 + 4 + 2 highlights at most, winner shown once per round
	assert.LessOrEqual(t, len(steps), 30)
	count := 0
	distinct := make(map[int]struct{})
	for _, s := range steps {
		distinct[s.Index] = struct{}{}
		if s.Index == 11 {
			count++
		}
	}
	assert.GreaterOrEqual(t, count, 4)
	assert.LessOrEqual(t, len(distinct), TournamentBracketCap)
}

func TestShuffle_Deterministic(t *testing.T) {
	a, err := Shuffle{}.Schedule(3, 30, DefaultBudget, utils.NewSeededRNG(99))
	require.NoError(t, err)
	b, err := Shuffle{}.Schedule(3, 30, DefaultBudget, utils.NewSeededRNG(99))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
