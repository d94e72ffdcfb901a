package animation

import (
	"time"

	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Shuffle is a random walk over the collection that decelerates onto the winner
type Shuffle struct{}

func (Shuffle) Schedule(winnerIndex, size int, budget time.Duration, rng utils.RandomSource) ([]Step, error) {
	if err := validate(winnerIndex, size, budget); err != nil {
		return nil, err
	}
	if size == 1 {
		return withTimes([]int{winnerIndex}, budget), nil
	}

	indices := make([]int, ShuffleSteps)
	prev := -1
	for i := 0; i < ShuffleSteps-1; i++ {
		// The step before the winner avoids it so the landing is visible
		if i == ShuffleSteps-2 {
			indices[i] = pickOther(rng, size, prev, winnerIndex)
		} else {
			indices[i] = pickOther(rng, size, prev)
		}
		prev = indices[i]
	}
	indices[ShuffleSteps-1] = winnerIndex
	return withTimes(indices, budget), nil
}

// Waterfall cascades through consecutive items, starting far enough back
// that the last item it reaches is the winner
type Waterfall struct{}

func (Waterfall) Schedule(winnerIndex, size int, budget time.Duration, rng utils.RandomSource) ([]Step, error) {
	if err := validate(winnerIndex, size, budget); err != nil {
		return nil, err
	}
	if size == 1 {
		return withTimes([]int{winnerIndex}, budget), nil
	}

	// At least one full pass when the collection is small
	n := WaterfallSteps
	if size > n {
		n = size
		if n > 2*WaterfallSteps {
			n = 2 * WaterfallSteps
		}
	}
	start := ((winnerIndex-(n-1))%size + size) % size

	indices := make([]int, n)
	for i := range indices {
		indices[i] = (start + i) % size
	}
	return withTimes(indices, budget), nil
}

// Tournament plays a knockout bracket. Each round highlights every contender
// before half of them are eliminated; the winner survives every round.
type Tournament struct{}

func (Tournament) Schedule(winnerIndex, size int, budget time.Duration, rng utils.RandomSource) ([]Step, error) {
	if err := validate(winnerIndex, size, budget); err != nil {
		return nil, err
	}
	if size == 1 {
		return withTimes([]int{winnerIndex}, budget), nil
	}

	contenders := seedBracket(winnerIndex, size, rng)

	var indices []int
	for len(contenders) > 1 {
		round := arrangeRound(contenders, winnerIndex, rng, lastOf(indices))
		indices = append(indices, round...)
		contenders = eliminate(contenders, winnerIndex, rng)
	}
	if lastOf(indices) != winnerIndex {
		indices = append(indices, winnerIndex)
	}
	return withTimes(indices, budget), nil
}

// seedBracket picks up to TournamentBracketCap distinct entrants, always including the winner
func seedBracket(winnerIndex, size int, rng utils.RandomSource) []int {
	all := make([]int, 0, size-1)
	for i := 0; i < size; i++ {
		if i != winnerIndex {
			all = append(all, i)
		}
	}
	utils.Shuffle(rng, all)

	n := TournamentBracketCap - 1
	if len(all) < n {
		n = len(all)
	}
	bracket := append([]int{winnerIndex}, all[:n]...)
	utils.Shuffle(rng, bracket)
	return bracket
}

// arrangeRound orders one round's highlights. The final round ends on the
// winner and no round starts on the index the previous round ended on.
func arrangeRound(contenders []int, winnerIndex int, rng utils.RandomSource, prev int) []int {
	round := append([]int(nil), contenders...)
	utils.Shuffle(rng, round)

	if len(round) == 2 {
		if round[1] != winnerIndex {
			round[0], round[1] = round[1], round[0]
		}
		// The loser was just shown; go straight to the winner
		if round[0] == prev {
			return round[1:]
		}
		return round
	}
	if round[0] == prev {
		round[0], round[len(round)-1] = round[len(round)-1], round[0]
	}
	return round
}

// eliminate halves the field, rounding up, keeping the winner
func eliminate(contenders []int, winnerIndex int, rng utils.RandomSource) []int {
	others := make([]int, 0, len(contenders)-1)
	for _, c := range contenders {
		if c != winnerIndex {
			others = append(others, c)
		}
	}
	utils.Shuffle(rng, others)

	keep := (len(contenders)+1)/2 - 1
	survivors := append([]int{winnerIndex}, others[:keep]...)
	return survivors
}

func lastOf(indices []int) int {
	if len(indices) == 0 {
		return -1
	}
	return indices[len(indices)-1]
}

// Machine agitates the chamber with random highlights that never touch the
// winner, then releases the winner for the exit and the podium landing
type Machine struct{}

func (Machine) Schedule(winnerIndex, size int, budget time.Duration, rng utils.RandomSource) ([]Step, error) {
	if err := validate(winnerIndex, size, budget); err != nil {
		return nil, err
	}
	if size == 1 {
		return withTimes([]int{winnerIndex}, budget), nil
	}

	indices := make([]int, MachineSteps)
	prev := -1
	for i := 0; i < MachineSteps-2; i++ {
		indices[i] = pickOther(rng, size, prev, winnerIndex)
		prev = indices[i]
	}
	indices[MachineSteps-2] = winnerIndex
	indices[MachineSteps-1] = winnerIndex
	return withTimes(indices, budget), nil
}
