// Package animation computes the highlight sequences display screens play to
// reveal a draw. Every mode ends on the winner at exactly the requested budget,
// whatever randomness it uses on the way.
package animation

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Step highlights Index at offset At from the start of playback
type Step struct {
	Index int           `json:"index"`
	At    time.Duration `json:"at"`
}

// Scheduler produces a step sequence that ends on winnerIndex at budget
type Scheduler interface {
	Schedule(winnerIndex, size int, budget time.Duration, rng utils.RandomSource) ([]Step, error)
}

// ForMode returns the scheduler for an animation mode
func ForMode(mode domain.AnimationMode) (Scheduler, error) {
	switch mode {
	case domain.AnimationShuffle:
		return Shuffle{}, nil
	case domain.AnimationWaterfall:
		return Waterfall{}, nil
	case domain.AnimationTournament:
		return Tournament{}, nil
	case domain.AnimationMachine:
		return Machine{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAnimationMode, mode)
	}
}

func validate(winnerIndex, size int, budget time.Duration) error {
	if size <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyCollection)
	}
	if winnerIndex < 0 || winnerIndex >= size {
		return fmt.Errorf("%w: %s (%d of %d)", domain.ErrInvalidInput, ErrMsgIndexOutOfRange, winnerIndex, size)
	}
	if budget <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNonPositiveBudget)
	}
	return nil
}

// maxStepsFor is the largest n whose first timeline interval is still >= 1ns
func maxStepsFor(budget time.Duration) int {
	n := int(math.Floor(math.Pow(float64(budget), 1/TimelineExponent)))
	if n < 1 {
		return 1
	}
	return n
}

// timeline returns n strictly increasing offsets ending exactly at budget with
// growing gaps. n is reduced when the budget cannot hold that many steps.
func timeline(n int, budget time.Duration) []time.Duration {
	if limit := maxStepsFor(budget); n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	at := make([]time.Duration, n)
	var prev time.Duration
	for i := 1; i <= n; i++ {
		frac := math.Pow(float64(i)/float64(n), TimelineExponent)
		t := time.Duration(math.Round(frac * float64(budget)))
		if t <= prev {
			t = prev + 1
		}
		at[i-1] = t
		prev = t
	}
	at[n-1] = budget
	return at
}

// withTimes zips indices onto a timeline of the same length
func withTimes(indices []int, budget time.Duration) []Step {
	times := timeline(len(indices), budget)
	// A short budget can shrink the timeline; keep the tail so the winner survives
	indices = indices[len(indices)-len(times):]
	steps := make([]Step, len(indices))
	for i, idx := range indices {
		steps[i] = Step{Index: idx, At: times[i]}
	}
	return steps
}

// pickOther returns a random index in [0,size) different from every entry in avoid.
// When size leaves no choice it relaxes the constraints from the back.
func pickOther(rng utils.RandomSource, size int, avoid ...int) int {
	for len(avoid) > 0 {
		free := size - countDistinctInRange(avoid, size)
		if free > 0 {
			k := rng.IntN(free)
			for i := 0; i < size; i++ {
				if contains(avoid, i) {
					continue
				}
				if k == 0 {
					return i
				}
				k--
			}
		}
		avoid = avoid[:len(avoid)-1]
	}
	return rng.IntN(size)
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func countDistinctInRange(values []int, size int) int {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if v >= 0 && v < size {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
