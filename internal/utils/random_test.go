package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRNGIsDeterministic(t *testing.T) {
	a := NewSeededRNG(42)
	b := NewSeededRNG(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRandomRange(t *testing.T) {
	rng := NewSeededRNG(7)
	for i := 0; i < 1000; i++ {
		v := RandomRange(rng, -2, 3)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(NewSeededRNG(1), s)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, s)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestDefaultRNGBounds(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		assert.Less(t, rng.IntN(3), 3)
		f := rng.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}
