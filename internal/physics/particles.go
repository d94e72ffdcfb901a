package physics

import (
	"math"

	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Particle is one confetti piece
type Particle struct {
	Pos  Vec
	Vel  Vec
	Life float64 // remaining frames
}

// Burst is the confetti emitted when the winning token lands
type Burst struct {
	Particles []Particle
	maxLife   float64
}

// NewBurst emits count particles from origin in random directions
func NewBurst(origin Vec, count int, speed float64, rng utils.RandomSource) *Burst {
	b := &Burst{
		Particles: make([]Particle, count),
		maxLife:   DefaultParticleLife,
	}
	for i := range b.Particles {
		angle := rng.Float64() * 2 * math.Pi
		v := utils.RandomRange(rng, speed/2, speed)
		b.Particles[i] = Particle{
			Pos:  origin,
			Vel:  Vec{X: math.Cos(angle) * v, Y: math.Sin(angle) * v},
			Life: utils.RandomRange(rng, b.maxLife/2, b.maxLife),
		}
	}
	return b
}

// Step advances every live particle by dt frames
func (b *Burst) Step(dt float64) {
	drag := math.Pow(ParticleDrag, dt)
	for i := range b.Particles {
		p := &b.Particles[i]
		if p.Life <= 0 {
			continue
		}
		p.Vel.Y += ParticleGravity * dt
		p.Vel.X *= drag
		p.Vel.Y *= drag
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Life -= dt
	}
}

// Alive reports whether any particle is still visible
func (b *Burst) Alive() bool {
	for _, p := range b.Particles {
		if p.Life > 0 {
			return true
		}
	}
	return false
}

// Opacity returns the fade factor for a particle
func (b *Burst) Opacity(p Particle) float64 {
	return utils.Clamp(p.Life/b.maxLife, 0, 1)
}
