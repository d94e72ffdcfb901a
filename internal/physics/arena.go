// Package physics simulates the machine-mode chamber and the flight of the
// winning token from the chamber exit to the podium.
package physics

import (
	"math"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Vec is a 2D vector in pixels
type Vec = domain.Point

// Token is one circular participant token in the chamber
type Token struct {
	ID       string
	Pos      Vec
	Vel      Vec
	Rotation float64
}

// Speed returns the token's velocity magnitude
func (t Token) Speed() float64 {
	return math.Hypot(t.Vel.X, t.Vel.Y)
}

// ArenaConfig tunes the ambient chamber motion. Distances are pixels,
// velocities pixels per frame.
type ArenaConfig struct {
	Width         float64
	Height        float64
	Radius        float64
	Gravity       float64
	Buoyancy      float64
	BuoyancyZone  float64
	LateralJitter float64
	Friction      float64
	MaxSpeed      float64
	MinSpeed      float64
	KickSpeed     float64
	WallDamping   float64
	Restitution   float64
	Collisions    bool
}

// DefaultArenaConfig sizes the chamber from a track
func DefaultArenaConfig(track domain.TrackConfig) ArenaConfig {
	return ArenaConfig{
		Width:         track.ChamberWidth,
		Height:        track.ChamberHeight,
		Radius:        track.TokenDiameter / 2,
		Gravity:       DefaultGravity,
		Buoyancy:      DefaultBuoyancy,
		BuoyancyZone:  DefaultBuoyancyZone,
		LateralJitter: DefaultLateralJitter,
		Friction:      DefaultFriction,
		MaxSpeed:      DefaultMaxSpeed,
		MinSpeed:      DefaultMinSpeed,
		KickSpeed:     DefaultKickSpeed,
		WallDamping:   DefaultWallDamping,
		Restitution:   DefaultRestitution,
		Collisions:    true,
	}
}

// Arena holds tokens by index. It has no notion of draws; the outcome is
// chosen elsewhere and only removes a token from here.
type Arena struct {
	cfg    ArenaConfig
	rng    utils.RandomSource
	tokens []Token
}

// NewArena creates an empty chamber
func NewArena(cfg ArenaConfig, rng utils.RandomSource) *Arena {
	if rng == nil {
		rng = utils.DefaultRNG()
	}
	return &Arena{cfg: cfg, rng: rng}
}

// Config returns the arena configuration
func (a *Arena) Config() ArenaConfig {
	return a.cfg
}

// Add drops a token at a random position with a random velocity and returns its index
func (a *Arena) Add(id string) int {
	r := a.cfg.Radius
	angle := a.rng.Float64() * 2 * math.Pi
	speed := utils.RandomRange(a.rng, a.cfg.MinSpeed, a.cfg.MaxSpeed/2)
	a.tokens = append(a.tokens, Token{
		ID:  id,
		Pos: Vec{X: utils.RandomRange(a.rng, r, math.Max(r, a.cfg.Width-r)), Y: utils.RandomRange(a.rng, r, math.Max(r, a.cfg.Height-r))},
		Vel: Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
	})
	return len(a.tokens) - 1
}

// Index returns the index of the token with id, or -1
func (a *Arena) Index(id string) int {
	for i := range a.tokens {
		if a.tokens[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove takes the token at index out of the chamber and returns it.
// Indexes above it shift down by one.
func (a *Arena) Remove(index int) (Token, bool) {
	if index < 0 || index >= len(a.tokens) {
		return Token{}, false
	}
	t := a.tokens[index]
	a.tokens = append(a.tokens[:index], a.tokens[index+1:]...)
	return t, true
}

// Clear removes every token
func (a *Arena) Clear() {
	a.tokens = a.tokens[:0]
}

// Len returns the number of tokens
func (a *Arena) Len() int {
	return len(a.tokens)
}

// Token returns a copy of the token at index
func (a *Arena) Token(index int) Token {
	return a.tokens[index]
}

// Tokens returns a snapshot of all tokens
func (a *Arena) Tokens() []Token {
	return append([]Token(nil), a.tokens...)
}

// Step advances the simulation by dt frames
func (a *Arena) Step(dt float64) {
	for i := range a.tokens {
		a.integrate(&a.tokens[i], dt)
	}
	if a.cfg.Collisions {
		a.resolveCollisions()
	}
}

func (a *Arena) integrate(t *Token, dt float64) {
	cfg := a.cfg

	t.Vel.Y += cfg.Gravity * dt

	// Buoyancy ramps from zero at the top of the zone to full strength at the floor
	zone := cfg.Height * cfg.BuoyancyZone
	if zone > 0 {
		proximity := utils.Clamp((t.Pos.Y-(cfg.Height-zone))/zone, 0, 1)
		t.Vel.Y -= cfg.Buoyancy * proximity * dt
	}

	t.Vel.X += (a.rng.Float64()*2 - 1) * cfg.LateralJitter * dt

	damping := math.Pow(cfg.Friction, dt)
	t.Vel.X *= damping
	t.Vel.Y *= damping

	speed := t.Speed()
	if speed > cfg.MaxSpeed {
		scale := cfg.MaxSpeed / speed
		t.Vel.X *= scale
		t.Vel.Y *= scale
	} else if speed < cfg.MinSpeed {
		angle := a.rng.Float64() * 2 * math.Pi
		t.Vel.X += math.Cos(angle) * cfg.KickSpeed
		t.Vel.Y += math.Sin(angle) * cfg.KickSpeed
	}

	t.Pos.X += t.Vel.X * dt
	t.Pos.Y += t.Vel.Y * dt
	if cfg.Radius > 0 {
		t.Rotation += t.Vel.X * dt / cfg.Radius
	}

	a.reflect(t)
}

// reflect keeps the token inside the walls, reversing and damping the
// velocity component normal to the wall it hit
func (a *Arena) reflect(t *Token) {
	r, w, h, d := a.cfg.Radius, a.cfg.Width, a.cfg.Height, a.cfg.WallDamping

	if t.Pos.X < r {
		t.Pos.X = r
		t.Vel.X = math.Abs(t.Vel.X) * d
	} else if t.Pos.X > w-r {
		t.Pos.X = w - r
		t.Vel.X = -math.Abs(t.Vel.X) * d
	}
	if t.Pos.Y < r {
		t.Pos.Y = r
		t.Vel.Y = math.Abs(t.Vel.Y) * d
	} else if t.Pos.Y > h-r {
		t.Pos.Y = h - r
		t.Vel.Y = -math.Abs(t.Vel.Y) * d
	}
}

// resolveCollisions separates overlapping tokens and exchanges the normal
// velocity components of approaching pairs. Tokens have equal mass.
func (a *Arena) resolveCollisions() {
	minDist := 2 * a.cfg.Radius
	if minDist <= 0 {
		return
	}
	for i := 0; i < len(a.tokens); i++ {
		for j := i + 1; j < len(a.tokens); j++ {
			ti, tj := &a.tokens[i], &a.tokens[j]
			dx, dy := tj.Pos.X-ti.Pos.X, tj.Pos.Y-ti.Pos.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}

			var nx, ny float64
			if dist == 0 {
				nx, ny = 1, 0
			} else {
				nx, ny = dx/dist, dy/dist
			}

			overlap := (minDist - dist) / 2
			ti.Pos.X -= nx * overlap
			ti.Pos.Y -= ny * overlap
			tj.Pos.X += nx * overlap
			tj.Pos.Y += ny * overlap

			rel := (tj.Vel.X-ti.Vel.X)*nx + (tj.Vel.Y-ti.Vel.Y)*ny
			if rel >= 0 {
				continue
			}
			impulse := -rel * (1 + a.cfg.Restitution) / 2
			ti.Vel.X -= impulse * nx
			ti.Vel.Y -= impulse * ny
			tj.Vel.X += impulse * nx
			tj.Vel.Y += impulse * ny
		}
	}
	for i := range a.tokens {
		a.reflect(&a.tokens[i])
	}
}
