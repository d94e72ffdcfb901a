package physics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Landing describes a token that reached the podium
type Landing struct {
	UserID string
	Pos    Vec
	Slot   int
}

// Machine composes the chamber, the winner's flight, the podium and the
// session's exclusion set. It is not safe for concurrent use; the display
// loop owns it.
type Machine struct {
	track    domain.TrackConfig
	viewport Viewport
	rng      utils.RandomSource

	arena        *Arena
	participants []string
	excluded     domain.ExclusionSet

	flight   *Flight
	flyingID string
	flyPos   Vec
	queued   []queuedLaunch

	podium []string
	bursts []*Burst
}

type queuedLaunch struct {
	userID   string
	duration time.Duration
}

// NewMachine creates a machine for a track shown on viewport
func NewMachine(track domain.TrackConfig, viewport Viewport, rng utils.RandomSource) *Machine {
	if rng == nil {
		rng = utils.DefaultRNG()
	}
	return &Machine{
		track:    track,
		viewport: viewport,
		rng:      rng,
		arena:    NewArena(DefaultArenaConfig(track), rng),
		excluded: domain.ExclusionSet{},
	}
}

// Load fills the chamber with every participant not already excluded.
// Podium entries no longer in the exclusion set are dropped, so an empty
// set starts a new session with an empty podium.
func (m *Machine) Load(participants []string, excluded domain.ExclusionSet) {
	m.participants = append([]string(nil), participants...)
	m.excluded = domain.ExclusionSet{}
	for id := range excluded {
		m.excluded[id] = struct{}{}
	}
	podium := m.podium[:0]
	for _, id := range m.podium {
		if m.excluded.Contains(id) {
			podium = append(podium, id)
		}
	}
	m.podium = podium
	m.refill()
	slog.Debug(LogMsgMachineLoaded, "tokens", m.arena.Len(), "excluded", len(m.excluded))
}

func (m *Machine) refill() {
	m.arena.Clear()
	m.flight = nil
	m.flyingID = ""
	m.queued = nil
	for _, id := range m.participants {
		if m.excluded.Contains(id) {
			continue
		}
		m.arena.Add(id)
	}
}

// Launch pulls the winner's token out of the chamber and starts its flight
// along the track. While another token is flying the launch is queued and
// starts when that token lands. A token that is not in the chamber yields
// domain.ErrAnimationTargetMissing.
func (m *Machine) Launch(userID string, duration time.Duration) error {
	idx := m.arena.Index(userID)
	if idx < 0 {
		return fmt.Errorf("%w: %s %q", domain.ErrAnimationTargetMissing, ErrMsgTokenNotInArena, userID)
	}
	if m.flight != nil {
		m.queued = append(m.queued, queuedLaunch{userID: userID, duration: duration})
		slog.Debug(LogMsgLaunchQueued, "user_id", userID, "flying", m.flyingID)
		return nil
	}
	return m.launch(idx, userID, duration)
}

func (m *Machine) launch(idx int, userID string, duration time.Duration) error {
	path := SampleSpline(m.viewport.PathToPixels(m.track.ControlPoints()), DefaultSamplesPerSegment)
	flight, err := NewFlight(path, duration)
	if err != nil {
		return err
	}

	m.arena.Remove(idx)
	m.flight = flight
	m.flyingID = userID
	m.flyPos = path[0]
	slog.Debug(LogMsgTokenLaunched, "user_id", userID, "duration", flight.Duration())
	return nil
}

// Tick advances the chamber, the flight and any bursts by dt. It returns the
// landing when the flying token arrives on this tick.
func (m *Machine) Tick(dt time.Duration) *Landing {
	frames := float64(dt) / float64(FrameDuration)
	m.arena.Step(frames)

	alive := m.bursts[:0]
	for _, b := range m.bursts {
		b.Step(frames)
		if b.Alive() {
			alive = append(alive, b)
		}
	}
	m.bursts = alive

	if m.flight == nil {
		return nil
	}

	pos, arrived := m.flight.Advance(dt)
	m.flyPos = pos
	if !arrived {
		return nil
	}

	landing := &Landing{UserID: m.flyingID, Pos: pos, Slot: len(m.podium)}
	m.podium = append(m.podium, m.flyingID)
	m.excluded[m.flyingID] = struct{}{}
	m.bursts = append(m.bursts, NewBurst(pos, DefaultBurstCount, DefaultBurstSpeed, m.rng))
	m.flight = nil
	m.flyingID = ""

	slog.Debug(LogMsgTokenLanded, "user_id", landing.UserID, "slot", landing.Slot)
	m.launchNext()
	return landing
}

func (m *Machine) launchNext() {
	for len(m.queued) > 0 {
		next := m.queued[0]
		m.queued = m.queued[1:]
		idx := m.arena.Index(next.userID)
		if idx < 0 {
			continue
		}
		if err := m.launch(idx, next.userID, next.duration); err != nil {
			slog.Warn(LogMsgQueuedLaunchFailed, "user_id", next.userID, "error", err)
			continue
		}
		return
	}
}

// Exclude removes users from the chamber for the rest of the session
// without putting them on the podium. A token in flight is left alone.
func (m *Machine) Exclude(userIDs ...string) {
	for _, id := range userIDs {
		m.excluded[id] = struct{}{}
		if id == m.flyingID {
			continue
		}
		if idx := m.arena.Index(id); idx >= 0 {
			m.arena.Remove(idx)
		}
	}
}

// ResetRound cancels any flight and refills the chamber for the next draw.
// Winners stay excluded and stay on the podium.
func (m *Machine) ResetRound() {
	m.bursts = nil
	m.refill()
	slog.Debug(LogMsgRoundReset, "tokens", m.arena.Len(), "excluded", len(m.excluded))
}

// Busy reports whether a token is flying or waiting to fly
func (m *Machine) Busy() bool {
	return m.flight != nil || len(m.queued) > 0
}

// Flying returns the in-flight token and its position
func (m *Machine) Flying() (string, Vec, bool) {
	if m.flight == nil {
		return "", Vec{}, false
	}
	return m.flyingID, m.flyPos, true
}

// Podium returns the winners in landing order
func (m *Machine) Podium() []string {
	return append([]string(nil), m.podium...)
}

// Excluded returns a copy of the exclusion set
func (m *Machine) Excluded() domain.ExclusionSet {
	out := make(domain.ExclusionSet, len(m.excluded))
	for id := range m.excluded {
		out[id] = struct{}{}
	}
	return out
}

// Arena exposes the chamber for rendering
func (m *Machine) Arena() *Arena {
	return m.arena
}

// Bursts returns the live particle bursts
func (m *Machine) Bursts() []*Burst {
	return m.bursts
}
