// Package display keeps a lottery screen in step with the server. A single
// pure transition function owns the screen's phase; the Screen loop feeds it
// push frames, poll results and animation callbacks and carries out the
// effects it returns.
package display

import (
	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Phase is what the screen is currently showing
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaitingForDraw
	PhaseDrawing
	PhaseWinnerShown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaitingForDraw:
		return "waiting_for_draw"
	case PhaseDrawing:
		return "drawing"
	case PhaseWinnerShown:
		return "winner_shown"
	default:
		return "unknown"
	}
}

// Draw is one completed server draw as the screen sees it. ID is the
// currentDrawId, which is the id of the draw's last history record.
type Draw struct {
	ID      uuid.UUID
	Winners []domain.HistoryRecord
	Mode    domain.AnimationMode
}

// Target returns the record the animation lands on
func (d Draw) Target() (domain.HistoryRecord, bool) {
	for _, w := range d.Winners {
		if w.ID == d.ID {
			return w, true
		}
	}
	if len(d.Winners) > 0 {
		return d.Winners[len(d.Winners)-1], true
	}
	return domain.HistoryRecord{}, false
}

// Model is the complete reconciliation state of one screen
type Model struct {
	Phase   Phase
	Active  bool
	Mode    domain.AnimationMode
	Version int64
	Mounted bool

	// LastDrawID is the newest draw this screen has started or shown
	LastDrawID uuid.UUID
	Current    *Draw
	Pending    *Draw
}

// Event is an input to the machine
type Event interface{ isEvent() }

// StateObserved carries a state read from a push frame or a poll. Latest is
// set only when the source also fetched history.
type StateObserved struct {
	State  domain.LotteryState
	Latest *Draw
}

// DrawObserved carries a newWinner push frame or a draw rebuilt from history
type DrawObserved struct {
	Draw Draw
}

// AnimationFinished reports that the animation for DrawID ran its terminal step
type AnimationFinished struct {
	DrawID uuid.UUID
}

// Tick is the poll timer firing
type Tick struct{}

// HistoryChanged reports that history records were deleted or cleared
type HistoryChanged struct{}

func (StateObserved) isEvent()     {}
func (DrawObserved) isEvent()      {}
func (AnimationFinished) isEvent() {}
func (Tick) isEvent()              {}
func (HistoryChanged) isEvent()    {}

// Effect is work the Screen performs after a transition
type Effect interface{ isEffect() }

type (
	// StartAnimation begins the reveal for Draw
	StartAnimation struct{ Draw Draw }
	// CancelAnimation stops the running reveal without completing it
	CancelAnimation struct{}
	// ShowWinner displays the winners of Draw
	ShowWinner struct{ Draw Draw }
	// ClearWinner removes any winner display and resets the round
	ClearWinner struct{}
	// ShowPhase updates the caption for a phase
	ShowPhase struct{ Phase Phase }
	// Poll fetches state and history
	Poll struct{}
	// ReloadExclusions refetches who already won this session
	ReloadExclusions struct{}
)

func (StartAnimation) isEffect()   {}
func (CancelAnimation) isEffect()  {}
func (ShowWinner) isEffect()       {}
func (ClearWinner) isEffect()      {}
func (ShowPhase) isEffect()        {}
func (Poll) isEffect()             {}
func (ReloadExclusions) isEffect() {}

// Transition applies ev to m. It does no I/O.
func Transition(m Model, ev Event) (Model, []Effect) {
	switch e := ev.(type) {
	case StateObserved:
		return onState(m, e)
	case DrawObserved:
		return onDraw(m, e.Draw)
	case AnimationFinished:
		return onAnimationFinished(m, e.DrawID)
	case Tick:
		return m, []Effect{Poll{}}
	case HistoryChanged:
		// Purged winners are eligible again
		if m.Mode == domain.AnimationMachine {
			return m, []Effect{Poll{}, ReloadExclusions{}}
		}
		return m, []Effect{Poll{}}
	default:
		return m, nil
	}
}

func onState(m Model, e StateObserved) (Model, []Effect) {
	s := e.State
	if m.Mounted && s.Version < m.Version {
		return m, nil
	}
	m.Version = s.Version
	m.Active = s.IsActive
	m.Mode = s.AnimationMode

	if !s.IsActive {
		// A draw finished while hidden is not replayed on reactivation
		if s.CurrentDrawID != nil {
			m.LastDrawID = *s.CurrentDrawID
		}
		return toIdle(m)
	}

	var effects []Effect
	if s.CurrentDrawID == nil {
		if s.IsDrawing {
			// Null id mid-draw is the lock being taken, not a reset
			m, effects = leaveIdle(m)
			m.Mounted = true
			return m, effects
		}
		m, effects = reset(m)
		m.Mounted = true
		return m, effects
	}

	drawID := *s.CurrentDrawID
	if drawID != m.LastDrawID && !m.pendingOrCurrent(drawID) {
		if e.Latest == nil || e.Latest.ID != drawID {
			// Push frames carry no history; fetch it
			m, effects = leaveIdle(m)
			return m, append(effects, Poll{})
		}
		draw := *e.Latest
		if draw.Mode == "" {
			draw.Mode = s.AnimationMode
		}
		return onDraw(m, draw)
	}

	if m.Phase == PhaseIdle || m.Phase == PhaseWaitingForDraw {
		// Reactivated with the current draw already revealed
		if drawID == m.LastDrawID && e.Latest != nil && e.Latest.ID == drawID {
			latest := *e.Latest
			m.Phase = PhaseWinnerShown
			m.Mounted = true
			return m, []Effect{ShowWinner{Draw: latest}, ShowPhase{Phase: PhaseWinnerShown}}
		}
		m, effects = leaveIdle(m)
	}
	m.Mounted = true
	return m, effects
}

func onDraw(m Model, d Draw) (Model, []Effect) {
	if d.ID == uuid.Nil || d.ID == m.LastDrawID || m.pendingOrCurrent(d.ID) {
		return m, nil
	}
	if d.Mode == "" {
		d.Mode = m.Mode
	}

	if !m.Mounted {
		// Already finished before this screen existed; show without replaying
		m.LastDrawID = d.ID
		m.Mounted = true
		if !m.Active {
			return m, nil
		}
		m.Phase = PhaseWinnerShown
		return m, []Effect{ShowWinner{Draw: d}, ShowPhase{Phase: PhaseWinnerShown}}
	}

	if !m.Active {
		m.LastDrawID = d.ID
		return m, nil
	}

	if m.Phase == PhaseDrawing {
		// Newest pending draw wins; it starts after the terminal step
		draw := d
		m.Pending = &draw
		return m, nil
	}

	m.LastDrawID = d.ID
	return startDrawing(m, d)
}

func onAnimationFinished(m Model, drawID uuid.UUID) (Model, []Effect) {
	if m.Phase != PhaseDrawing || m.Current == nil || m.Current.ID != drawID {
		return m, nil
	}

	finished := *m.Current
	m.Current = nil
	m.Phase = PhaseWinnerShown
	effects := []Effect{ShowWinner{Draw: finished}, ShowPhase{Phase: PhaseWinnerShown}}

	if m.Pending != nil {
		next := *m.Pending
		m.Pending = nil
		m.LastDrawID = next.ID
		var more []Effect
		m, more = startDrawing(m, next)
		effects = append(effects, more...)
	}
	return m, effects
}

func startDrawing(m Model, d Draw) (Model, []Effect) {
	draw := d
	m.Current = &draw
	m.Phase = PhaseDrawing
	return m, []Effect{ShowPhase{Phase: PhaseDrawing}, StartAnimation{Draw: d}}
}

func toIdle(m Model) (Model, []Effect) {
	m.Mounted = true
	if m.Phase == PhaseIdle {
		return m, nil
	}
	var effects []Effect
	if m.Phase == PhaseDrawing {
		effects = append(effects, CancelAnimation{})
	}
	if m.Phase == PhaseWinnerShown || m.Phase == PhaseDrawing {
		effects = append(effects, ClearWinner{})
	}
	m.Current = nil
	m.Pending = nil
	m.Phase = PhaseIdle
	return m, append(effects, ShowPhase{Phase: PhaseIdle})
}

func reset(m Model) (Model, []Effect) {
	if m.Phase == PhaseWaitingForDraw {
		return m, nil
	}
	var effects []Effect
	if m.Phase == PhaseDrawing {
		effects = append(effects, CancelAnimation{})
	}
	if m.Phase == PhaseWinnerShown || m.Phase == PhaseDrawing {
		effects = append(effects, ClearWinner{})
	}
	m.Current = nil
	m.Pending = nil
	m.Phase = PhaseWaitingForDraw
	return m, append(effects, ShowPhase{Phase: PhaseWaitingForDraw})
}

func leaveIdle(m Model) (Model, []Effect) {
	if m.Phase != PhaseIdle {
		return m, nil
	}
	m.Phase = PhaseWaitingForDraw
	return m, []Effect{ShowPhase{Phase: PhaseWaitingForDraw}}
}

func (m Model) pendingOrCurrent(id uuid.UUID) bool {
	return (m.Current != nil && m.Current.ID == id) || (m.Pending != nil && m.Pending.ID == id)
}
