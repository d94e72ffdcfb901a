package display

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/animation"
	"github.com/osse101/WeddingBot_Go/internal/config"
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/lottery"
	"github.com/osse101/WeddingBot_Go/internal/physics"
	"github.com/osse101/WeddingBot_Go/internal/sse"
	"github.com/osse101/WeddingBot_Go/internal/utils"
)

// Stream is the push channel a screen listens on. *sse.StreamClient satisfies it.
type Stream interface {
	OnEvent(eventType string, handler sse.FrameHandler)
	OnStatus(fn func(connected bool, err error))
	Start(ctx context.Context)
	Stop()
}

// Renderer draws the screen. Every method is called from the screen loop.
type Renderer interface {
	ShowPhase(phase Phase)
	Highlight(step animation.Step, photo domain.Photo, final bool) error
	ShowWinner(draw Draw)
	ClearWinner()
	Frame(m *physics.Machine)
	Landed(landing physics.Landing)
}

var errStaleRender = errors.New("render for a superseded draw")

type renderCall struct {
	fn    func() error
	reply chan error
}

// landingWait is a machine-mode draw whose winner token is still flying
type landingWait struct {
	drawID uuid.UUID
	userID string
}

// Screen runs one display. All state is owned by the goroutine in Run;
// stream handlers, fetches and animation timers talk to it over channels.
type Screen struct {
	cfg      config.DisplayConfig
	api      API
	stream   Stream
	renderer Renderer
	rng      utils.RandomSource

	inputs  chan Event
	results chan func()
	calls   chan renderCall
	ctx     context.Context
	wg      sync.WaitGroup

	model    Model
	queued   []Event
	playback *animation.Playback

	photos    []domain.Photo
	byOwner   map[string][]domain.Photo
	track     domain.TrackConfig
	machine   *physics.Machine
	frames    *time.Ticker
	lastFrame time.Time

	// serverDrawID is the currentDrawId of the newest accepted state
	serverDrawID *uuid.UUID
	awaiting     *landingWait
	retargeted   uuid.UUID

	// exclusionsGen discards results of superseded exclusion fetches;
	// exclusionsStale is set until a fetched set has been applied
	exclusionsGen   int
	exclusionsStale bool
}

// NewScreen creates a screen. rng may be nil.
func NewScreen(cfg config.DisplayConfig, api API, stream Stream, renderer Renderer, rng utils.RandomSource) *Screen {
	if rng == nil {
		rng = utils.DefaultRNG()
	}
	return &Screen{
		cfg:      cfg,
		api:      api,
		stream:   stream,
		renderer: renderer,
		rng:      rng,
		inputs:   make(chan Event, eventBuffer),
		results:  make(chan func(), eventBuffer),
		calls:    make(chan renderCall),
		track:    domain.DefaultTrackConfig(),
		byOwner:  map[string][]domain.Photo{},
	}
}

// Model returns the current model. Only safe once Run has returned.
func (s *Screen) Model() Model {
	return s.model
}

// Run drives the screen until ctx is cancelled
func (s *Screen) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.ctx = ctx

	s.registerStream()
	s.stream.Start(ctx)

	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()

	slog.Info(LogMsgScreenStarted, "api", s.cfg.APIURL, "poll_interval", s.cfg.PollInterval)

	s.refreshCollection()
	s.poll()

	for {
		var frames <-chan time.Time
		if s.frames != nil {
			frames = s.frames.C
		}

		select {
		case <-ctx.Done():
			s.teardown()
			return nil
		case ev := <-s.inputs:
			s.apply(ev)
		case fn := <-s.results:
			fn()
		case c := <-s.calls:
			c.reply <- c.fn()
		case <-poll.C:
			s.apply(Tick{})
		case now := <-frames:
			s.stepPhysics(now)
		}
	}
}

func (s *Screen) teardown() {
	s.cancelAnimation()
	s.stopFrames()
	s.stream.Stop()
	s.wg.Wait()
	slog.Info(LogMsgScreenStopped, "phase", s.model.Phase.String())
}

// post hands an event to the loop from another goroutine
func (s *Screen) post(ev Event) {
	select {
	case s.inputs <- ev:
	case <-s.ctx.Done():
	}
}

// fetch runs fn off the loop and applies its result on the loop
func (s *Screen) fetch(name string, fn func(ctx context.Context) (func(), error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		apply, err := fn(s.ctx)
		if err != nil {
			if s.ctx.Err() == nil {
				slog.Warn(LogMsgFetchFailed, "fetch", name, "error", err)
			}
			return
		}
		select {
		case s.results <- apply:
		case <-s.ctx.Done():
		}
	}()
}

// call runs fn on the loop and waits for its result
func (s *Screen) call(fn func() error) error {
	c := renderCall{fn: fn, reply: make(chan error, 1)}
	select {
	case s.calls <- c:
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
	select {
	case err := <-c.reply:
		return err
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

func (s *Screen) registerStream() {
	s.stream.OnEvent(sse.EventTypeState, func(evt sse.Event) error {
		var state domain.LotteryState
		if err := json.Unmarshal(evt.Payload, &state); err != nil {
			slog.Warn(LogMsgFrameDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		s.post(StateObserved{State: state})
		return nil
	})

	s.stream.OnEvent(sse.EventTypeNewWinner, func(evt sse.Event) error {
		var payload sse.NewWinnerPayload
		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			slog.Warn(LogMsgFrameDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		s.post(DrawObserved{Draw: Draw{ID: payload.DrawID, Winners: payload.Winners}})
		return nil
	})

	s.stream.OnEvent(sse.EventTypeHistory, func(evt sse.Event) error {
		s.post(HistoryChanged{})
		return nil
	})

	s.stream.OnEvent(sse.EventTypeError, func(evt sse.Event) error {
		var payload sse.ErrorPayload
		_ = json.Unmarshal(evt.Payload, &payload)
		slog.Warn(LogMsgServerError, "code", payload.Code, "message", payload.Message)
		return nil
	})

	s.stream.OnStatus(func(connected bool, err error) {
		if connected {
			slog.Info(LogMsgPushUp)
			// Anything missed while down is recovered by one poll
			s.post(Tick{})
			return
		}
		slog.Warn(LogMsgPushDown, "error", err)
	})
}

// apply runs the transition and its effects. Events raised by effects are
// queued and applied after the current effects finish.
func (s *Screen) apply(ev Event) {
	s.queued = append(s.queued, ev)
	s.drain()
}

func (s *Screen) drain() {
	for len(s.queued) > 0 {
		next := s.queued[0]
		s.queued = s.queued[1:]

		prev, prevVersion, gen := s.model.Phase, s.model.Version, s.exclusionsGen
		var effects []Effect
		s.model, effects = Transition(s.model, next)
		if s.model.Phase != prev {
			slog.Debug(LogMsgTransition, "from", prev.String(), "to", s.model.Phase.String())
		}
		if obs, ok := next.(StateObserved); ok && obs.State.Version == s.model.Version {
			s.serverDrawID = obs.State.CurrentDrawID
		}
		for _, eff := range effects {
			s.perform(eff)
		}
		s.syncMode()

		// Any accepted state change may have moved the session's winners
		if s.exclusionsGen == gen && (s.model.Version != prevVersion ||
			(prev == PhaseDrawing && s.model.Phase != PhaseDrawing && s.exclusionsStale)) {
			s.refreshExclusions()
		}
	}
}

func (s *Screen) perform(eff Effect) {
	switch e := eff.(type) {
	case ShowPhase:
		s.renderer.ShowPhase(e.Phase)
	case StartAnimation:
		s.startAnimation(e.Draw)
	case CancelAnimation:
		s.cancelAnimation()
	case ShowWinner:
		s.renderer.ShowWinner(e.Draw)
		s.excludeWinners(e.Draw)
	case ClearWinner:
		s.renderer.ClearWinner()
		s.resetRound()
	case Poll:
		s.poll()
	case ReloadExclusions:
		s.refreshExclusions()
	}
}

// onLoop hands fn to the loop from another goroutine
func (s *Screen) onLoop(fn func()) {
	select {
	case s.results <- fn:
	case <-s.ctx.Done():
	}
}

func (s *Screen) poll() {
	if s.exclusionsStale {
		// The last exclusion fetch failed or was deferred
		s.refreshExclusions()
	}
	s.fetch("snapshot", func(ctx context.Context) (func(), error) {
		snap, err := s.api.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return func() { s.apply(StateObserved{State: snap.State, Latest: snap.Latest}) }, nil
	})
}

func (s *Screen) refreshCollection() {
	s.fetch("photos", func(ctx context.Context) (func(), error) {
		photos, err := s.api.Photos(ctx)
		if err != nil {
			return nil, err
		}
		return func() { s.setPhotos(photos) }, nil
	})
	s.fetch("track", func(ctx context.Context) (func(), error) {
		track, err := s.api.Track(ctx)
		if err != nil {
			return nil, err
		}
		return func() { s.track = *track }, nil
	})
}

func (s *Screen) setPhotos(photos []domain.Photo) {
	s.photos = photos
	s.byOwner = lottery.PhotosByOwner(photos)
	if s.machine != nil && s.model.Phase != PhaseDrawing && !s.machine.Busy() {
		s.machine.Load(s.participants(), s.machine.Excluded())
	}
}

func (s *Screen) participants() []string {
	eligible := lottery.BuildEligibility(s.photos)
	ids := make([]string, len(eligible))
	for i, p := range eligible {
		ids[i] = p.UserID
	}
	return ids
}

func (s *Screen) startAnimation(d Draw) {
	s.cancelAnimation()

	target, ok := d.Target()
	index, size := -1, 0
	if ok {
		index, size = s.targetIndex(d.Mode, target)
	}
	if index < 0 && ok && d.Mode == domain.AnimationMachine && s.retargeted != d.ID {
		// The chamber may be behind the server; reload it once and retry
		s.retargeted = d.ID
		s.retarget(d)
		return
	}
	if index < 0 {
		slog.Warn(LogMsgTargetMissing, "draw_id", d.ID, "mode", d.Mode)
		s.queued = append(s.queued, AnimationFinished{DrawID: d.ID})
		s.refreshCollection()
		return
	}

	sched, err := animation.ForMode(d.Mode)
	if err == nil {
		var steps []animation.Step
		steps, err = sched.Schedule(index, size, s.cfg.Budget, s.rng)
		if err == nil {
			drawID := d.ID
			renderer := animation.RendererFunc(func(step animation.Step, final bool) error {
				return s.call(func() error { return s.renderStep(d, target, step, final) })
			})
			s.playback = animation.Play(s.ctx, steps, renderer, func(animation.Result) {
				s.onLoop(func() { s.playbackDone(drawID) })
			})
			return
		}
	}
	slog.Error(LogMsgScheduleFailed, "draw_id", d.ID, "error", err)
	s.queued = append(s.queued, AnimationFinished{DrawID: d.ID})
}

// retarget refetches photos and exclusions for a machine draw whose winner
// is not in the chamber, then starts the animation again
func (s *Screen) retarget(d Draw) {
	s.exclusionsGen++
	s.fetch("retarget", func(ctx context.Context) (func(), error) {
		photos, err := s.api.Photos(ctx)
		var excluded domain.ExclusionSet
		if err == nil {
			excluded, err = s.api.Exclusions(ctx)
		}
		if err != nil {
			slog.Warn(LogMsgFetchFailed, "fetch", "retarget", "error", err)
			return func() { s.restart(d) }, nil
		}
		return func() {
			if s.model.Current == nil || s.model.Current.ID != d.ID || s.machine == nil {
				return
			}
			s.photos = photos
			s.byOwner = lottery.PhotosByOwner(photos)
			// The server set already holds this draw's winners
			prior := domain.ExclusionSet{}
			for id := range excluded {
				prior[id] = struct{}{}
			}
			for _, w := range d.Winners {
				delete(prior, w.WinnerUserID)
			}
			s.machine.Load(s.participants(), prior)
			s.exclusionsStale = false
			s.restart(d)
		}, nil
	})
}

func (s *Screen) restart(d Draw) {
	if s.model.Current == nil || s.model.Current.ID != d.ID {
		return
	}
	s.startAnimation(d)
	s.drain()
}

// playbackDone runs when the last step has rendered. Machine draws finish
// when the winner's token lands instead.
func (s *Screen) playbackDone(drawID uuid.UUID) {
	if s.awaiting != nil && s.awaiting.drawID == drawID {
		return
	}
	s.apply(AnimationFinished{DrawID: drawID})
}

// targetIndex locates the winner in what the mode displays: chamber tokens
// for the machine, the photo wall otherwise
func (s *Screen) targetIndex(mode domain.AnimationMode, target domain.HistoryRecord) (int, int) {
	if mode == domain.AnimationMachine {
		s.ensureMachine()
		arena := s.machine.Arena()
		return arena.Index(target.WinnerUserID), arena.Len()
	}
	for i, p := range s.photos {
		if p.ID == target.WinnerPhotoID {
			return i, len(s.photos)
		}
	}
	return -1, len(s.photos)
}

// renderStep runs on the loop for each animation step
func (s *Screen) renderStep(d Draw, target domain.HistoryRecord, step animation.Step, final bool) error {
	if s.model.Current == nil || s.model.Current.ID != d.ID {
		return errStaleRender
	}

	if d.Mode == domain.AnimationMachine && s.machine != nil {
		arena := s.machine.Arena()
		if step.Index >= arena.Len() {
			return domain.ErrAnimationTargetMissing
		}
		if final {
			if err := s.machine.Launch(target.WinnerUserID, s.cfg.FlightDuration); err != nil {
				return err
			}
			s.awaiting = &landingWait{drawID: d.ID, userID: target.WinnerUserID}
			return nil
		}
		owner := arena.Token(step.Index).ID
		return s.renderer.Highlight(step, s.photoFor(owner), false)
	}

	if step.Index >= len(s.photos) {
		return domain.ErrAnimationTargetMissing
	}
	return s.renderer.Highlight(step, s.photos[step.Index], final)
}

func (s *Screen) photoFor(userID string) domain.Photo {
	if photos := s.byOwner[userID]; len(photos) > 0 {
		return photos[0]
	}
	return domain.Photo{OwnerUserID: userID}
}

func (s *Screen) cancelAnimation() {
	if s.playback != nil {
		s.playback.Cancel()
		s.playback = nil
	}
	s.awaiting = nil
}

// excludeWinners takes every winner of a shown draw out of the chamber,
// not only the one whose token flew
func (s *Screen) excludeWinners(d Draw) {
	if s.machine == nil {
		return
	}
	ids := make([]string, len(d.Winners))
	for i, w := range d.Winners {
		ids[i] = w.WinnerUserID
	}
	s.machine.Exclude(ids...)
}

// resetRound prepares for the next draw. Physics timers are recreated so
// nothing scheduled for the old round fires into the new one; the chamber
// keeps running while the server's exclusion set is fetched.
func (s *Screen) resetRound() {
	if s.machine == nil {
		return
	}
	s.awaiting = nil
	s.machine.ResetRound()
	s.startFrames()
	s.refreshExclusions()
}

// syncMode creates or drops the machine when the animation mode changes
func (s *Screen) syncMode() {
	wantMachine := s.model.Active && s.model.Mode == domain.AnimationMachine
	switch {
	case wantMachine && s.machine == nil:
		s.ensureMachine()
	case !wantMachine && s.machine != nil && s.model.Phase != PhaseDrawing:
		s.stopFrames()
		s.machine = nil
	}
}

func (s *Screen) ensureMachine() {
	if s.machine != nil {
		return
	}
	viewport := physics.NewViewport(physics.DesignWidth, physics.DesignHeight, s.cfg.Width, s.cfg.Height)
	s.machine = physics.NewMachine(s.track, viewport, s.rng)
	s.machine.Load(s.participants(), nil)
	s.startFrames()
	s.refreshExclusions()
}

// refreshExclusions fetches the server's exclusion set for the chamber. A
// failed fetch leaves the set stale and the next poll tries again.
func (s *Screen) refreshExclusions() {
	if s.machine == nil {
		return
	}
	s.exclusionsStale = true
	s.exclusionsGen++
	gen := s.exclusionsGen
	s.fetch("exclusions", func(ctx context.Context) (func(), error) {
		excluded, err := s.api.Exclusions(ctx)
		if err != nil {
			return nil, err
		}
		return func() {
			if gen == s.exclusionsGen {
				s.applyExclusions(excluded)
			}
		}, nil
	})
}

func (s *Screen) applyExclusions(excluded domain.ExclusionSet) {
	if s.machine == nil || !s.chamberSettled() {
		// Fetched again once the draw has been shown
		return
	}
	s.exclusionsStale = false
	if !sameSet(s.machine.Excluded(), excluded) {
		s.machine.Load(s.participants(), excluded)
	}
}

// chamberSettled reports whether the chamber may be refilled: no token is
// flying and the server has no draw this screen has yet to animate
func (s *Screen) chamberSettled() bool {
	if s.model.Phase == PhaseDrawing || s.machine.Busy() {
		return false
	}
	return s.serverDrawID == nil || *s.serverDrawID == s.model.LastDrawID
}

func (s *Screen) startFrames() {
	s.stopFrames()
	s.frames = time.NewTicker(s.cfg.FrameInterval)
	s.lastFrame = time.Now()
}

func (s *Screen) stopFrames() {
	if s.frames != nil {
		s.frames.Stop()
		s.frames = nil
	}
}

func (s *Screen) stepPhysics(now time.Time) {
	if s.machine == nil {
		return
	}
	dt := now.Sub(s.lastFrame)
	s.lastFrame = now
	if dt <= 0 {
		return
	}
	// A stalled loop should not teleport tokens
	if limit := 6 * physics.FrameDuration; dt > limit {
		dt = limit
	}

	landing := s.machine.Tick(dt)
	s.renderer.Frame(s.machine)
	if landing == nil {
		return
	}
	s.renderer.Landed(*landing)
	if w := s.awaiting; w != nil && w.userID == landing.UserID {
		s.awaiting = nil
		s.apply(AnimationFinished{DrawID: w.drawID})
	}
}

func sameSet(a, b domain.ExclusionSet) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range b {
		if !a.Contains(id) {
			return false
		}
	}
	return true
}
