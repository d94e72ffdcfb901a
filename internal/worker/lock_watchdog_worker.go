package worker

import (
	"context"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// LockReleaser is the part of the lottery service the watchdog needs
type LockReleaser interface {
	GetState(ctx context.Context) (*domain.LotteryState, error)
	ReleaseStaleLock(ctx context.Context, maxAge time.Duration) (bool, error)
}

// LockWatchdogWorker releases a draw lock left behind by a crashed draw.
// It arms a timer whenever a state event shows isDrawing and disarms it when
// the lock clears.
type LockWatchdogWorker struct {
	timer   deadlineTimer
	service LockReleaser
	maxAge  time.Duration
}

// NewLockWatchdogWorker creates a watchdog that releases locks older than maxAge
func NewLockWatchdogWorker(service LockReleaser, maxAge time.Duration) *LockWatchdogWorker {
	return &LockWatchdogWorker{service: service, maxAge: maxAge}
}

// Start arms the timer if the lottery is already locked
func (w *LockWatchdogWorker) Start(ctx context.Context) {
	state, err := w.service.GetState(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgWatchdogStartupFailed, "error", err)
		return
	}
	w.observe(ctx, *state)
}

// Subscribe subscribes the worker to state changes
func (w *LockWatchdogWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.LotteryStateChanged, w.handleStateChanged)
}

func (w *LockWatchdogWorker) handleStateChanged(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.StatePayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgWatchdogPayloadInvalid, "error", err)
		return nil
	}
	w.observe(ctx, payload.State)
	return nil
}

func (w *LockWatchdogWorker) observe(ctx context.Context, state domain.LotteryState) {
	if !state.IsDrawing {
		if w.timer.disarm() {
			logger.FromContext(ctx).Debug(LogMsgWatchdogDisarmed)
		}
		return
	}

	delay := w.maxAge - time.Since(state.UpdatedAt)
	if delay < 0 {
		delay = 0
	}
	w.timer.arm(delay, DefaultJobTimeout, w.release)
	logger.FromContext(ctx).Debug(LogMsgWatchdogArmed, "delay", delay, "version", state.Version)
}

func (w *LockWatchdogWorker) release(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWatchdogFired)
	if _, err := w.service.ReleaseStaleLock(ctx, w.maxAge); err != nil {
		log.Error(LogMsgWatchdogReleaseFailed, "error", err)
	}
}

// Shutdown cancels the pending timer and waits for an in-flight release
func (w *LockWatchdogWorker) Shutdown(ctx context.Context) error {
	return w.timer.shutdown(ctx, watchdogName)
}
