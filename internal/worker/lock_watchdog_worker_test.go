package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/event"
)

type MockLockReleaser struct {
	mock.Mock
}

func (m *MockLockReleaser) GetState(ctx context.Context) (*domain.LotteryState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryState), args.Error(1)
}

func (m *MockLockReleaser) ReleaseStaleLock(ctx context.Context, maxAge time.Duration) (bool, error) {
	args := m.Called(ctx, maxAge)
	return args.Bool(0), args.Error(1)
}

func lockedState(since time.Time) domain.LotteryState {
	s := domain.DefaultLotteryState()
	s.IsDrawing = true
	s.UpdatedAt = since
	return s
}

func TestLockWatchdog_ReleasesStaleLock(t *testing.T) {
	svc := new(MockLockReleaser)
	released := make(chan struct{}, 1)
	svc.On("ReleaseStaleLock", mock.Anything, 50*time.Millisecond).
		Run(func(mock.Arguments) { released <- struct{}{} }).
		Return(true, nil)

	w := NewLockWatchdogWorker(svc, 50*time.Millisecond)
	bus := event.NewMemoryBus()
	w.Subscribe(bus)

	require.NoError(t, bus.Publish(context.Background(), event.NewStateChangedEvent(lockedState(time.Now()), event.SourceService)))

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("watchdog did not fire")
	}
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestLockWatchdog_DisarmedWhenLockClears(t *testing.T) {
	svc := new(MockLockReleaser)
	w := NewLockWatchdogWorker(svc, 50*time.Millisecond)
	bus := event.NewMemoryBus()
	w.Subscribe(bus)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, event.NewStateChangedEvent(lockedState(time.Now()), event.SourceService)))
	require.NoError(t, bus.Publish(ctx, event.NewStateChangedEvent(domain.DefaultLotteryState(), event.SourceService)))

	time.Sleep(120 * time.Millisecond)
	svc.AssertNotCalled(t, "ReleaseStaleLock", mock.Anything, mock.Anything)
	require.NoError(t, w.Shutdown(ctx))
}

func TestLockWatchdog_StartWithOldLockFiresImmediately(t *testing.T) {
	svc := new(MockLockReleaser)
	old := lockedState(time.Now().Add(-time.Hour))
	released := make(chan struct{}, 1)
	svc.On("GetState", mock.Anything).Return(&old, nil)
	svc.On("ReleaseStaleLock", mock.Anything, time.Minute).
		Run(func(mock.Arguments) { released <- struct{}{} }).
		Return(true, nil)

	w := NewLockWatchdogWorker(svc, time.Minute)
	w.Start(context.Background())

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("watchdog did not release the old lock")
	}
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestLockWatchdog_ShutdownCancelsTimer(t *testing.T) {
	svc := new(MockLockReleaser)
	w := NewLockWatchdogWorker(svc, 30*time.Millisecond)
	w.observe(context.Background(), lockedState(time.Now()))

	require.NoError(t, w.Shutdown(context.Background()))
	time.Sleep(60 * time.Millisecond)
	svc.AssertNotCalled(t, "ReleaseStaleLock", mock.Anything, mock.Anything)
	assert.False(t, w.timer.armed())
}

func TestLockWatchdog_RearmReplacesDeadline(t *testing.T) {
	svc := new(MockLockReleaser)
	released := make(chan struct{}, 1)
	svc.On("ReleaseStaleLock", mock.Anything, 80*time.Millisecond).
		Run(func(mock.Arguments) { released <- struct{}{} }).
		Return(true, nil)

	w := NewLockWatchdogWorker(svc, 80*time.Millisecond)
	ctx := context.Background()

	// A new draw takes the lock 60ms later; the first deadline must not fire
	w.observe(ctx, lockedState(time.Now()))
	time.Sleep(60 * time.Millisecond)
	retaken := time.Now()
	w.observe(ctx, lockedState(retaken))

	select {
	case <-released:
		assert.GreaterOrEqual(t, time.Since(retaken), 70*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("watchdog did not fire for the re-taken lock")
	}
	require.NoError(t, w.Shutdown(ctx))
	svc.AssertNumberOfCalls(t, "ReleaseStaleLock", 1)
}

func TestDeadlineTimer_ShutdownWaitsForRunningJob(t *testing.T) {
	var d deadlineTimer
	started := make(chan struct{})
	finished := make(chan struct{})
	d.arm(0, time.Second, func(ctx context.Context) {
		close(started)
		time.Sleep(40 * time.Millisecond)
		close(finished)
	})
	<-started

	require.NoError(t, d.shutdown(context.Background(), "test"))
	select {
	case <-finished:
	default:
		t.Fatal("shutdown returned before the running job finished")
	}

	// Closed timers ignore new work
	d.arm(0, time.Second, func(context.Context) { t.Error("job ran after shutdown") })
	time.Sleep(20 * time.Millisecond)
	assert.False(t, d.armed())
}

func TestDeadlineTimer_ShutdownTimeout(t *testing.T) {
	var d deadlineTimer
	started := make(chan struct{})
	release := make(chan struct{})
	d.arm(0, time.Second, func(ctx context.Context) {
		close(started)
		<-release
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.shutdown(ctx, "test"), context.DeadlineExceeded)
	close(release)
}
