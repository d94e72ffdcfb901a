package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/logger"
)

// deadlineTimer runs one job after a delay. Arming again replaces the
// pending job, and a replaced timer that already fired does nothing, so a
// lock re-taken just before its old deadline is never released early.
type deadlineTimer struct {
	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
	wg     sync.WaitGroup
}

// arm schedules job to run after delay with its own timeout context
func (d *deadlineTimer) arm(delay, timeout time.Duration, job func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		if d.closed || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.wg.Add(1)
		d.mu.Unlock()

		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		job(ctx)
	})
}

// disarm cancels the pending job and reports whether one was pending
func (d *deadlineTimer) disarm() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

func (d *deadlineTimer) armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// shutdown cancels the pending job, refuses new ones and waits for a job
// that is already running
func (d *deadlineTimer) shutdown(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWorkerShuttingDown, "worker", name)

	if d.disarm() {
		log.Info(LogMsgWorkerCancelledPending, "worker", name)
	}
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgWorkerShutdownComplete, "worker", name)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerShutdownTimeout, "worker", name)
		return ctx.Err()
	}
}
