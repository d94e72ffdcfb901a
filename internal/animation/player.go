package animation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Renderer draws one highlight. Returning domain.ErrAnimationTargetMissing
// means the visual for that index is gone; playback then skips ahead and completes.
type Renderer interface {
	Render(step Step, final bool) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(step Step, final bool) error

func (f RendererFunc) Render(step Step, final bool) error { return f(step, final) }

// Result reports how a playback finished
type Result struct {
	FinalIndex int
	Rendered   int
	Skipped    bool
}

// Playback is one running animation
type Playback struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Play runs steps on timers relative to now. onDone is called exactly once
// when the last step has run or rendering was skipped, and never after Cancel.
func Play(ctx context.Context, steps []Step, renderer Renderer, onDone func(Result)) *Playback {
	ctx, cancel := context.WithCancel(ctx)
	p := &Playback{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	slog.Debug(LogMsgPlaybackStarted, "steps", len(steps))
	go p.run(ctx, steps, renderer, onDone)
	return p
}

func (p *Playback) run(ctx context.Context, steps []Step, renderer Renderer, onDone func(Result)) {
	defer close(p.done)
	defer p.Cancel()

	start := time.Now()

	result := Result{FinalIndex: -1}
	if len(steps) > 0 {
		result.FinalIndex = steps[len(steps)-1].Index
	}

	for i, step := range steps {
		timer := time.NewTimer(time.Until(start.Add(step.At)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		err := renderer.Render(step, i == len(steps)-1)
		if errors.Is(err, domain.ErrAnimationTargetMissing) {
			slog.Warn(LogMsgTargetMissing, "index", step.Index, "step", i, "remaining", len(steps)-i-1)
			result.Skipped = true
			break
		}
		if err != nil {
			slog.Warn(LogMsgRenderFailed, "index", step.Index, "error", err)
		}
		result.Rendered++
	}

	if ctx.Err() != nil {
		return
	}
	if onDone != nil {
		onDone(result)
	}
}

// Cancel stops the timers. onDone will not be called unless it already started.
func (p *Playback) Cancel() {
	p.once.Do(p.cancel)
}

// Wait blocks until the playback goroutine has exited
func (p *Playback) Wait() {
	<-p.done
}

// Done is closed when the playback goroutine exits
func (p *Playback) Done() <-chan struct{} {
	return p.done
}
