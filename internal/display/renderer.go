package display

import (
	"log/slog"

	"github.com/osse101/WeddingBot_Go/internal/animation"
	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/physics"
)

// LogRenderer is a headless renderer that reports what a screen would show
type LogRenderer struct {
	// FrameLogEvery logs one physics frame in this many; 0 disables frame logs
	FrameLogEvery int

	frames int
}

func (r *LogRenderer) ShowPhase(phase Phase) {
	slog.Info("Display phase", "phase", phase.String())
}

func (r *LogRenderer) Highlight(step animation.Step, photo domain.Photo, final bool) error {
	slog.Debug("Display highlight",
		"index", step.Index,
		"at", step.At,
		"photo_id", photo.ID,
		"owner", photo.DisplayName,
		"final", final)
	return nil
}

func (r *LogRenderer) ShowWinner(draw Draw) {
	for _, w := range draw.Winners {
		slog.Info("Display winner",
			"draw_id", draw.ID,
			"winner", w.WinnerDisplayName,
			"user_id", w.WinnerUserID,
			"photo_url", w.WinnerPhotoURL)
	}
}

func (r *LogRenderer) ClearWinner() {
	slog.Info("Display cleared")
}

func (r *LogRenderer) Frame(m *physics.Machine) {
	r.frames++
	if r.FrameLogEvery <= 0 || r.frames%r.FrameLogEvery != 0 {
		return
	}
	args := []any{"frame", r.frames, "tokens", m.Arena().Len(), "podium", len(m.Podium()), "bursts", len(m.Bursts())}
	if id, pos, ok := m.Flying(); ok {
		args = append(args, "flying", id, "x", pos.X, "y", pos.Y)
	}
	slog.Debug("Display frame", args...)
}

func (r *LogRenderer) Landed(landing physics.Landing) {
	slog.Info("Display token landed", "user_id", landing.UserID, "slot", landing.Slot)
}
