package lottery

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// memoryRepo is a stateful repository.Lottery used for multi-draw scenarios
type memoryRepo struct {
	mu      sync.Mutex
	state   domain.LotteryState
	history []domain.HistoryRecord
}

func newMemoryRepo(state domain.LotteryState) *memoryRepo {
	return &memoryRepo{state: state}
}

func (r *memoryRepo) bump() *domain.LotteryState {
	r.state.Version++
	s := r.state
	return &s
}

func (r *memoryRepo) GetState(ctx context.Context) (*domain.LotteryState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state
	return &s, nil
}

func (r *memoryRepo) UpdateState(ctx context.Context, u domain.ControlUpdate) (*domain.LotteryState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = u.Apply(r.state)
	return r.bump(), nil
}

func (r *memoryRepo) SetDrawing(ctx context.Context, drawing bool) (*domain.LotteryState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.IsDrawing = drawing
	return r.bump(), nil
}

func (r *memoryRepo) ResetState(ctx context.Context) (*domain.LotteryState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.IsDrawing && r.state.CurrentDrawID == nil {
		s := r.state
		return &s, nil
	}
	r.state.IsDrawing = false
	r.state.CurrentDrawID = nil
	return r.bump(), nil
}

func (r *memoryRepo) ListHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.HistoryRecord, 0, len(r.history))
	for i := len(r.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.history[i])
	}
	return out, nil
}

func (r *memoryRepo) GetHistory(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.history {
		if h.ID == id {
			rec := h
			return &rec, nil
		}
	}
	return nil, domain.ErrHistoryNotFound
}

func (r *memoryRepo) DeleteHistory(ctx context.Context, id uuid.UUID) (*domain.LotteryState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.history {
		if h.ID == id {
			r.history = append(r.history[:i], r.history[i+1:]...)
			if r.state.CurrentDrawID != nil && *r.state.CurrentDrawID == id {
				r.state.CurrentDrawID = nil
				return r.bump(), nil
			}
			return nil, nil
		}
	}
	return nil, domain.ErrHistoryNotFound
}

func (r *memoryRepo) ClearHistory(ctx context.Context) (int64, *domain.LotteryState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.history))
	r.history = nil
	r.state.CurrentDrawID = nil
	return n, r.bump(), nil
}

func (r *memoryRepo) ListWinnerUserIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.history))
	for _, h := range r.history {
		ids = append(ids, h.WinnerUserID)
	}
	return ids, nil
}

func (r *memoryRepo) BeginDrawTx(ctx context.Context) (repository.DrawTx, error) {
	return &memoryTx{repo: r}, nil
}

type memoryTx struct {
	repo    *memoryRepo
	pending []domain.HistoryRecord
	drawID  *uuid.UUID
	done    bool
}

func (t *memoryTx) InsertHistory(ctx context.Context, records []domain.HistoryRecord) error {
	t.pending = append(t.pending, records...)
	return nil
}

func (t *memoryTx) CompleteDraw(ctx context.Context, drawID uuid.UUID) (*domain.LotteryState, error) {
	t.drawID = &drawID
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	s := t.repo.state
	s.CurrentDrawID = &drawID
	s.IsDrawing = false
	s.Version++
	return &s, nil
}

func (t *memoryTx) Commit(ctx context.Context) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	t.repo.history = append(t.repo.history, t.pending...)
	t.repo.state.CurrentDrawID = t.drawID
	t.repo.state.IsDrawing = false
	t.repo.state.Version++
	t.done = true
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	return nil
}
