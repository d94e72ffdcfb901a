package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WeddingBot_Go/internal/repository"
)

// ChangeHandler receives row changes written by other processes
type ChangeHandler func(ctx context.Context, change repository.RowChange)

// ChangeListener holds one pooled connection in LISTEN mode and forwards
// notifications from the lottery triggers. Changes whose origin matches this
// process are dropped since the writer already published them.
type ChangeListener struct {
	db      *pgxpool.Pool
	channel string
	origin  string
	handler ChangeHandler

	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewChangeListener creates a listener. origin must equal the application
// name this process sets on its pool.
func NewChangeListener(db *pgxpool.Pool, origin string, handler ChangeHandler) *ChangeListener {
	return &ChangeListener{
		db:         db,
		channel:    ChangeFeedChannel,
		origin:     origin,
		handler:    handler,
		minBackoff: ListenerMinBackoff,
		maxBackoff: ListenerMaxBackoff,
	}
}

// Run listens until ctx is cancelled, reconnecting with exponential backoff
func (l *ChangeListener) Run(ctx context.Context) {
	backoff := l.minBackoff
	for {
		connected, err := l.listen(ctx)
		if ctx.Err() != nil {
			slog.Default().Info(LogMsgListenerStopped)
			return
		}
		if connected {
			backoff = l.minBackoff
		}
		slog.Default().Warn(LogMsgListenerDisconnect, "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			slog.Default().Info(LogMsgListenerStopped)
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, l.maxBackoff)
	}
}

// listen returns whether LISTEN succeeded before the connection failed
func (l *ChangeListener) listen(ctx context.Context) (bool, error) {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire listener connection: %w", err)
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if _, err := conn.Exec(cleanupCtx, "UNLISTEN *"); err != nil {
			slog.Default().Debug(LogMsgFailedToUnlisten, "error", err)
		}
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return false, fmt.Errorf("listen on %s: %w", l.channel, err)
	}
	slog.Default().Info(LogMsgListenerStarted, "channel", l.channel, "origin", l.origin)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return true, err
		}
		change, ok := l.decode(n.Payload)
		if !ok || change.Origin == l.origin {
			continue
		}
		l.handler(ctx, change)
	}
}

func (l *ChangeListener) decode(payload string) (repository.RowChange, bool) {
	var change repository.RowChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		slog.Default().Warn(LogMsgListenerBadPayload, "error", err, "payload", payload)
		return change, false
	}
	return change, true
}
