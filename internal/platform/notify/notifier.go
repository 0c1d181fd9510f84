package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
)

// Notification is one operator-facing message kept for the UI to poll.
type Notification struct {
	Kind       portssvc.NotificationKind `json:"kind"`
	Message    string                    `json:"message"`
	DurationMs int64                     `json:"durationMs"`
	CreatedAt  time.Time                 `json:"createdAt"`
}

// Feed is the notification sink: it logs every message and keeps a bounded
// ring of recent notifications the UI polls. Notify never blocks the caller.
type Feed struct {
	logger *slog.Logger
	mu     sync.Mutex
	ring   []Notification
	max    int
}

// NewFeed creates a notification feed retaining up to max recent messages.
func NewFeed(logger *slog.Logger, max int) *Feed {
	if max < 1 {
		max = 50
	}
	return &Feed{logger: logger, max: max}
}

var _ portssvc.Notifier = (*Feed)(nil)

// Notify records an operator notification.
func (f *Feed) Notify(kind portssvc.NotificationKind, message string, duration time.Duration) {
	level := slog.LevelInfo
	switch kind {
	case portssvc.NotifyWarning:
		level = slog.LevelWarn
	case portssvc.NotifyError:
		level = slog.LevelError
	}
	f.logger.Log(context.Background(), level, "Operator notification", slog.String("kind", string(kind)), slog.String("message", message))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ring = append(f.ring, Notification{
		Kind:       kind,
		Message:    message,
		DurationMs: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	})
	if len(f.ring) > f.max {
		f.ring = f.ring[len(f.ring)-f.max:]
	}
}

// Recent returns the retained notifications, newest last.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.ring))
	copy(out, f.ring)
	return out
}
