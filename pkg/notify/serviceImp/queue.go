package serviceImp

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/metrics"
	"agrimanage/pkg/notify/service"
)

const DefaultTTL = 3 * time.Second

// Timer is the part of *time.Timer the queue needs.
type Timer interface{ Stop() bool }

// AfterFunc schedules f after d. time.AfterFunc in production.
type AfterFunc func(d time.Duration, f func()) Timer

type entry struct {
	n     entities.Notification
	timer Timer
}

// Queue holds notifications oldest first. Every entry removes itself after
// the TTL unless it was dismissed before.
type Queue struct {
	mu      sync.Mutex
	entries []*entry
	closed  bool

	ttl      time.Duration
	after    AfterFunc
	now      func() time.Time
	onRemove func(n entities.Notification, reason string)
	log      *zap.Logger
}

var _ service.Notifier = (*Queue)(nil)

type Option func(*Queue)

func WithAfterFunc(f AfterFunc) Option { return func(q *Queue) { q.after = f } }

func WithClock(now func() time.Time) Option { return func(q *Queue) { q.now = now } }

// WithOnRemove registers a hook called with reason "expired" or "dismissed".
// It runs outside the queue lock.
func WithOnRemove(f func(n entities.Notification, reason string)) Option {
	return func(q *Queue) { q.onRemove = f }
}

func New(ttl time.Duration, log *zap.Logger, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	q := &Queue{
		ttl: ttl,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
		log: log,
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

func (q *Queue) TTL() time.Duration { return q.ttl }

func (q *Queue) Push(message string, kind entities.NotificationKind) entities.Notification {
	if kind == "" {
		kind = entities.NotifyInfo
	}
	now := q.now()
	n := entities.Notification{
		ID:        newID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	metrics.IncNotification(string(kind))
	q.log.Debug("notification", zap.String("id", n.ID), zap.String("kind", string(kind)), zap.String("message", message))

	q.mu.Lock()
	defer q.mu.Unlock()
	e := &entry{n: n}
	q.entries = append(q.entries, e)
	if !q.closed {
		id := n.ID
		e.timer = q.after(q.ttl, func() { q.expire(id) })
	}
	return n
}

// Dismiss removes id and cancels its expiry. It reports whether id was present.
func (q *Queue) Dismiss(id string) bool {
	n, ok := q.remove(id, true)
	if ok && q.onRemove != nil {
		q.onRemove(n, "dismissed")
	}
	return ok
}

func (q *Queue) expire(id string) {
	n, ok := q.remove(id, false)
	if ok && q.onRemove != nil {
		q.onRemove(n, "expired")
	}
}

func (q *Queue) remove(id string, stop bool) (entities.Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.n.ID != id {
			continue
		}
		if stop && e.timer != nil {
			e.timer.Stop()
		}
		q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
		return e.n, true
	}
	return entities.Notification{}, false
}

// List returns a snapshot, oldest first.
func (q *Queue) List() []entities.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]entities.Notification, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.n
	}
	return out
}

// Close stops all pending timers and empties the queue. Pushes after Close
// are kept until dismissed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	q.entries = nil
	q.closed = true
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
