package notify

import (
	"strconv"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/timer"
	"go.uber.org/zap"
)

// DefaultTTL is how long a message stays on screen.
const DefaultTTL = 5 * time.Second

// Counter is told about every pushed message (metrics).
type Counter interface {
	IncNotification(kind string)
}

// Queue holds transient user-facing messages. Each one removes itself after
// the TTL unless dismissed earlier.
type Queue struct {
	mu      sync.RWMutex
	items   []domain.Notification
	lastID  int64
	ttl     time.Duration
	clock   timer.Clock
	timers  *timer.Group
	counter Counter
	logger  *logger.Logger
}

func NewQueue(clock timer.Clock, ttl time.Duration, log *logger.Logger, counter Counter) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:     ttl,
		clock:   clock,
		timers:  timer.NewGroup(clock),
		counter: counter,
		logger:  log.Named("NotificationQueue"),
	}
}

// Push appends a message and schedules its removal. Ids are the push time in
// milliseconds, bumped when two pushes land in the same millisecond.
func (q *Queue) Push(message string, kind domain.Kind) domain.Notification {
	now := q.clock.Now()

	q.mu.Lock()
	id := now.UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id
	n := domain.Notification{ID: id, Message: message, Kind: kind, CreatedAt: now}
	q.items = append(q.items, n)
	q.mu.Unlock()

	q.timers.Start(timerKey(id), q.ttl, func() { q.remove(id) })

	if q.counter != nil {
		q.counter.IncNotification(string(kind))
	}
	q.logger.Debug("notification pushed", zap.Int64("id", id), zap.String("kind", string(kind)))
	return n
}

// Dismiss removes a message right away.
func (q *Queue) Dismiss(id int64) bool {
	q.timers.Stop(timerKey(id))
	return q.remove(id)
}

// List returns the live messages, oldest first.
func (q *Queue) List() []domain.Notification {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Queue) Close() {
	q.timers.StopAll()
}

func (q *Queue) remove(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func timerKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
