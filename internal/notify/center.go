// Package notify owns the ephemeral toast notifications reporting the
// outcome of external calls and local actions.
package notify

import (
	"sync"
	"time"

	"github.com/KUBYKA-DEV/content-scrape/internal/logger"
	"github.com/KUBYKA-DEV/content-scrape/internal/metrics"
	"github.com/KUBYKA-DEV/content-scrape/internal/models"
	"github.com/KUBYKA-DEV/content-scrape/internal/sse"
)

// Publisher pushes toast lifecycle events to the dashboard stream.
type Publisher interface {
	Publish(event sse.Event) error
}

// Center holds the live toasts. Every toast gets its own removal timer for
// a fixed visible lifetime; toasts stack in arrival order, are independently
// timed, and are never deduplicated.
type Center struct {
	mu     sync.Mutex
	toasts []models.Toast
	timers map[int64]*time.Timer
	lastID int64
	closed bool

	ttl       time.Duration
	publisher Publisher
	logger    logger.Logger
}

// NewCenter creates a toast center whose toasts live for ttl.
// The publisher may be nil when no event stream is attached.
func NewCenter(ttl time.Duration, pub Publisher, log logger.Logger) *Center {
	return &Center{
		timers:    make(map[int64]*time.Timer),
		ttl:       ttl,
		publisher: pub,
		logger:    log,
	}
}

// Notify appends a toast with a fresh monotonic id and schedules its removal.
func (c *Center) Notify(message string, kind models.ToastKind) models.Toast {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return models.Toast{}
	}

	// Time-based, bumped when two toasts land in the same millisecond.
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id

	toast := models.Toast{ID: id, Message: message, Kind: kind}
	c.toasts = append(c.toasts, toast)
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.expire(id) })

	c.mu.Unlock()

	metrics.ToastsTotal.WithLabelValues(string(kind)).Inc()
	c.logger.Debug("Toast shown",
		logger.String("kind", string(kind)),
		logger.String("message", message),
	)
	c.publish(sse.Event{Type: sse.EventTypeToastShown, Data: toast})

	return toast
}

// Active returns the currently visible toasts in arrival order.
func (c *Center) Active() []models.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Close cancels all pending removal timers. Used on shutdown so no timer
// fires against a dead center.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.toasts = nil
}

// expire removes a toast whose lifetime elapsed.
func (c *Center) expire(id int64) {
	c.mu.Lock()

	if _, ok := c.timers[id]; !ok {
		c.mu.Unlock()
		return
	}
	delete(c.timers, id)

	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			break
		}
	}

	c.mu.Unlock()

	c.publish(sse.Event{Type: sse.EventTypeToastExpired, Data: map[string]int64{"id": id}})
}

func (c *Center) publish(event sse.Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(event); err != nil {
		c.logger.Debug("Toast event dropped", logger.Error(err))
	}
}
