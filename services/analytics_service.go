package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"gorm.io/gorm"
)

const DefaultAnalyticsQueueSize = 1024

// AnalyticsRecorder persists captured events on a background worker. The
// queue is bounded; Enqueue never blocks and drops events when it is full.
type AnalyticsRecorder struct {
	db    *gorm.DB
	queue chan models.AnalyticsEvent

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}

	dropped atomic.Int64
	stored  atomic.Int64
}

func NewAnalyticsRecorder(db *gorm.DB, size int) *AnalyticsRecorder {
	if size <= 0 {
		size = DefaultAnalyticsQueueSize
	}
	return &AnalyticsRecorder{
		db:    db,
		queue: make(chan models.AnalyticsEvent, size),
		done:  make(chan struct{}),
	}
}

// Start launches the worker. Call it once.
func (r *AnalyticsRecorder) Start() {
	go func() {
		defer close(r.done)
		for ev := range r.queue {
			if err := r.db.Create(&ev).Error; err != nil {
				config.Log.Warnw("analytics event not stored", "event", ev.Event, "error", err)
				continue
			}
			r.stored.Add(1)
		}
	}()
}

// Enqueue reports whether the event was accepted.
func (r *AnalyticsRecorder) Enqueue(ev models.AnalyticsEvent) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return false
	}
	select {
	case r.queue <- ev:
		return true
	default:
		n := r.dropped.Add(1)
		config.Log.Warnw("analytics queue full, event dropped", "event", ev.Event, "dropped_total", n)
		return false
	}
}

// Stop closes the queue and waits for the worker to drain it or for ctx to
// end, whichever comes first.
func (r *AnalyticsRecorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *AnalyticsRecorder) Dropped() int64 { return r.dropped.Load() }
func (r *AnalyticsRecorder) Stored() int64  { return r.stored.Load() }

var analyticsRecorder *AnalyticsRecorder

func InitAnalyticsRecorder(db *gorm.DB, size int) *AnalyticsRecorder {
	analyticsRecorder = NewAnalyticsRecorder(db, size)
	analyticsRecorder.Start()
	return analyticsRecorder
}

func GetAnalyticsRecorder() *AnalyticsRecorder {
	return analyticsRecorder
}

func SetAnalyticsRecorder(r *AnalyticsRecorder) {
	analyticsRecorder = r
}
