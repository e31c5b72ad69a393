package worker

import (
	"context"
	"errors"

	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// ErrEventQueueFull is recorded on events the pool could not accept
var ErrEventQueueFull = errors.New("event queue full")

// publishJob hands one event to the resilient publisher
type publishJob struct {
	publisher event.Publisher
	event     event.Event
	requestID string
}

func (j *publishJob) Process(ctx context.Context) error {
	if j.requestID != "" {
		ctx = logger.WithRequestID(ctx, j.requestID)
	}
	j.publisher.PublishWithRetry(ctx, j.event)
	return nil
}

// EventDispatcher publishes events off the request path through the pool
type EventDispatcher struct {
	pool      *Pool
	publisher event.Publisher
}

// NewEventDispatcher creates a dispatcher over pool and publisher
func NewEventDispatcher(pool *Pool, publisher event.Publisher) *EventDispatcher {
	return &EventDispatcher{pool: pool, publisher: publisher}
}

// Dispatch queues evt for delivery without blocking the caller. When the queue
// is full or the pool is stopped the event goes straight to the dead-letter file.
func (d *EventDispatcher) Dispatch(ctx context.Context, evt event.Event) {
	job := &publishJob{
		publisher: d.publisher,
		event:     evt,
		requestID: logger.GetRequestID(ctx),
	}
	if d.pool.TryEnqueue(job) {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventQueueFull, "event_type", evt.Type)
	d.publisher.DeadLetter(evt, ErrEventQueueFull)
}
