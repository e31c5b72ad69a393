package event

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// Publisher delivers events without reporting failure to the caller
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
	DeadLetter(event Event, cause error)
}

type retryEntry struct {
	event   Event
	lastErr error
}

// ResilientPublisher wraps a Bus with background retries and a dead-letter file.
// The first attempt is made inline; failures are queued and retried by a
// single worker with exponential backoff.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

var _ Publisher = (*ResilientPublisher)(nil)

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry attempts delivery once and queues a retry on failure.
// It never blocks on the retry queue: when the queue is full the event is
// dead-lettered immediately.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, LogFieldEventType, event.Type, LogFieldError, err)

	select {
	case rp.retryQueue <- retryEntry{event: event, lastErr: err}:
	default:
		log.Error(LogMsgRetryQueueFull, LogFieldEventType, event.Type)
		rp.writeDeadLetter(event, 1, err)
	}
}

// Subscribe delegates to the inner bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-rp.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case entry := <-rp.retryQueue:
			rp.retry(ctx, entry)
		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

// retry waits retryDelay, then makes up to maxRetries attempts with delays
// doubling from 2*retryDelay. Cancellation dead-letters the event.
func (rp *ResilientPublisher) retry(ctx context.Context, entry retryEntry) {
	timer := time.NewTimer(rp.retryDelay)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
		rp.writeDeadLetter(entry.event, 1, entry.lastErr)
		return
	}

	attempts := 1
	err := retry.Do(
		func() error {
			attempts++
			return rp.bus.Publish(ctx, entry.event)
		},
		retry.Attempts(uint(rp.maxRetries)),
		retry.Delay(2*rp.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, LogFieldEventType, entry.event.Type, LogFieldAttempts, attempts)
		return
	}

	logger.Warn(LogMsgEventRetryExhausted, LogFieldEventType, entry.event.Type, LogFieldAttempts, attempts)
	rp.writeDeadLetter(entry.event, attempts, err)
}

// drain makes one final attempt for each queued event
func (rp *ResilientPublisher) drain() {
	for {
		select {
		case entry := <-rp.retryQueue:
			if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
				rp.writeDeadLetter(entry.event, 2, err)
			}
		default:
			return
		}
	}
}

// DeadLetter records an event that was never attempted, e.g. when the delivery
// queue rejected it
func (rp *ResilientPublisher) DeadLetter(event Event, cause error) {
	rp.writeDeadLetter(event, 0, cause)
}

func (rp *ResilientPublisher) writeDeadLetter(event Event, attempts int, err error) {
	if werr := rp.deadLetter.Write(event, attempts, err); werr != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, LogFieldEventType, event.Type, LogFieldError, werr)
	}
}

// Shutdown stops the retry worker, flushes the queue and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.stopOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return rp.deadLetter.Close()
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
