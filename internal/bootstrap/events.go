package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/CaseDrop_Go/internal/config"
	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/worker"
)

// EventSystem is the post-commit delivery path: dispatcher, worker pool,
// resilient publisher and in-process bus
type EventSystem struct {
	Bus        *event.MemoryBus
	Publisher  *event.ResilientPublisher
	Pool       *worker.Pool
	Dispatcher *worker.EventDispatcher
}

// InitializeEventSystem creates the event bus, the resilient publisher with
// its dead-letter file and the worker pool that feeds it. The pool is started
// before returning.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	// Ensure dead-letter directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, cfg.EventMaxRetries, cfg.EventRetryDelay, cfg.EventDeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	pool := worker.NewPool(cfg.EventWorkers, cfg.EventQueueSize)
	pool.Start()

	slog.Info(LogMsgEventSystemInitialized,
		"workers", cfg.EventWorkers,
		"queue_size", cfg.EventQueueSize,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return &EventSystem{
		Bus:        bus,
		Publisher:  publisher,
		Pool:       pool,
		Dispatcher: worker.NewEventDispatcher(pool, publisher),
	}, nil
}
