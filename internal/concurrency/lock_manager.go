package concurrency

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLockTimeout is returned when a lock could not be acquired in time
var ErrLockTimeout = errors.New("lock wait timeout")

// LockManager handles named locks with bounded acquisition
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// getLock returns the one-slot semaphore for the given key
func (lm *LockManager) getLock(key string) chan struct{} {
	lock, _ := lm.locks.LoadOrStore(key, make(chan struct{}, 1))
	return lock.(chan struct{})
}

// Acquire blocks until the named lock is held, timeout elapses or ctx is done.
// A non-positive timeout waits only on ctx. The returned release func is
// idempotent.
func (lm *LockManager) Acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	sem := lm.getLock(key)

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case sem <- struct{}{}:
	case <-timer:
		return nil, ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-sem })
	}, nil
}
