// Package leaktest provides goroutine leak checks for tests that start worker
// pools, publishers or database pools.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleInterval = 10 * time.Millisecond
	defaultWait    = 500 * time.Millisecond
)

// GoroutineChecker compares the goroutine count before and after a test body
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	time.Sleep(settleInterval)
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check fails the test if, after waiting for stragglers to exit, more than
// tolerance goroutines remain above the recorded baseline.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	deadline := time.Now().Add(defaultWait)
	for {
		runtime.Gosched()
		after := runtime.NumGoroutine()
		if after <= target {
			return
		}
		if time.Now().After(deadline) {
			g.t.Errorf("Potential goroutine leak: before=%d, after=%d, tolerance=%d", g.before, after, tolerance)
			return
		}
		time.Sleep(settleInterval)
	}
}

// CheckNoGoroutineLeak runs fn and checks that every goroutine it started has exited
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
