package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu           sync.Mutex
	calls        []time.Time
	shouldFail   func(attempt int) bool
	publishDelay time.Duration
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, time.Now())
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.publishDelay > 0 {
		time.Sleep(m.publishDelay)
	}
	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockBus) CallTimes() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Time{}, m.calls...)
}

var testCaseID = uuid.MustParse("6f1d3c2a-5b4e-4f7a-9c8d-1e2f3a4b5c6d")

func testEvent() Event {
	return NewCaseOpenedEvent(CaseOpenedPayloadV1{CaseID: testCaseID, ItemID: 1, CaseTemplateID: 1})
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	return entries
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, tmpFile)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), testEvent())
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, tmpFile))
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(attempt int) bool { return attempt == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), testEvent())

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, readDeadLetters(t, tmpFile))
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), testEvent())

	// initial + 3 retries
	require.Eventually(t, func() bool {
		return len(readDeadLetters(t, tmpFile)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 4, bus.CallCount())
	entry := readDeadLetters(t, tmpFile)[0]
	assert.Equal(t, CaseOpened, entry.Event.Type)
	assert.Equal(t, 4, entry.Attempts)
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.NotEmpty(t, entry.LastError)
	require.NotNil(t, entry.CaseID)
	assert.Equal(t, testCaseID, *entry.CaseID)
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(attempt int) bool { return attempt < 4 }}

	baseDelay := 50 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, baseDelay, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), testEvent())

	require.Eventually(t, func() bool { return bus.CallCount() >= 4 }, 2*time.Second, 5*time.Millisecond)

	times := bus.CallTimes()
	assert.InDelta(t, baseDelay.Milliseconds(), times[1].Sub(times[0]).Milliseconds(), 40)
	assert.InDelta(t, (2 * baseDelay).Milliseconds(), times[2].Sub(times[1]).Milliseconds(), 40)
	assert.InDelta(t, (4 * baseDelay).Milliseconds(), times[3].Sub(times[2]).Milliseconds(), 40)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	dl, err := NewDeadLetterWriter(tmpFile)
	require.NoError(t, err)

	// No worker: the queue fills and stays full
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), testEvent())
	}

	assert.Len(t, readDeadLetters(t, tmpFile), 3)
	require.NoError(t, dl.Close())
}

func TestResilientPublisher_ShutdownDeadLettersPending(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, tmpFile)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), testEvent())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Len(t, readDeadLetters(t, tmpFile), 3, "pending events survive shutdown in the dead-letter file")
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const numGoroutines = 10
	const eventsPerGoroutine = 5

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				rp.PublishWithRetry(context.Background(), testEvent())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, numGoroutines*eventsPerGoroutine, bus.CallCount())
}

func TestReadDeadLetters(t *testing.T) {
	dir := t.TempDir()

	entries, err := ReadDeadLetters(filepath.Join(dir, "missing.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	path := filepath.Join(dir, "deadletter.jsonl")
	w, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	userID := uuid.New()
	issued := NewCaseIssuedEvent(CaseIssuedPayloadV1{CaseID: testCaseID, UserID: userID, CaseTemplateID: 2, Source: "gift"})
	require.NoError(t, w.Write(issued, 1, errors.New("subscriber down")))
	require.NoError(t, w.Write(Event{Type: "unrelated"}, 2, nil))
	require.NoError(t, w.Close())

	entries, err = ReadDeadLetters(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, userID, *entries[0].UserID)
	assert.Equal(t, "subscriber down", entries[0].LastError)

	payload, err := DecodePayload[CaseIssuedPayloadV1](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.CaseTemplateID)

	assert.Nil(t, entries[1].CaseID)
	assert.Empty(t, entries[1].LastError)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err = ReadDeadLetters(path)
	assert.Error(t, err)
	assert.Len(t, entries, 2)
}

func TestResilientPublisher_DeadLetterSkipsBus(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &mockBus{}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, tmpFile)
	require.NoError(t, err)

	rp.DeadLetter(testEvent(), errors.New("event queue full"))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Zero(t, bus.CallCount())
	entries := readDeadLetters(t, tmpFile)
	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].Attempts)
	assert.Equal(t, "event queue full", entries[0].LastError)
}
