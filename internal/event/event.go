package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Case lifecycle event types
const (
	CaseIssued Type = "case.issued"
	CaseOpened Type = "case.opened"
)

// CaseOpenedPayloadV1 is emitted after an opening commits
type CaseOpenedPayloadV1 struct {
	CaseID         uuid.UUID `json:"case_id"`
	UserID         uuid.UUID `json:"user_id"`
	ItemID         int       `json:"item_id"`
	CaseTemplateID int       `json:"case_template_id"`
	BonusApplied   float64   `json:"bonus_applied"`
	LeveledUp      bool      `json:"leveled_up"`
	NewLevel       int       `json:"new_level,omitempty"`
}

// CaseIssuedPayloadV1 is emitted after a case is granted to a user
type CaseIssuedPayloadV1 struct {
	CaseID         uuid.UUID `json:"case_id"`
	UserID         uuid.UUID `json:"user_id"`
	CaseTemplateID int       `json:"case_template_id"`
	Source         string    `json:"source"`
}

// NewCaseOpenedEvent creates a case.opened event
func NewCaseOpenedEvent(payload CaseOpenedPayloadV1) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      CaseOpened,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewCaseIssuedEvent creates a case.issued event
func NewCaseIssuedEvent(payload CaseIssuedPayloadV1) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      CaseIssued,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// DecodePayload returns the payload as T. In-process events already carry T;
// events read back from JSON (e.g. the dead-letter file) are converted.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
