package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// DeadLetterEntry is one line of the dead-letter file. CaseID and UserID are
// lifted out of the payload so operators can grep by case.
type DeadLetterEntry struct {
	SchemaVersion string     `json:"schema_version"`
	RecordedAt    time.Time  `json:"recorded_at"`
	CaseID        *uuid.UUID `json:"case_id,omitempty"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	Event         Event      `json:"event"`
	Attempts      int        `json:"attempts"`
	LastError     string     `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable case events to a JSON-lines file
type DeadLetterWriter struct {
	mu   sync.Mutex
	path string
	file *os.File
	enc  *json.Encoder
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file %s: %w", path, err)
	}
	return &DeadLetterWriter{path: path, file: f, enc: json.NewEncoder(f)}, nil
}

// Write records an event that exhausted its delivery attempts
func (w *DeadLetterWriter) Write(evt Event, attempts int, cause error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		RecordedAt:    time.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	entry.CaseID, entry.UserID = caseRef(evt)
	if cause != nil {
		entry.LastError = cause.Error()
	}

	logger.Warn(LogMsgEventDeadLettered,
		LogFieldEventType, evt.Type,
		LogFieldCaseID, entry.CaseID,
		LogFieldAttempts, attempts,
		LogFieldError, entry.LastError)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(entry)
}

// Close closes the dead-letter file
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// ReadDeadLetters loads every entry of a dead-letter file in write order.
// A missing file yields no entries.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return entries, fmt.Errorf("dead-letter line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// caseRef extracts the case and user ids from a case lifecycle payload
func caseRef(evt Event) (*uuid.UUID, *uuid.UUID) {
	switch evt.Type {
	case CaseOpened:
		if p, err := DecodePayload[CaseOpenedPayloadV1](evt.Payload); err == nil {
			return &p.CaseID, &p.UserID
		}
	case CaseIssued:
		if p, err := DecodePayload[CaseIssuedPayloadV1](evt.Payload); err == nil {
			return &p.CaseID, &p.UserID
		}
	}
	return nil, nil
}
