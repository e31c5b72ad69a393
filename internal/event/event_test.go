package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var received []Event
	bus.Subscribe(CaseOpened, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewCaseOpenedEvent(CaseOpenedPayloadV1{UserID: uuid.New(), ItemID: 7, CaseTemplateID: 3})
	require.NoError(t, bus.Publish(context.Background(), evt))

	// Other types are not delivered to this handler
	require.NoError(t, bus.Publish(context.Background(), NewCaseIssuedEvent(CaseIssuedPayloadV1{})))

	require.Len(t, received, 1)
	assert.Equal(t, CaseOpened, received[0].Type)
	assert.Equal(t, EventSchemaVersion, received[0].Version)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(CaseOpened, func(ctx context.Context, e Event) error {
			calls++
			return nil
		})
	}

	require.NoError(t, bus.Publish(context.Background(), NewCaseOpenedEvent(CaseOpenedPayloadV1{})))
	assert.Equal(t, 3, calls)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	ran := false
	bus.Subscribe(CaseOpened, func(ctx context.Context, e Event) error {
		return errors.New("handler failed")
	})
	bus.Subscribe(CaseOpened, func(ctx context.Context, e Event) error {
		ran = true
		return nil
	})

	err := bus.Publish(context.Background(), NewCaseOpenedEvent(CaseOpenedPayloadV1{}))
	assert.Error(t, err)
	assert.True(t, ran, "a failing handler must not stop the others")
}

func TestDecodePayload(t *testing.T) {
	payload := CaseOpenedPayloadV1{UserID: uuid.New(), ItemID: 42, CaseTemplateID: 2, LeveledUp: true, NewLevel: 5}

	t.Run("in-process payload", func(t *testing.T) {
		got, err := DecodePayload[CaseOpenedPayloadV1](payload)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("payload read back from JSON", func(t *testing.T) {
		data, err := json.Marshal(NewCaseOpenedEvent(payload))
		require.NoError(t, err)
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))

		got, err := DecodePayload[CaseOpenedPayloadV1](evt.Payload)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})
}
