package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to the case lifecycle events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range []event.Type{event.CaseIssued, event.CaseOpened} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CaseOpened:
		payload, err := event.DecodePayload[event.CaseOpenedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		CaseDropBonusPercent.Observe(payload.BonusApplied)
		if payload.LeveledUp {
			LevelUps.Inc()
		}

	case event.CaseIssued:
		payload, err := event.DecodePayload[event.CaseIssuedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		CasesIssued.WithLabelValues(payload.Source).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordCaseOpen records the outcome of one OpenCase call. kind is empty on success.
func RecordCaseOpen(templateID int, kind string, seconds float64, guardLifted bool) {
	template := strconv.Itoa(templateID)
	CaseOpenDuration.Observe(seconds)
	if kind == "" {
		CaseOpensTotal.WithLabelValues(template, ResultSuccess).Inc()
		if guardLifted {
			CaseDuplicateGuardLifted.Inc()
		}
		return
	}
	CaseOpensTotal.WithLabelValues(template, ResultFailure).Inc()
	CaseOpenErrors.WithLabelValues(kind).Inc()
}
