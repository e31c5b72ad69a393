package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CaseDrop_Go/internal/event"
	"github.com/osse101/CaseDrop_Go/internal/logger"
	"github.com/osse101/CaseDrop_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the in-process consumers of case events:
// the metrics collector and an event logger.
func RegisterEventHandlers(bus event.Bus) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, t := range []event.Type{event.CaseIssued, event.CaseOpened} {
		bus.Subscribe(t, logEvent)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}

func logEvent(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Info(LogMsgEventReceived,
		"event_type", evt.Type,
		"version", evt.Version,
		"payload", evt.Payload)
	return nil
}
