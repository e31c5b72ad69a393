package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/CaseDrop_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Events  *EventSystem
	Storage *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests, finish in-flight opens)
// 2. Event worker pool (hand queued events to the publisher)
// 3. Event publisher (flush retries, close the dead-letter file)
// 4. Storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Events != nil {
		slog.Info(LogMsgShuttingDownWorkers)
		if err := components.Events.Pool.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerPoolFailed, "error", err)
		}

		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.Events.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Storage != nil {
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
