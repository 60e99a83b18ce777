package bootstrap

import (
	"context"
	"log/slog"

	"github.com/ironhorse/railyard/internal/database"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/server"
	"github.com/ironhorse/railyard/internal/sse"
	"github.com/ironhorse/railyard/internal/worker"
)

// ShutdownComponents holds everything that needs a graceful stop.
type ShutdownComponents struct {
	Server               *server.Server
	SweepWorker          *worker.SweepWorker
	WeeklyRolloverWorker *worker.WeeklyRolloverWorker
	Hub                  *sse.Hub
	Publisher            *event.ResilientPublisher
	DBPool               database.Pool
}

// GracefulShutdown stops the application in order: the HTTP server
// first so no new requests arrive, then the background workers so no
// new sweeps start, then the event publisher so pending events drain,
// and the database pool last so in-flight commits can finish. Errors
// are logged but never abort the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Default().Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Default().Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.WeeklyRolloverWorker != nil {
		if err := components.WeeklyRolloverWorker.Shutdown(ctx); err != nil {
			slog.Default().Error("Weekly rollover worker shutdown failed", "error", err)
		}
	}

	if components.SweepWorker != nil {
		if err := components.SweepWorker.Shutdown(ctx); err != nil {
			slog.Default().Error("Sweep worker shutdown failed", "error", err)
		}
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.Publisher != nil {
		if err := components.Publisher.Shutdown(ctx); err != nil {
			slog.Default().Error("Event publisher shutdown failed", "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Default().Info(LogMsgServerStopped)
}
