package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironhorse/railyard/internal/achievement"
	"github.com/ironhorse/railyard/internal/bootstrap"
	"github.com/ironhorse/railyard/internal/config"
	"github.com/ironhorse/railyard/internal/database/postgres"
	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/eventlog"
	"github.com/ironhorse/railyard/internal/handler"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/market"
	"github.com/ironhorse/railyard/internal/server"
	"github.com/ironhorse/railyard/internal/sse"
	"github.com/ironhorse/railyard/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "railyard",
		Version:     handler.Version,
	})

	handler.InitValidator()

	store, dbPool, err := bootstrap.InitializeStore(cfg)
	if err != nil {
		slog.Error("Store initialization failed", "error", err)
		os.Exit(1)
	}

	// Event plumbing: bus -> resilient publisher -> services; the event
	// log and the SSE hub subscribe on the bus side.
	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, event.ResilientConfig{
		DeadLetterPath: cfg.DeadLetterPath,
	})
	if err != nil {
		slog.Error("Event publisher initialization failed", "error", err)
		os.Exit(1)
	}

	var cleanupJob *eventlog.CleanupJob
	if pool, ok := dbPool.(*pgxpool.Pool); ok {
		logService := eventlog.NewService(postgres.NewEventLogRepository(pool))
		logService.Subscribe(bus)
		cleanupJob = eventlog.NewCleanupJob(logService, eventlog.DefaultRetentionDays)
	}

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	gen := market.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	economyService := economy.NewServiceWithEvents(store, gen, cfg.HomeCity, publisher)
	achievementService := achievement.NewServiceWithEvents(store, publisher)

	srv := server.NewServer(cfg.Port, dbPool, store, economyService, achievementService, hub)

	sweepWorker := worker.NewSweepWorker(economyService, store)
	sweepWorker.Start()

	rolloverWorker := worker.NewWeeklyRolloverWorker(sweepWorker, cleanupJob)
	rolloverWorker.Start()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:               srv,
		SweepWorker:          sweepWorker,
		WeeklyRolloverWorker: rolloverWorker,
		Hub:                  hub,
		Publisher:            publisher,
		DBPool:               dbPool,
	})
}
