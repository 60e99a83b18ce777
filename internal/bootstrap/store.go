// Package bootstrap assembles the application: store selection,
// migrations, and the shutdown sequence.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ironhorse/railyard/internal/config"
	"github.com/ironhorse/railyard/internal/database"
	"github.com/ironhorse/railyard/internal/database/postgres"
	"github.com/ironhorse/railyard/internal/memstore"
	"github.com/ironhorse/railyard/internal/repository"
	"github.com/ironhorse/railyard/migrations"
)

// InitializeStore selects and prepares the player store. For Postgres
// it applies migrations, opens the connection pool and wraps the
// repository in a short-TTL snapshot cache; with USE_MEMORY_STORE it
// returns the in-memory store and a nil pool.
func InitializeStore(cfg *config.Config) (repository.Player, database.Pool, error) {
	if cfg.UseMemoryStore {
		slog.Default().Warn(LogMsgUsingMemoryStore)
		return memstore.New(), nil, nil
	}

	connString := cfg.GetDBConnString()

	if err := applyMigrations(connString); err != nil {
		return nil, nil, err
	}

	pool, err := database.NewPool(context.Background(), connString, DefaultMaxConnections, DefaultMaxConnIdleTime, DefaultMaxConnLifetime)
	if err != nil {
		return nil, nil, err
	}

	store := repository.NewSnapshotCache(
		postgres.NewPlayerRepository(pool),
		SnapshotCacheSize,
		SnapshotCacheTTL,
	)
	return store, pool, nil
}

// applyMigrations runs goose against a short-lived database/sql handle;
// the pgx pool is opened afterwards against the migrated schema.
func applyMigrations(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Default().Info(LogMsgMigrationsApplied)
	return nil
}

// ensure the concrete pool satisfies the interface handed to the server
var _ database.Pool = (*pgxpool.Pool)(nil)
