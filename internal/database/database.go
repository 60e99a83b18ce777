// Package database owns the pgx connection pool. The workload is one
// JSONB document per player touched by short reads and single-row
// compare-and-set writes, so the pool favors a few warm connections
// over a deep one.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the surface the rest of the app needs from pgxpool.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool builds, configures and pings a connection pool. A pool that
// cannot reach the database is closed and never handed out.
func NewPool(ctx context.Context, connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	poolCfg.MaxConns = int32(maxConns)
	poolCfg.MinConns = MinWarmConnections
	poolCfg.MaxConnLifetime = maxLife
	poolCfg.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	slog.Info(LogMsgDatabaseConnected, "max_conns", poolCfg.MaxConns)
	return pool, nil
}
