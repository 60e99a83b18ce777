package bootstrap

import "time"

// Database pool sizing.
const (
	DefaultMaxConnections  = 10
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = 30 * time.Minute
)

// Snapshot cache sizing. The TTL is deliberately short: a stale read
// within the window costs one compare-and-set conflict, which the
// client already handles by reloading.
const (
	SnapshotCacheSize = 4096
	SnapshotCacheTTL  = 2 * time.Second
)

// Log Messages
const (
	LogMsgUsingMemoryStore     = "Using in-memory store, state will not survive a restart"
	LogMsgMigrationsApplied    = "Database migrations applied"
	LogMsgShuttingDownServer   = "Shutting down server"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"
)
