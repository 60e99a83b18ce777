package database

// MinWarmConnections is the floor of open connections the pool keeps
// around. The player-document queries are short; two warm connections
// cover the idle baseline without holding server slots.
const MinWarmConnections = 2

// Log Messages
const (
	LogMsgDatabaseConnected = "Connected to postgres"
)
