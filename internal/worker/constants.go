package worker

import "time"

// SweepInterval is how often the background sweep visits every player.
// Board refreshes land on the half hour, so a one minute cadence keeps
// the worst-case lag at one minute.
const SweepInterval = 1 * time.Minute

// ============================================================================
// Log Messages - Sweep Worker
// ============================================================================

const (
	LogMsgSweepStarting      = "Player sweep starting"
	LogMsgSweepCompleted     = "Player sweep completed"
	LogMsgSweepListFailed    = "Failed to list players for sweep"
	LogMsgSweepPlayerFailed  = "Player tick failed"
	LogMsgSweepWorkerStarted = "Sweep worker started"
)

// ============================================================================
// Log Messages - Weekly Achievement Worker
// ============================================================================

const (
	LogMsgWeeklyRolloverScheduled = "Weekly achievement rollover scheduled"
	LogMsgWeeklyRolloverStarting  = "Weekly achievement rollover starting"
	LogMsgWeeklyRolloverCompleted = "Weekly achievement rollover completed"
)
