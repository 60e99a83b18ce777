package eventlog

// DefaultRetentionDays is how long logged events are kept before the
// cleanup job removes them.
const DefaultRetentionDays = 90

// JSON payload field keys
const (
	PayloadKeyPlayerID = "player_id"
)

// Log messages
const (
	LogMsgEventPayloadNotDecodable = "Event payload could not be decoded, skipping log"
	LogMsgFailedToLogEvent         = "Failed to log event to database"
	LogMsgEventLogged              = "Event logged to database"

	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
