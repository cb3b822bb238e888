package telemetry

// Common event names
const (
	EventCommandExecuted = "command_executed"
	EventCommandError    = "command_error"
	EventBatchGenerated  = "batch_generated"
	EventBatchFailed     = "batch_failed"
	EventEdgeDropped     = "edge_dropped"
	EventStatusChanged   = "status_changed"
)
