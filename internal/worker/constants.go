package worker

// DefaultWorkers is used when the pool is created with a non-positive worker count
const DefaultWorkers = 1

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"

	// LogMsgWorkerJobPanicked is logged when a job panics
	LogMsgWorkerJobPanicked = "Worker job panicked"

	// LogMsgEventQueueFull is logged when an event is dead-lettered because the pool cannot take it
	LogMsgEventQueueFull = "Event queue full, writing to dead-letter"
)
