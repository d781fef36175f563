package constants

// JobStatus is the canonical status for rows in the report table.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued   JobStatus = "QUEUED"   // queued for processing
	JobStatusRunning  JobStatus = "RUNNING"  // in progress
	JobStatusAnalyzed JobStatus = "ANALYZED" // extraction + assembly completed
	JobStatusFailed   JobStatus = "FAILED"   // terminal failure
)
