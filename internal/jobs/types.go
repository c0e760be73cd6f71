// Package jobs defines the async job model for ledger exports and the
// queue/store contracts the API wires together.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// ExportLedgerJob asks the worker to snapshot the full ledger as CSV and
// upload it to GCS.
type ExportLedgerJob struct {
	JobID string `json:"job_id"`

	// Bucket and ObjectName locate the export target in GCS.
	Bucket     string `json:"bucket"`
	ObjectName string `json:"object_name"`

	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Publisher enqueues export jobs. The abstraction keeps the handlers
// independent of the queue implementation.
type Publisher interface {
	PublishExportLedger(ctx context.Context, job *ExportLedgerJob) error
	Close() error
}

// Handler processes one job; a returned error marks the job for retry.
type Handler func(ctx context.Context, job *ExportLedgerJob) error

// Consumer drains the queue, invoking the handler per job.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// Store tracks job state so the API can answer status queries.
type Store interface {
	SaveJob(ctx context.Context, job *ExportLedgerJob) error
	GetJob(ctx context.Context, jobID string) (*ExportLedgerJob, error)
	ListJobs(ctx context.Context, filter Filter) ([]*ExportLedgerJob, error)
}

// Filter narrows ListJobs results.
type Filter struct {
	Status JobStatus
	Limit  int
	Offset int
}
