package async

import (
	"context"
	"time"

	"github.com/seatsafety/report-analyzer/internal/report"
)

// Job is one queued analysis request: a report identity plus the raw
// extraction payload to run the pipeline over.
type Job struct {
	ReportID    string
	SourceFile  string
	Document    report.RawDocument
	SubmittedAt time.Time
	TraceID     string
}

// Runner executes one job; implementations own status bookkeeping.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
