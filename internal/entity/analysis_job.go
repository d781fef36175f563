package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/seatsafety/report-analyzer/constants"
)

// AnalysisJob represents one report analysis row for data transfer between
// layers. Bundle is only set once the job reaches ANALYZED.
type AnalysisJob struct {
	ID           uuid.UUID           `json:"id"`
	ReportID     string              `json:"report_id"`
	SourceFile   string              `json:"source_file"`
	Format       string              `json:"format"`
	Language     string              `json:"language"`
	Status       constants.JobStatus `json:"status"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	Bundle       json.RawMessage     `json:"bundle,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
}
