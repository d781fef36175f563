package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/entity"
	"github.com/seatsafety/report-analyzer/internal/report"
)

const reportsSchema = `
CREATE TABLE IF NOT EXISTS analysis_jobs (
	id            TEXT PRIMARY KEY,
	report_id     TEXT NOT NULL,
	source_file   TEXT NOT NULL,
	format        TEXT NOT NULL DEFAULT '',
	language      TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	error_message TEXT,
	bundle        TEXT,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_analysis_jobs_report_id ON analysis_jobs (report_id);
CREATE INDEX IF NOT EXISTS idx_analysis_jobs_status ON analysis_jobs (status);
`

// CreateJobRequest wraps parameters for inserting a queued analysis job.
type CreateJobRequest struct {
	ReportID   string
	SourceFile string
}

type ReportRepository interface {
	CreateJob(ctx context.Context, req CreateJobRequest) (*entity.AnalysisJob, error)
	MarkRunning(ctx context.Context, id uuid.UUID) error
	SaveBundle(ctx context.Context, id uuid.UUID, bundle report.Bundle) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AnalysisJob, error)
	ListJobs(ctx context.Context, limit, offset int) ([]*entity.AnalysisJob, error)
}

type reportRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewReportRepository(db *DB, logger *slog.Logger) (ReportRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.SQL.Exec(reportsSchema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &reportRepository{db: db, logger: logger}, nil
}

func (r *reportRepository) CreateJob(ctx context.Context, req CreateJobRequest) (*entity.AnalysisJob, error) {
	now := time.Now().UTC()
	job := &entity.AnalysisJob{
		ID:         uuid.New(),
		ReportID:   req.ReportID,
		SourceFile: req.SourceFile,
		Status:     constants.JobStatusQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	q := r.db.Rebind(`INSERT INTO analysis_jobs
		(id, report_id, source_file, format, language, status, created_at, updated_at)
		VALUES (?, ?, ?, '', '', ?, ?, ?)`)
	if _, err := r.db.SQL.ExecContext(ctx, q,
		job.ID.String(), job.ReportID, job.SourceFile, string(job.Status), job.CreatedAt, job.UpdatedAt,
	); err != nil {
		r.logger.Error("repository.jobs.create_failed", "report_id", req.ReportID, "error", err)
		return nil, fmt.Errorf("insert job: %w", err)
	}

	r.logger.Debug("repository.jobs.created", "job_id", job.ID, "report_id", job.ReportID)
	return job, nil
}

func (r *reportRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, constants.JobStatusRunning, nil, false)
}

func (r *reportRepository) SaveBundle(ctx context.Context, id uuid.UUID, bundle report.Bundle) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}

	q := r.db.Rebind(`UPDATE analysis_jobs
		SET status = ?, bundle = ?, format = ?, language = ?, error_message = NULL,
		    updated_at = ?, finished_at = ?
		WHERE id = ?`)
	now := time.Now().UTC()
	res, err := r.db.SQL.ExecContext(ctx, q,
		string(constants.JobStatusAnalyzed), string(raw), string(bundle.Format), bundle.Language,
		now, now, id.String(),
	)
	if err != nil {
		r.logger.Error("repository.jobs.save_bundle_failed", "job_id", id, "error", err)
		return fmt.Errorf("save bundle: %w", err)
	}
	return requireRow(res, id)
}

func (r *reportRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	return r.setStatus(ctx, id, constants.JobStatusFailed, &message, true)
}

func (r *reportRepository) setStatus(ctx context.Context, id uuid.UUID, status constants.JobStatus, message *string, finished bool) error {
	now := time.Now().UTC()
	var finishedAt any
	if finished {
		finishedAt = now
	}

	q := r.db.Rebind(`UPDATE analysis_jobs
		SET status = ?, error_message = ?, updated_at = ?, finished_at = ?
		WHERE id = ?`)
	res, err := r.db.SQL.ExecContext(ctx, q, string(status), message, now, finishedAt, id.String())
	if err != nil {
		r.logger.Error("repository.jobs.status_failed", "job_id", id, "status", status, "error", err)
		return fmt.Errorf("update status: %w", err)
	}
	return requireRow(res, id)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AnalysisJob, error) {
	q := r.db.Rebind(`SELECT id, report_id, source_file, format, language, status,
		error_message, bundle, created_at, updated_at, finished_at
		FROM analysis_jobs WHERE id = ?`)
	job, err := scanJob(r.db.SQL.QueryRowContext(ctx, q, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundError("analysis job "+id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	return job, nil
}

func (r *reportRepository) ListJobs(ctx context.Context, limit, offset int) ([]*entity.AnalysisJob, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := r.db.Rebind(`SELECT id, report_id, source_file, format, language, status,
		error_message, bundle, created_at, updated_at, finished_at
		FROM analysis_jobs ORDER BY created_at DESC LIMIT ? OFFSET ?`)
	rows, err := r.db.SQL.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*entity.AnalysisJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.AnalysisJob, error) {
	var (
		job        entity.AnalysisJob
		idText     string
		status     string
		errMsg     sql.NullString
		bundle     sql.NullString
		finishedAt sql.NullTime
	)
	if err := row.Scan(&idText, &job.ReportID, &job.SourceFile, &job.Format, &job.Language,
		&status, &errMsg, &bundle, &job.CreatedAt, &job.UpdatedAt, &finishedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return nil, fmt.Errorf("parse job id %q: %w", idText, err)
	}
	job.ID = id
	job.Status = constants.JobStatus(status)
	if errMsg.Valid {
		job.ErrorMessage = &errMsg.String
	}
	if bundle.Valid && bundle.String != "" {
		job.Bundle = json.RawMessage(bundle.String)
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		job.FinishedAt = &t
	}
	return &job, nil
}

func requireRow(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.NotFoundError("analysis job "+id.String())
	}
	return nil
}
