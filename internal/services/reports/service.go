// Package reports wires submission, queueing, analysis, and persistence
// into one service used by the HTTP layer and the CLI.
package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/seatsafety/report-analyzer/internal/assemble"
	"github.com/seatsafety/report-analyzer/internal/async"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/entity"
	"github.com/seatsafety/report-analyzer/internal/pipeline"
	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/repository"
)

// Limits bounds accepted submissions.
type Limits struct {
	MaxDocumentBytes int
	MaxPages         int
}

// Service handles report analysis business logic.
type Service struct {
	repo      repository.ReportRepository
	queue     async.Queue
	processor *pipeline.Processor
	limits    Limits
	logger    *slog.Logger
}

func NewService(repo repository.ReportRepository, q async.Queue, proc *pipeline.Processor, limits Limits, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		queue:     q,
		processor: proc,
		limits:    limits,
		logger:    logger,
	}
}

// SetQueue attaches the worker queue after construction. The queue needs the
// service as its runner, so the two are wired in two steps.
func (s *Service) SetQueue(q async.Queue) { s.queue = q }

// SubmitRequest represents one report submission.
type SubmitRequest struct {
	SourceFile string
	Document   report.RawDocument
}

// Submit validates the payload, records a QUEUED job, and enqueues it.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*entity.AnalysisJob, error) {
	source := strings.TrimSpace(req.SourceFile)
	v := common.NewValidator().
		Field("source_file", source, common.Required, func(f string, val interface{}) *common.ValidationError {
			return common.MaxLength(f, val, 512)
		})
	if err := v.Error(); err != nil {
		s.logger.Error("submission failed validation", "error", err)
		return nil, err
	}
	if len(req.Document.PageTexts) == 0 {
		s.logger.Error("submission carries no page texts", "source_file", source)
		return nil, common.InvalidInputError("document must contain at least one page")
	}
	if err := s.checkLimits(req.Document); err != nil {
		s.logger.Error("submission rejected by limits", "source_file", source, "error", err)
		return nil, err
	}

	reportID := assemble.ExtractReportID(source)
	job, err := s.repo.CreateJob(ctx, repository.CreateJobRequest{
		ReportID:   reportID,
		SourceFile: source,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("report submitted", "job_id", job.ID, "report_id", reportID, "pages", len(req.Document.PageTexts))
	if err := s.queue.Enqueue(ctx, async.Job{
		ReportID:    reportID,
		SourceFile:  source,
		Document:    req.Document,
		SubmittedAt: time.Now(),
		TraceID:     job.ID.String(),
	}); err != nil {
		return nil, err
	}
	return job, nil
}

// Run executes one queued job end to end. It implements async.Runner; the
// row moves QUEUED -> RUNNING -> ANALYZED, or FAILED with the error message.
func (s *Service) Run(ctx context.Context, job async.Job) error {
	jobID, err := uuid.Parse(job.TraceID)
	if err != nil {
		return fmt.Errorf("parse job trace id %q: %w", job.TraceID, err)
	}

	if err := s.repo.MarkRunning(ctx, jobID); err != nil {
		return err
	}

	bundle, err := s.processor.Process(ctx, job.SourceFile, job.Document)
	if err != nil {
		if ferr := s.repo.MarkFailed(ctx, jobID, err.Error()); ferr != nil {
			s.logger.Error("failed to persist job failure", "job_id", jobID, "error", ferr)
		}
		return err
	}

	return s.repo.SaveBundle(ctx, jobID, bundle)
}

// Analyze runs the pipeline synchronously without persistence; used by the
// one-shot CLI.
func (s *Service) Analyze(ctx context.Context, sourceFile string, doc report.RawDocument) (report.Bundle, error) {
	if err := s.checkLimits(doc); err != nil {
		return report.Bundle{}, err
	}
	return s.processor.Process(ctx, sourceFile, doc)
}

// Get returns one analysis job by its row ID.
func (s *Service) Get(ctx context.Context, id string) (*entity.AnalysisJob, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, common.InvalidInputError("job id must be a UUID")
	}
	return s.repo.GetByID(ctx, jobID)
}

// List returns recent jobs, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.AnalysisJob, error) {
	return s.repo.ListJobs(ctx, limit, offset)
}

func (s *Service) checkLimits(doc report.RawDocument) error {
	if s.limits.MaxPages > 0 && len(doc.PageTexts) > s.limits.MaxPages {
		return common.InvalidInputErrorf("document has %d pages, limit is %d", len(doc.PageTexts), s.limits.MaxPages)
	}
	if s.limits.MaxDocumentBytes > 0 {
		total := 0
		for _, p := range doc.PageTexts {
			total += len(p)
		}
		if total > s.limits.MaxDocumentBytes {
			return common.InvalidInputErrorf("document text is %d bytes, limit is %d", total, s.limits.MaxDocumentBytes)
		}
	}
	return nil
}
