package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/services/reports"
)

// Intake drains the watcher channel, decodes dropped extraction files and
// submits them as analysis jobs. Re-delivered events for unchanged content
// are skipped.
type Intake struct {
	svc    *reports.Service
	logger *slog.Logger
	seen   map[string][32]byte
}

func NewIntake(svc *reports.Service, logger *slog.Logger) *Intake {
	if logger == nil {
		logger = slog.Default()
	}
	return &Intake{svc: svc, logger: logger, seen: map[string][32]byte{}}
}

// Run blocks until ctx is cancelled or the watcher channel closes.
func (i *Intake) Run(ctx context.Context, cfg WatchConfig) error {
	events, errs, err := StartWatcher(ctx, cfg, i.logger)
	if err != nil {
		return err
	}
	i.logger.Info("intake started", "roots", cfg.Roots)

	for {
		select {
		case <-ctx.Done():
			return nil
		case werr, ok := <-errs:
			if ok && werr != nil {
				i.logger.Warn("intake watcher error", "error", werr)
			}
		case path, ok := <-events:
			if !ok {
				return nil
			}
			i.handle(ctx, path)
		}
	}
}

func (i *Intake) handle(ctx context.Context, path string) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		i.logger.Warn("intake read failed", "path", path, "error", err)
		return
	}
	sum := sha256.Sum256(data)
	if prev, ok := i.seen[path]; ok && prev == sum {
		return
	}

	var doc report.RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		i.logger.Warn("intake decode failed", "path", path, "error", err)
		return
	}

	job, err := i.svc.Submit(ctx, reports.SubmitRequest{SourceFile: path, Document: doc})
	if err != nil {
		i.logger.Warn("intake submit rejected", "path", path, "error", err)
		return
	}
	i.seen[path] = sum
	i.logger.Info("intake submitted",
		"path", path,
		"job_id", job.ID,
		"report_id", job.ReportID,
		"elapsed_ms", time.Since(start).Milliseconds())
}
