package repository

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/report"
)

func openTestRepo(t *testing.T) ReportRepository {
	t.Helper()

	db, err := Open(context.Background(), common.DatabaseConfig{
		DSN: filepath.Join(t.TempDir(), "reports.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close(nil) })

	repo, err := NewReportRepository(db, nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo
}

func TestJobLifecycle(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	job, err := repo.CreateJob(ctx, CreateJobRequest{ReportID: "kielt19_19", SourceFile: "KIELT19_19.pdf"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Status != constants.JobStatusQueued {
		t.Fatalf("status = %q", job.Status)
	}

	if err := repo.MarkRunning(ctx, job.ID); err != nil {
		t.Fatalf("mark running: %v", err)
	}

	bundle := report.Bundle{
		ReportID: "kielt19_19",
		Format:   constants.FormatKielt,
		Language: "de",
		Sections: report.EmptySections(),
	}
	if err := repo.SaveBundle(ctx, job.ID, bundle); err != nil {
		t.Fatalf("save bundle: %v", err)
	}

	got, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != constants.JobStatusAnalyzed {
		t.Fatalf("status = %q", got.Status)
	}
	if got.Format != string(constants.FormatKielt) || got.Language != "de" {
		t.Fatalf("format/language = %q/%q", got.Format, got.Language)
	}
	if got.FinishedAt == nil {
		t.Fatal("finished_at not set")
	}
	if got.ErrorMessage != nil {
		t.Fatalf("error message = %q", *got.ErrorMessage)
	}

	var stored report.Bundle
	if err := json.Unmarshal(got.Bundle, &stored); err != nil {
		t.Fatalf("decode stored bundle: %v", err)
	}
	if stored.ReportID != "kielt19_19" {
		t.Fatalf("stored report id = %q", stored.ReportID)
	}
}

func TestMarkFailedStoresMessage(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	job, err := repo.CreateJob(ctx, CreateJobRequest{ReportID: "kielt22_04", SourceFile: "KIELT22_04.pdf"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkFailed(ctx, job.ID, "document too large"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != constants.JobStatusFailed {
		t.Fatalf("status = %q", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "document too large" {
		t.Fatalf("error message = %v", got.ErrorMessage)
	}
	if len(got.Bundle) != 0 {
		t.Fatal("failed job should carry no bundle")
	}
}

func TestGetUnknownJob(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T", err)
	}
}

func TestListJobsNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, id := range []string{"kielt19_19", "kielt20_07", "kielt22_04"} {
		if _, err := repo.CreateJob(ctx, CreateJobRequest{ReportID: id, SourceFile: id + ".pdf"}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	jobs, err := repo.ListJobs(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len = %d", len(jobs))
	}

	all, err := repo.ListJobs(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
}
