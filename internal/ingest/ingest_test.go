package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/async"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/pipeline"
	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/repository"
	"github.com/seatsafety/report-analyzer/internal/services/reports"
)

type syncQueue struct{ runner async.Runner }

func (q *syncQueue) Enqueue(ctx context.Context, job async.Job) error {
	return q.runner.Run(ctx, job)
}

func (q *syncQueue) Shutdown(context.Context) {}

func newTestService(t *testing.T) *reports.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	db, err := repository.Open(context.Background(), common.DatabaseConfig{DSN: filepath.Join(t.TempDir(), "intake.db")}, logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close(logger) })
	repo, err := repository.NewReportRepository(db, logger)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	svc := reports.NewService(repo, nil, pipeline.NewProcessor(logger, nil), reports.Limits{}, logger)
	svc.SetQueue(&syncQueue{runner: svc})
	return svc
}

func writeExtraction(t *testing.T, dir, name string) string {
	t.Helper()
	doc := report.RawDocument{PageTexts: []string{
		"Prüfbericht Nr. KIELT19_19\nPrüfergebnisse\na Kopf über 3 ms [g] 58,15",
	}}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write extraction file: %v", err)
	}
	return path
}

func TestWatcherEmitsCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}}, nil)
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	path := writeExtraction(t, dir, "drop.json")
	writeExtraction(t, dir, ".hidden.json")
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case got := <-events:
			if got == path {
				return
			}
			if filepath.Base(got) != "drop.json" {
				t.Fatalf("unexpected event for %q", got)
			}
		case <-deadline:
			t.Fatal("timed out waiting for watcher event")
		}
	}
}

func TestWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	path := writeExtraction(t, dir, "existing.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true}, nil)
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	select {
	case got := <-events:
		if got != path {
			t.Fatalf("event path = %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for initial scan event")
	}
}

func TestWatcherDebounceCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: 50 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	path := writeExtraction(t, dir, "burst.json")
	writeExtraction(t, dir, "burst.json")
	writeExtraction(t, dir, "burst.json")

	select {
	case got := <-events:
		if got != path {
			t.Fatalf("event path = %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for debounced event")
	}

	select {
	case got := <-events:
		t.Fatalf("burst produced extra event for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherRequiresRoots(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}, nil); err == nil {
		t.Fatal("expected error for empty roots")
	}
}

func TestIntakeSubmitsDroppedFile(t *testing.T) {
	svc := newTestService(t)
	intake := NewIntake(svc, nil)
	dir := t.TempDir()
	path := writeExtraction(t, dir, "kielt.json")

	intake.handle(context.Background(), path)
	// identical content delivered again is a no-op
	intake.handle(context.Background(), path)

	jobs, err := svc.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	if jobs[0].ReportID != "kielt19_19" {
		t.Fatalf("report id = %q", jobs[0].ReportID)
	}
	if jobs[0].Status != constants.JobStatusAnalyzed {
		t.Fatalf("status = %q", jobs[0].Status)
	}
}

func TestIntakeSkipsMalformedJSON(t *testing.T) {
	svc := newTestService(t)
	intake := NewIntake(svc, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	intake.handle(context.Background(), path)

	jobs, err := svc.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("jobs = %d, want 0", len(jobs))
	}
}
