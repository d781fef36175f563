package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/async"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/entity"
	"github.com/seatsafety/report-analyzer/internal/export"
	"github.com/seatsafety/report-analyzer/internal/pipeline"
	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/repository"
	"github.com/seatsafety/report-analyzer/internal/services/reports"
)

type inlineQueue struct {
	runner async.Runner
}

func (q *inlineQueue) Enqueue(ctx context.Context, job async.Job) error {
	return q.runner.Run(ctx, job)
}
func (q *inlineQueue) Shutdown(context.Context) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := repository.Open(context.Background(), common.DatabaseConfig{
		DSN: filepath.Join(t.TempDir(), "reports.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close(nil) })

	repo, err := repository.NewReportRepository(db, nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	svc := reports.NewService(repo, nil, pipeline.NewProcessor(nil, nil), reports.Limits{}, nil)
	svc.SetQueue(&inlineQueue{runner: svc})

	ts := httptest.NewServer(New(svc, export.NewService(nil), db, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func submitBody() []byte {
	body := map[string]any{
		"source_file": "KIELT19_19.pdf",
		"document": map[string]any{
			"page_texts": []string{
				"Prüfbericht Nr. KIELT19_19\nVersuchs- und Messbedingungen\nSchlittengeschwindigkeit: 49,1 km/h\n",
				"Prüfling:\n  Typ: D44\n",
				"Prüfergebnisse\na Kopf über 3 ms [g] 58,15\n",
			},
		},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestSubmitGetExportRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/reports", "application/json", bytes.NewReader(submitBody()))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}

	var job entity.AnalysisJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.ReportID != "kielt19_19" {
		t.Fatalf("report id = %q", job.ReportID)
	}

	getResp, err := http.Get(ts.URL + "/api/v1/reports/" + job.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer getResp.Body.Close()
	var stored entity.AnalysisJob
	if err := json.NewDecoder(getResp.Body).Decode(&stored); err != nil {
		t.Fatalf("decode stored: %v", err)
	}
	if stored.Status != constants.JobStatusAnalyzed {
		t.Fatalf("status = %q", stored.Status)
	}

	exportResp, err := http.Get(ts.URL + "/api/v1/reports/" + job.ID.String() + "/export.xlsx")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer exportResp.Body.Close()
	if exportResp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", exportResp.StatusCode)
	}
	if ct := exportResp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestAnalyzeSyncEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/reports/analyze", "application/json", bytes.NewReader(submitBody()))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var bundle report.Bundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if bundle.Format != constants.FormatKielt {
		t.Fatalf("format = %q", bundle.Format)
	}
}

func TestSubmitValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/reports", "application/json", strings.NewReader(`{"source_file":""}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGetUnknownReport(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/reports/6a0f5a7e-7a3a-4d8f-9a6b-1c2d3e4f5a6b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestListReports(t *testing.T) {
	ts := newTestServer(t)

	if resp, err := http.Post(ts.URL+"/api/v1/reports", "application/json", bytes.NewReader(submitBody())); err != nil {
		t.Fatalf("post: %v", err)
	} else {
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/v1/reports?limit=10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Reports []entity.AnalysisJob `json:"reports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Reports) != 1 {
		t.Fatalf("reports = %d", len(out.Reports))
	}
}
