package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seatsafety/report-analyzer/internal/entity"
	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/services/reports"
)

// submitRequest is the JSON body of POST /api/v1/reports.
type submitRequest struct {
	SourceFile string             `json:"source_file"`
	Document   report.RawDocument `json:"document"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, s.logger, badRequestf("decode body: %v", err))
		return
	}

	job, err := s.svc.Submit(r.Context(), reports.SubmitRequest{
		SourceFile: req.SourceFile,
		Document:   req.Document,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, s.logger, badRequestf("decode body: %v", err))
		return
	}

	bundle, err := s.svc.Analyze(r.Context(), req.SourceFile, req.Document)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	jobs, err := s.svc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if jobs == nil {
		jobs = []*entity.AnalysisJob{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": jobs})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if len(job.Bundle) == 0 {
		writeError(w, r, s.logger, badRequestf("report %s is not analyzed yet (status %s)", job.ID, job.Status))
		return
	}

	var bundle report.Bundle
	if err := json.Unmarshal(job.Bundle, &bundle); err != nil {
		writeError(w, r, s.logger, fmt.Errorf("decode stored bundle: %w", err))
		return
	}

	xlsx, err := s.exporter.ExportBundleXLSX(bundle)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "job_id", job.ID, "err", err)
		writeError(w, r, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bundle.ReportID+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}
