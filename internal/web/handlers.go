package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"hrpulse/internal/dataset"
	"hrpulse/internal/hr"
	"hrpulse/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Summary is the dashboard overview payload.
type Summary struct {
	RunID       string         `json:"run_id"`
	RecordCount int            `json:"record_count"`
	IssueCount  int            `json:"issue_count"`
	KPIs        hr.KPISnapshot `json:"kpis"`
	DurationMS  int64          `json:"duration_ms"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// runPipeline reads the configured dataset and runs a full pipeline pass.
func (s *Server) runPipeline() (hr.Result, error) {
	raw, err := dataset.ReadFile(s.cfg.Dataset.Path)
	if err != nil {
		return hr.Result{}, err
	}
	return hr.Run(raw), nil
}

// handleIndex serves the embedded dashboard page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(staticFiles, "static/index.html")
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSummary runs the pipeline and returns the dashboard overview.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPipeline()
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Summary{
		RunID:       result.RunID,
		RecordCount: len(result.Records),
		IssueCount:  len(result.Issues),
		KPIs:        result.KPIs,
		DurationMS:  result.Duration.Milliseconds(),
		GeneratedAt: time.Now().UTC(),
	})
}

// handleKPIs returns the KPI snapshot alone.
func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPipeline()
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.KPIs)
}

// handleIssues returns the validator's issue list.
func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPipeline()
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Issues)
}

// handleRecords returns the canonical record set.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPipeline()
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Records)
}

// handleInsights runs the pipeline and generates a narrative summary.
// Insight failure degrades to placeholder text inside the client, so this
// handler only fails when the pipeline itself cannot run.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPipeline()
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}

	narrative := s.insight.Analyze(r.Context(), result.Issues, result.KPIs)
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":   result.RunID,
		"enabled":  s.cfg.Insight.Enabled(),
		"insights": narrative,
	})
}

// handleReport generates a Markdown report file and returns its path.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPipeline()
	if err != nil {
		s.respondPipelineError(w, r, err)
		return
	}

	narrative := s.insight.Analyze(r.Context(), result.Issues, result.KPIs)
	path, err := s.reports.Write(result, narrative)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"run_id": result.RunID,
		"path":   path,
	})
}

// respondPipelineError maps dataset/pipeline failures to HTTP statuses: a
// missing dataset file is a 404 with a hint, a structural dataset error is a
// 422, anything else a 500.
func (s *Server) respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.respondError(w, r, err, http.StatusNotFound)
	default:
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
	}
}

// respondError logs the technical error with request context and returns a
// JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	logger := logging.FromContext(r.Context())
	logger.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
	)

	msg := err.Error()
	code := "internal_error"
	switch statusCode {
	case http.StatusNotFound:
		code = "dataset_not_found"
		msg = "dataset not found; generate one with `hrpulse generate` or set DATASET_PATH"
	case http.StatusUnprocessableEntity:
		code = "dataset_invalid"
	}

	writeJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: msg,
		Code:    code,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
