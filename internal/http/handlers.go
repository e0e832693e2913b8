package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/aichabibi/EOLE/internal/core"
	"github.com/aichabibi/EOLE/internal/report"
	"github.com/aichabibi/EOLE/internal/session"
)

// noDataWarning is returned instead of an error whenever the filtered
// set is empty: an empty result is a normal outcome of this pipeline.
const noDataWarning = "aucune donnée exploitable trouvée"

type (
	uploadResponse struct {
		Files        []session.FileReport `json:"files"`
		RecordsTotal int                  `json:"records_total"`
	}

	personRow struct {
		FullName string  `json:"full_name"`
		Hours    float64 `json:"hours"`
	}

	summaryResponse struct {
		People  []personRow `json:"people"`
		Count   int         `json:"count"`
		Warning string      `json:"warning,omitempty"`
	}

	optionsResponse struct {
		Categories []string `json:"categories"`
		Agencies   []string `json:"agencies"`
		MinDate    string   `json:"min_date,omitempty"`
		MaxDate    string   `json:"max_date,omitempty"`
	}
)

// handleFiles dispatches on method: upload new exports, list the
// ingestion reports, or reset the session.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleUpload(w, r)
	case http.MethodGet:
		_, sess := s.session(w, r)
		writeJSON(w, http.StatusOK, uploadResponse{
			Files:        sess.Reports(),
			RecordsTotal: len(sess.Snapshot()),
		})
	case http.MethodDelete:
		_, sess := s.session(w, r)
		sess.Reset()
		slog.InfoContext(r.Context(), "Session reset")
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	id, sess := s.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided (use the 'files' field)")
		return
	}

	files := make([]session.UploadedFile, 0, len(headers))
	for _, h := range headers {
		data, err := readUpload(h)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("read %s: %v", h.Filename, err))
			return
		}
		files = append(files, session.UploadedFile{Name: h.Filename, Data: data})
	}

	reports := s.store.Ingest(r.Context(), id, sess, files)
	slog.InfoContext(r.Context(), "Files ingested",
		"session_id", id,
		"files", len(files),
		"records_total", len(sess.Snapshot()))

	writeJSON(w, http.StatusOK, uploadResponse{
		Files:        reports,
		RecordsTotal: len(sess.Snapshot()),
	})
}

func readUpload(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// filtered runs the full pipeline for one request: snapshot, drop
// undated records, apply the criteria. Every interaction recomputes
// from scratch; no state survives between requests beyond the record
// set itself.
func (s *Server) filtered(w http.ResponseWriter, r *http.Request) (core.RecordSet, bool) {
	criteria, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	_, sess := s.session(w, r)
	return report.Apply(report.Dated(sess.Snapshot()), criteria), true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	sums := report.Summarize(records)

	resp := summaryResponse{People: make([]personRow, 0, len(sums)), Count: len(sums)}
	for _, sum := range sums {
		resp.People = append(resp.People, personRow{FullName: sum.FullName, Hours: sum.Hours})
	}
	if len(sums) == 0 {
		resp.Warning = noDataWarning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	_, sess := s.session(w, r)
	opts := report.ListOptions(report.Dated(sess.Snapshot()))

	resp := optionsResponse{Categories: opts.Categories, Agencies: opts.Agencies}
	if !opts.MinDate.IsZero() {
		resp.MinDate = opts.MinDate.Format(filterDateLayout)
		resp.MaxDate = opts.MaxDate.Format(filterDateLayout)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgencies(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.HoursByAgency(records))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.HeadcountByCategory(records))
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.HoursByMonth(records))
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	sums := report.Summarize(records)
	top := report.TopN(sums, parseTopN(r.URL.Query(), s.topN))

	rows := make([]personRow, 0, len(top))
	for _, sum := range top {
		rows = append(rows, personRow{FullName: sum.FullName, Hours: sum.Hours})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	sums := report.Summarize(records)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bilan_eole.csv"`)
	if err := report.WriteSummaryCSV(w, sums); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.summaryWriter == nil {
		writeError(w, http.StatusServiceUnavailable, "no export backend configured")
		return
	}

	records, ok := s.filtered(w, r)
	if !ok {
		return
	}
	sums := report.Summarize(records)

	ref, err := s.summaryWriter.WriteSummary(r.Context(), sums)
	if err != nil {
		slog.ErrorContext(r.Context(), "Sheet export failed", "error", err, "people", len(sums))
		writeError(w, http.StatusBadGateway, "sheet export failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ref": ref, "people": len(sums)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
