package http

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/couchcryptid/road-safety-reports/internal/report"
)

type reportEntry struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Path      string `json:"path"`
	Available bool   `json:"available"`
}

type reportListing struct {
	Reports []reportEntry `json:"reports"`
}

func (s *Server) handleListReports(w http.ResponseWriter, _ *http.Request) {
	out := reportListing{Reports: make([]reportEntry, len(report.Kinds))}
	for i, k := range report.Kinds {
		out.Reports[i] = reportEntry{
			Name:      k.Title,
			Slug:      k.Slug,
			Path:      "/api/reports/" + k.Slug,
			Available: s.reports.Exists(k),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetReport returns the stored artifact bytes unchanged.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	kind, ok := report.KindBySlug(slug)
	if !ok {
		s.countReportRequest("unknown", http.StatusNotFound)
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown report: " + slug})
		return
	}

	data, err := s.reports.Read(kind)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.countReportRequest(kind.Slug, http.StatusNotFound)
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "report not generated yet: " + kind.File})
		return
	case err != nil:
		s.logger.Error("report read failed", "report", kind.File, "error", err)
		s.countReportRequest(kind.Slug, http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "report unavailable"})
		return
	}

	s.countReportRequest(kind.Slug, http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) countReportRequest(slug string, status int) {
	s.metrics.ReportRequests.WithLabelValues(slug, strconv.Itoa(status)).Inc()
}
