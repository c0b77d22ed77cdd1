package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Summary.Summary(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.respondServiceError(w, r, err, "compute summary")
		return
	}
	s.respondJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// handleExportCSV buffers the export so a failure can still be reported
// as a JSON error.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	var buf bytes.Buffer
	if err := s.svc.Export.WriteCSV(r.Context(), projectID, &buf); err != nil {
		s.respondServiceError(w, r, err, "export project")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="project-%s.csv"`, projectID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write export", "project_id", projectID, "error", err)
	}
}
