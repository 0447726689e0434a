// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ReportsHandler serves recomputed aggregation and quality reports.
type ReportsHandler struct {
	deps Dependencies
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleStatistics handles GET /statistics requests.
func (h *ReportsHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_statistics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats, err := h.deps.Statistics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleQuality handles GET /quality requests.
func (h *ReportsHandler) HandleQuality(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quality"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	report, err := h.deps.Quality(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
