// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	Stats(ctx context.Context) map[string]any
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.Stats(r.Context()))
}
