// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/C0nnectify/edulens/internal/adapters/repository"
	"github.com/C0nnectify/edulens/internal/domain/features"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Submit runs one batch of raw records through the pipeline.
	Submit(ctx context.Context, raws []*model.RawRecord) (types.CleaningStats, error)

	// Records pages through stored cleaned records.
	Records(ctx context.Context, f repository.Filter, skip, limit int) ([]*model.CleanedRecord, error)

	// Analytics over the stored set.
	Statistics(ctx context.Context) (types.AggregationStatistics, error)
	Quality(ctx context.Context) (types.QualityReport, error)
	Impute(ctx context.Context) (int, error)
	Features(ctx context.Context) ([]features.Vector, error)
	Split(ctx context.Context) (types.SplitResult, error)
}

// Server wires HTTP routes for the pipeline API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	recordsHandler *RecordsHandler
	reportsHandler *ReportsHandler
	datasetHandler *DatasetHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		recordsHandler: NewRecordsHandler(deps),
		reportsHandler: NewReportsHandler(deps),
		datasetHandler: NewDatasetHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/statistics", MetricsMiddleware(s.reportsHandler.HandleStatistics, "statistics"))
	mux.HandleFunc("/quality", MetricsMiddleware(s.reportsHandler.HandleQuality, "quality"))
	mux.HandleFunc("/impute", MetricsMiddleware(s.datasetHandler.HandleImpute, "impute"))
	mux.HandleFunc("/features", MetricsMiddleware(s.datasetHandler.HandleFeatures, "features"))
	mux.HandleFunc("/splits", MetricsMiddleware(s.datasetHandler.HandleSplit, "splits"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
