// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// imputeResponse reports how many missing values grouped imputation fills.
type imputeResponse struct {
	Imputed int `json:"imputed"`
}

// DatasetHandler serves the ML-facing operations: imputation, feature
// vectors, and dataset splits.
type DatasetHandler struct {
	deps Dependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps Dependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

// HandleImpute handles POST /impute requests.
func (h *DatasetHandler) HandleImpute(w http.ResponseWriter, r *http.Request) {
	const op = "api.impute"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	n, err := h.deps.Impute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, imputeResponse{Imputed: n})
}

// HandleFeatures handles GET /features requests.
func (h *DatasetHandler) HandleFeatures(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_features"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	vectors, err := h.deps.Features(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, vectors)
}

// HandleSplit handles GET /splits requests.
func (h *DatasetHandler) HandleSplit(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_splits"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.Split(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
