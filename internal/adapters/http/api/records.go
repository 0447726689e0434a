// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/C0nnectify/edulens/internal/adapters/repository"
	"github.com/C0nnectify/edulens/internal/domain/model"
)

// maxBatchSize caps one POST /records submission.
const maxBatchSize = 10000

// recordRequest mirrors the wire schema for one raw admission record.
type recordRequest struct {
	Source     string `json:"source"`
	University string `json:"university"`
	Program    string `json:"program"`
	Decision   string `json:"decision"`
	Season     string `json:"season"`

	GPA      *float64 `json:"gpa,omitempty"`
	GPAScale *float64 `json:"gpa_scale,omitempty"`

	GREVerbal     *float64 `json:"gre_verbal,omitempty"`
	GREQuant      *float64 `json:"gre_quant,omitempty"`
	GREAnalytical *float64 `json:"gre_aw,omitempty"`
	GMAT          *float64 `json:"gmat,omitempty"`
	TOEFL         *float64 `json:"toefl,omitempty"`
	IELTS         *float64 `json:"ielts,omitempty"`

	Publications         *int   `json:"publications,omitempty"`
	WorkMonths           *int   `json:"work_months,omitempty"`
	UndergradInstitution string `json:"undergrad_institution,omitempty"`
	Notes                string `json:"notes,omitempty"`

	DecisionDate string `json:"decision_date,omitempty"`
	PostDate     string `json:"post_date,omitempty"`
}

func (r recordRequest) toModel() *model.RawRecord {
	return &model.RawRecord{
		Source:               r.Source,
		University:           r.University,
		Program:              r.Program,
		Decision:             r.Decision,
		Season:               r.Season,
		GPA:                  r.GPA,
		GPAScale:             r.GPAScale,
		GREVerbal:            r.GREVerbal,
		GREQuant:             r.GREQuant,
		GREAnalytical:        r.GREAnalytical,
		GMAT:                 r.GMAT,
		TOEFL:                r.TOEFL,
		IELTS:                r.IELTS,
		Publications:         r.Publications,
		WorkMonths:           r.WorkMonths,
		UndergradInstitution: r.UndergradInstitution,
		Notes:                r.Notes,
		DecisionDate:         r.DecisionDate,
		PostDate:             r.PostDate,
	}
}

// submitRequest is the POST /records body.
type submitRequest struct {
	Records []recordRequest `json:"records"`
}

// RecordsHandler handles record submission and listing.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleRecords dispatches POST (submit a batch) and GET (list cleaned
// records) on /records.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecordsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_records"

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if len(req.Records) > maxBatchSize {
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large", NewKind(op, ErrBatchTooLarge))
		return
	}

	raws := make([]*model.RawRecord, len(req.Records))
	for i, rec := range req.Records {
		raws[i] = rec.toModel()
	}

	stats, err := h.deps.Submit(r.Context(), raws)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, stats)
}

func (h *RecordsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_records"

	q := r.URL.Query()
	f := repository.Filter{
		University: strings.TrimSpace(q.Get("university")),
		Season:     strings.TrimSpace(q.Get("season")),
	}
	if d := strings.TrimSpace(q.Get("decision")); d != "" {
		f.Decision = model.ParseDecision(d)
	}
	f.ValidOnly = q.Get("valid_only") == "true"

	skip, err := queryInt(q.Get("skip"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	limit, err := queryInt(q.Get("limit"), 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	records, err := h.deps.Records(r.Context(), f, skip, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// queryInt parses a non-negative integer query parameter with a default.
func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrBadRequest
	}
	return n, nil
}
