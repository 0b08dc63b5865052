package audit

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/http/api"
	"github.com/colegioelo/estoque/internal/report"
)

// Reports supplies the report whose consistency checks a manual run records.
type Reports interface {
	Current(ctx context.Context) (*report.Report, error)
}

type Handler struct {
	svc     *audit.Service
	reports Reports
}

func NewHandler(svc *audit.Service, reports Reports) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/runs", h.list)
	r.Post("/runs", h.run)
	r.Get("/runs/{id}", h.get)
}

type listQuery struct {
	Limit int `json:"limit" validate:"gte=0,lte=200"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var q listQuery

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		q.Limit = n
	}

	if err := api.Validate(q); err != nil {
		api.Error(w, r, err)
		return
	}

	runs, err := h.svc.Recent(r.Context(), q.Limit)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]*api.RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, api.NewRunResponse(run))
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	run, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, api.NewRunResponse(run))
}

// run records the consistency checks of the current report as a manual run.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Current(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	snapshotID := rep.SnapshotID

	run, err := h.svc.Record(r.Context(), audit.KindManual, &snapshotID, rep.Audit)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, api.NewRunResponse(run))
}
