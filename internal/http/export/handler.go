package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colegioelo/estoque/internal/export"
	"github.com/colegioelo/estoque/internal/http/api"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stock.xlsx", h.workbook)
	r.Get("/briefing", h.briefing)
}

func (h *Handler) workbook(w http.ResponseWriter, r *http.Request) {
	filter, err := api.ParseFilter(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	// Buffer the workbook so a failure can still be answered with a status.
	var buf bytes.Buffer

	name, err := h.svc.Workbook(r.Context(), &buf, filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

func (h *Handler) briefing(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Briefing(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write briefing", "error", err)
	}
}
