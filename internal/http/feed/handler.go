package feed

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/feed"
	"github.com/colegioelo/estoque/internal/http/api"
	"github.com/colegioelo/estoque/internal/importer"
)

const maxUploadSize = 32 << 20

type Handler struct {
	svc *feed.Service
}

func NewHandler(svc *feed.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/refresh", h.refresh)
	r.Post("/upload", h.upload)
}

type failedUnitResponse struct {
	Unit    catalog.Unit `json:"unit"`
	Records int          `json:"records"`
	Error   string       `json:"error"`
}

type outcomeResponse struct {
	SnapshotID  uuid.UUID            `json:"snapshot_id"`
	TakenAt     time.Time            `json:"taken_at"`
	Records     int                  `json:"records"`
	Previous    int                  `json:"previous"`
	Audit       *api.RunResponse     `json:"audit,omitempty"`
	FailedUnits []failedUnitResponse `json:"failed_units,omitempty"`
}

func toOutcomeResponse(out *feed.Outcome) outcomeResponse {
	resp := outcomeResponse{
		SnapshotID: out.Snapshot.ID,
		TakenAt:    out.Snapshot.TakenAt,
		Records:    len(out.Snapshot.Records),
		Previous:   out.Previous,
		Audit:      api.NewRunResponse(out.Run),
	}

	for _, u := range out.Failed {
		resp.FailedUnits = append(resp.FailedUnits, failedUnitResponse{
			Unit:    u.Unit,
			Records: u.Records,
			Error:   u.Err.Error(),
		})
	}

	return resp
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Refresh(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toOutcomeResponse(out))
}

type uploadForm struct {
	Format string `json:"format" validate:"required,oneof=tsv json"`
	// Units pairs with the uploaded files by position; JSON files may leave it empty.
	Units []string `json:"unit" validate:"dive,omitempty,oneof=BV CD JG CDR"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := uploadForm{
		Format: r.FormValue("format"),
		Units:  r.MultipartForm.Value["unit"],
	}

	if err := api.Validate(form); err != nil {
		api.Error(w, r, err)
		return
	}

	headers := r.MultipartForm.File["file"]

	files := make([]feed.File, 0, len(headers))
	for i, fh := range headers {
		f, err := open(fh)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()

		var unit catalog.Unit
		if i < len(form.Units) {
			unit = catalog.Unit(form.Units[i])
		}

		files = append(files, feed.File{Name: fh.Filename, Unit: unit, Body: f})
	}

	out, err := h.svc.Upload(r.Context(), importer.Format(form.Format), files)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toOutcomeResponse(out))
}

func open(fh *multipart.FileHeader) (multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}

	return f, nil
}
