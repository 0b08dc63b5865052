package ledger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/http/api"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
)

// Invalidator drops cached reports after a ledger edit.
type Invalidator interface {
	Invalidate()
}

type Handler struct {
	svc     *ledger.Service
	reports Invalidator
}

func NewHandler(svc *ledger.Service, reports Invalidator) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/orders", h.setOrder)
	r.Put("/shipments", h.setShipment)
	r.Put("/adjustments", h.setAdjustment)
	r.Put("/overrides", h.setOverride)
	r.Delete("/overrides/{unit}/{student}", h.removeOverride)
	r.Post("/physical-counts", h.addPhysicalCount)
	r.Post("/open-enrollments", h.addOpenEnrollment)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Load(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toLedgerResponse(l))
}

// done answers a successful edit and drops the cached report.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, err error, status int) {
	if err != nil {
		api.Error(w, r, err)
		return
	}

	h.reports.Invalidate()
	w.WriteHeader(status)
}

type orderRequest struct {
	ProductCode  string `json:"product_code" validate:"required"`
	Initial      int    `json:"initial" validate:"gte=0"`
	Supplemental int    `json:"supplemental" validate:"gte=0"`
}

func (h *Handler) setOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	err := h.svc.SetOrder(r.Context(), ledger.Order{
		ProductCode:  req.ProductCode,
		Initial:      req.Initial,
		Supplemental: req.Supplemental,
	})
	h.done(w, r, err, http.StatusNoContent)
}

type shipmentRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

func (h *Handler) setShipment(w http.ResponseWriter, r *http.Request) {
	var req shipmentRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	err := h.svc.SetShipment(r.Context(), ledger.Shipment{
		StockKey: ledger.StockKey{ProductCode: req.ProductCode, Unit: catalog.Unit(req.Unit)},
		Quantity: req.Quantity,
	})
	h.done(w, r, err, http.StatusNoContent)
}

type adjustmentRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note" validate:"max=200"`
}

func (h *Handler) setAdjustment(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	err := h.svc.SetAdjustment(r.Context(), ledger.Adjustment{
		StockKey: ledger.StockKey{ProductCode: req.ProductCode, Unit: catalog.Unit(req.Unit)},
		Quantity: req.Quantity,
		Note:     req.Note,
	})
	h.done(w, r, err, http.StatusNoContent)
}

type overrideRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Unit      string `json:"unit" validate:"required"`
	Grade     string `json:"grade" validate:"required"`
}

func (h *Handler) setOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	err := h.svc.SetOverride(r.Context(), ledger.GradeOverride{
		StudentKey: record.StudentKey{StudentID: req.StudentID, Unit: catalog.Unit(req.Unit)},
		Grade:      req.Grade,
	})
	h.done(w, r, err, http.StatusNoContent)
}

func (h *Handler) removeOverride(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveOverride(r.Context(), record.StudentKey{
		StudentID: chi.URLParam(r, "student"),
		Unit:      catalog.Unit(chi.URLParam(r, "unit")),
	})
	h.done(w, r, err, http.StatusNoContent)
}

type physicalCountRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	ObservedOn  string `json:"observed_on" validate:"required,datetime=2006-01-02"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

func (h *Handler) addPhysicalCount(w http.ResponseWriter, r *http.Request) {
	var req physicalCountRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	observed, err := time.Parse(time.DateOnly, req.ObservedOn)
	if err != nil {
		http.Error(w, "invalid observed_on", http.StatusBadRequest)
		return
	}

	err = h.svc.RecordPhysicalCount(r.Context(), ledger.PhysicalCount{
		StockKey:   ledger.StockKey{ProductCode: req.ProductCode, Unit: catalog.Unit(req.Unit)},
		ObservedOn: observed,
		Quantity:   req.Quantity,
	})
	h.done(w, r, err, http.StatusCreated)
}

type openEnrollmentRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	StudentName string `json:"student_name"`
	Grade       string `json:"grade"`
}

func (h *Handler) addOpenEnrollment(w http.ResponseWriter, r *http.Request) {
	var req openEnrollmentRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	err := h.svc.AddOpenEnrollment(r.Context(), ledger.OpenEnrollment{
		StudentKey:  record.StudentKey{StudentID: req.StudentID, Unit: catalog.Unit(req.Unit)},
		StudentName: req.StudentName,
		Grade:       req.Grade,
	})
	h.done(w, r, err, http.StatusCreated)
}
