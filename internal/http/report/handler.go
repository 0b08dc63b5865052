package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/http/api"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/stock"
)

type Handler struct {
	svc *report.Service
	cat *catalog.Catalog
}

func NewHandler(svc *report.Service, cat *catalog.Catalog) *Handler {
	return &Handler{svc: svc, cat: cat}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/stock", h.stock)
	r.Get("/totals", h.totals)
	r.Get("/sales/{line}", h.sales)
	r.Get("/alerts", h.alerts)
	r.Get("/physical", h.physical)
	r.Get("/briefing", h.briefing)
	r.Get("/products", h.products)
	r.Get("/ungraded", h.ungraded)
}

// current serves the cached report, writing the error response itself on failure.
func (h *Handler) current(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	rep, err := h.svc.Current(r.Context())
	if err != nil {
		api.Error(w, r, err)
		return nil, false
	}

	return rep, true
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toSummary(rep))
}

func (h *Handler) stock(w http.ResponseWriter, r *http.Request) {
	filter, err := api.ParseFilter(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toBalances(filter.Apply(rep.Balances)))
}

type totalsQuery struct {
	By string `json:"by" validate:"oneof=network unit segment grade"`
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	tq := totalsQuery{By: r.URL.Query().Get("by")}
	if tq.By == "" {
		tq.By = "network"
	}

	if err := api.Validate(tq); err != nil {
		api.Error(w, r, err)
		return
	}

	filter, err := api.ParseFilter(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	bs := filter.Apply(rep.Balances)

	var out []totalsResponse

	switch tq.By {
	case "network":
		out = append(out, toTotals("network", "", stock.Network(bs)))
	case "unit":
		byUnit := stock.ByUnit(bs)
		for _, u := range stock.SortedUnits(h.cat, byUnit) {
			out = append(out, toTotals(string(u), "", byUnit[u]))
		}
	case "segment":
		bySegment := stock.BySegment(bs)
		for _, s := range stock.SortedSegments(bySegment) {
			out = append(out, toTotals(s, s, bySegment[s]))
		}
	case "grade":
		byGrade := stock.ByGrade(bs)
		for _, k := range stock.SortedGrades(byGrade) {
			out = append(out, toTotals(k.Grade, k.Segment, byGrade[k]))
		}
	}

	api.JSON(w, http.StatusOK, out)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	line := catalog.Line(chi.URLParam(r, "line"))
	if !line.Valid() {
		http.Error(w, "unknown product line", http.StatusNotFound)
		return
	}

	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toSales(h.cat, rep.Sales[line]))
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	filter, err := api.ParseFilter(r)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toBalances(filter.Apply(stock.Alerts(rep.Balances))))
}

func (h *Handler) physical(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toPhysical(rep.Physical))
}

func (h *Handler) briefing(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toBriefing(rep.Briefing))
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toProducts(rep.Products()))
}

func (h *Handler) ungraded(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.current(w, r)
	if !ok {
		return
	}

	api.JSON(w, http.StatusOK, toResolutions(rep.Unresolved()))
}
