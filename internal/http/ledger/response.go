package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
)

type orderResponse struct {
	ProductCode  string `json:"product_code"`
	Initial      int    `json:"initial"`
	Supplemental int    `json:"supplemental"`
	Total        int    `json:"total"`
}

type quantityResponse struct {
	ProductCode string       `json:"product_code"`
	Unit        catalog.Unit `json:"unit"`
	Quantity    int          `json:"quantity"`
}

type overrideResponse struct {
	StudentID string       `json:"student_id"`
	Unit      catalog.Unit `json:"unit"`
	Grade     string       `json:"grade"`
}

type physicalCountResponse struct {
	ProductCode string       `json:"product_code"`
	Unit        catalog.Unit `json:"unit"`
	ObservedOn  string       `json:"observed_on"`
	Quantity    int          `json:"quantity"`
}

type openEnrollmentResponse struct {
	StudentID   string       `json:"student_id"`
	Unit        catalog.Unit `json:"unit"`
	StudentName string       `json:"student_name"`
	Grade       string       `json:"grade"`
}

type ledgerResponse struct {
	Orders          []orderResponse          `json:"orders"`
	Shipments       []quantityResponse       `json:"shipments"`
	Adjustments     []quantityResponse       `json:"adjustments"`
	Overrides       []overrideResponse       `json:"overrides"`
	PhysicalCounts  []physicalCountResponse  `json:"physical_counts"`
	OpenEnrollments []openEnrollmentResponse `json:"open_enrollments"`
}

func toQuantities(m map[ledger.StockKey]int) []quantityResponse {
	out := make([]quantityResponse, 0, len(m))
	for k, n := range m {
		out = append(out, quantityResponse{ProductCode: k.ProductCode, Unit: k.Unit, Quantity: n})
	}

	slices.SortFunc(out, func(a, b quantityResponse) int {
		return cmp.Or(cmp.Compare(a.ProductCode, b.ProductCode), cmp.Compare(a.Unit, b.Unit))
	})

	return out
}

func toLedgerResponse(l *ledger.Ledger) ledgerResponse {
	resp := ledgerResponse{
		Orders:          make([]orderResponse, 0, len(l.Orders)),
		Shipments:       toQuantities(l.Shipments),
		Adjustments:     toQuantities(l.Adjustments),
		Overrides:       make([]overrideResponse, 0, len(l.Overrides)),
		PhysicalCounts:  make([]physicalCountResponse, 0, len(l.PhysicalCounts)),
		OpenEnrollments: make([]openEnrollmentResponse, 0, len(l.OpenEnrollments)),
	}

	for _, o := range l.Orders {
		resp.Orders = append(resp.Orders, orderResponse{
			ProductCode:  o.ProductCode,
			Initial:      o.Initial,
			Supplemental: o.Supplemental,
			Total:        o.Total(),
		})
	}

	slices.SortFunc(resp.Orders, func(a, b orderResponse) int { return cmp.Compare(a.ProductCode, b.ProductCode) })

	for k, grade := range l.Overrides {
		resp.Overrides = append(resp.Overrides, overrideResponse{StudentID: k.StudentID, Unit: k.Unit, Grade: grade})
	}

	slices.SortFunc(resp.Overrides, func(a, b overrideResponse) int {
		return cmp.Or(cmp.Compare(a.Unit, b.Unit), cmp.Compare(a.StudentID, b.StudentID))
	})

	for _, pc := range l.PhysicalCounts {
		resp.PhysicalCounts = append(resp.PhysicalCounts, physicalCountResponse{
			ProductCode: pc.ProductCode,
			Unit:        pc.Unit,
			ObservedOn:  pc.ObservedOn.Format(time.DateOnly),
			Quantity:    pc.Quantity,
		})
	}

	slices.SortFunc(resp.PhysicalCounts, func(a, b physicalCountResponse) int {
		return cmp.Or(cmp.Compare(a.ProductCode, b.ProductCode), cmp.Compare(a.Unit, b.Unit))
	})

	for _, e := range l.OpenEnrollments {
		resp.OpenEnrollments = append(resp.OpenEnrollments, openEnrollmentResponse{
			StudentID:   e.StudentID,
			Unit:        e.Unit,
			StudentName: e.StudentName,
			Grade:       e.Grade,
		})
	}

	return resp
}
