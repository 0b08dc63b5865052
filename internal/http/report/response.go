package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/report"
	"github.com/colegioelo/estoque/internal/sales"
	"github.com/colegioelo/estoque/internal/stock"
)

type summaryResponse struct {
	SnapshotID uuid.UUID      `json:"snapshot_id"`
	TakenAt    time.Time      `json:"taken_at"`
	BuiltAt    time.Time      `json:"built_at"`
	Records    int            `json:"records"`
	Injected   int            `json:"injected"`
	Ungraded   int            `json:"ungraded"`
	Passed     bool           `json:"passed"`
	Audit      []audit.Result `json:"audit"`
}

func toSummary(r *report.Report) summaryResponse {
	ungraded := 0
	for _, n := range r.Ungraded {
		ungraded += n
	}

	return summaryResponse{
		SnapshotID: r.SnapshotID,
		TakenAt:    r.TakenAt,
		BuiltAt:    r.BuiltAt,
		Records:    r.Records,
		Injected:   r.Injected,
		Ungraded:   ungraded,
		Passed:     r.Passed(),
		Audit:      r.Audit,
	}
}

type balanceResponse struct {
	ProductCode         string       `json:"product_code"`
	ProductName         string       `json:"product_name"`
	Line                catalog.Line `json:"line"`
	Segment             string       `json:"segment"`
	Grade               string       `json:"grade"`
	Unit                catalog.Unit `json:"unit"`
	OrderedInitial      int          `json:"ordered_initial"`
	OrderedSupplemental int          `json:"ordered_supplemental"`
	OrderedTotal        int          `json:"ordered_total"`
	Shipped             int          `json:"shipped"`
	Sold                int          `json:"sold"`
	Adjustment          int          `json:"adjustment"`
	Balance             int          `json:"balance"`
	NetSold             int          `json:"net_sold"`
	Band                stock.Band   `json:"band"`
}

func toBalances(bs []stock.Balance) []balanceResponse {
	out := make([]balanceResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, balanceResponse{
			ProductCode:         b.ProductCode,
			ProductName:         b.ProductName,
			Line:                b.Line,
			Segment:             b.Segment,
			Grade:               b.Grade,
			Unit:                b.Unit,
			OrderedInitial:      b.OrderedInitial,
			OrderedSupplemental: b.OrderedSupplemental,
			OrderedTotal:        b.OrderedTotal,
			Shipped:             b.Shipped,
			Sold:                b.Sold,
			Adjustment:          b.Adjustment,
			Balance:             b.Balance,
			NetSold:             b.NetSold,
			Band:                b.Band,
		})
	}

	return out
}

type totalsResponse struct {
	Key        string `json:"key"`
	Segment    string `json:"segment,omitempty"`
	Shipped    int    `json:"shipped"`
	Sold       int    `json:"sold"`
	Adjustment int    `json:"adjustment"`
	NetSold    int    `json:"net_sold"`
	Balance    int    `json:"balance"`
}

func toTotals(key, segment string, t stock.Totals) totalsResponse {
	return totalsResponse{
		Key:        key,
		Segment:    segment,
		Shipped:    t.Shipped,
		Sold:       t.Sold,
		Adjustment: t.Adjustment,
		NetSold:    t.NetSold,
		Balance:    t.Balance,
	}
}

type productResponse struct {
	ProductCode    string       `json:"product_code"`
	ProductName    string       `json:"product_name"`
	Line           catalog.Line `json:"line"`
	Segment        string       `json:"segment"`
	Grade          string       `json:"grade"`
	OrderedTotal   int          `json:"ordered_total"`
	Shipped        int          `json:"shipped"`
	Sold           int          `json:"sold"`
	Adjustment     int          `json:"adjustment"`
	NetSold        int          `json:"net_sold"`
	Balance        int          `json:"balance"`
	OrderRemaining int          `json:"order_remaining"`
}

func toProducts(ps []stock.ProductSummary) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, productResponse{
			ProductCode:    p.ProductCode,
			ProductName:    p.ProductName,
			Line:           p.Line,
			Segment:        p.Segment,
			Grade:          p.Grade,
			OrderedTotal:   p.OrderedTotal,
			Shipped:        p.Totals.Shipped,
			Sold:           p.Totals.Sold,
			Adjustment:     p.Totals.Adjustment,
			NetSold:        p.Totals.NetSold,
			Balance:        p.Totals.Balance,
			OrderRemaining: p.OrderRemaining,
		})
	}

	return out
}

type salesResponse struct {
	Segment  string       `json:"segment"`
	Grade    string       `json:"grade"`
	Unit     catalog.Unit `json:"unit"`
	Students int          `json:"students"`
}

// toSales lists counts by segment display order, then grade, then unit.
func toSales(cat *catalog.Catalog, c sales.Counts) []salesResponse {
	unitRank := make(map[catalog.Unit]int)
	for i, u := range cat.Units() {
		unitRank[u.Code] = i
	}

	out := make([]salesResponse, 0, len(c))
	for k, n := range c {
		out = append(out, salesResponse{Segment: k.Segment, Grade: k.Grade, Unit: k.Unit, Students: n})
	}

	slices.SortFunc(out, func(a, b salesResponse) int {
		return cmp.Or(
			cmp.Compare(catalog.SegmentRank(a.Segment), catalog.SegmentRank(b.Segment)),
			cmp.Compare(a.Grade, b.Grade),
			cmp.Compare(unitRank[a.Unit], unitRank[b.Unit]),
		)
	})

	return out
}

type physicalResponse struct {
	ProductCode string       `json:"product_code"`
	Segment     string       `json:"segment"`
	Grade       string       `json:"grade"`
	Unit        catalog.Unit `json:"unit"`
	Shipped     int          `json:"shipped"`
	Sold        int          `json:"sold"`
	Theoretical int          `json:"theoretical"`
	Physical    int          `json:"physical"`
	Difference  int          `json:"difference"`
	ObservedOn  string       `json:"observed_on"`
}

func toPhysical(ds []stock.PhysicalDiff) []physicalResponse {
	out := make([]physicalResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, physicalResponse{
			ProductCode: d.ProductCode,
			Segment:     d.Segment,
			Grade:       d.Grade,
			Unit:        d.Unit,
			Shipped:     d.Shipped,
			Sold:        d.Sold,
			Theoretical: d.Theoretical,
			Physical:    d.Physical,
			Difference:  d.Difference,
			ObservedOn:  d.ObservedOn.Format(time.DateOnly),
		})
	}

	return out
}

type findingResponse struct {
	Kind        stock.FindingKind `json:"kind"`
	Line        catalog.Line      `json:"line"`
	ProductCode string            `json:"product_code,omitempty"`
	Grade       string            `json:"grade,omitempty"`
	Message     string            `json:"message"`
}

type briefingResponse struct {
	Unit     catalog.Unit         `json:"unit"`
	Name     string               `json:"name"`
	Status   stock.Status         `json:"status"`
	Sold     map[catalog.Line]int `json:"sold"`
	Findings []findingResponse    `json:"findings"`
}

func toBriefing(ubs []stock.UnitBriefing) []briefingResponse {
	out := make([]briefingResponse, 0, len(ubs))
	for _, ub := range ubs {
		findings := make([]findingResponse, 0, len(ub.Findings))
		for _, f := range ub.Findings {
			findings = append(findings, findingResponse{
				Kind:        f.Kind,
				Line:        f.Line,
				ProductCode: f.ProductCode,
				Grade:       f.Grade,
				Message:     f.Message,
			})
		}

		out = append(out, briefingResponse{
			Unit:     ub.Unit,
			Name:     ub.Name,
			Status:   ub.Status,
			Sold:     ub.Sold,
			Findings: findings,
		})
	}

	return out
}

type resolutionResponse struct {
	StudentID    string       `json:"student_id"`
	Unit         catalog.Unit `json:"unit"`
	StudentName  string       `json:"student_name"`
	ClassSection string       `json:"class_section"`
	Grade        string       `json:"grade"`
	Segment      string       `json:"segment"`
	Source       sales.Source `json:"source"`
}

func toResolutions(rs []sales.Resolution) []resolutionResponse {
	out := make([]resolutionResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, resolutionResponse{
			StudentID:    r.Key.StudentID,
			Unit:         r.Key.Unit,
			StudentName:  r.StudentName,
			ClassSection: r.ClassSection,
			Grade:        r.Grade,
			Segment:      r.Segment,
			Source:       r.Source,
		})
	}

	return out
}
