package stock

import (
	"fmt"

	"github.com/colegioelo/estoque/internal/catalog"
)

// CriticalStockLimit is the balance at or under which a shipped product is flagged in briefings.
const CriticalStockLimit = 3

type FindingKind string

const (
	FindingNegativeStock    FindingKind = "negative_stock"
	FindingCriticalStock    FindingKind = "critical_stock"
	FindingAdjustmentCovers FindingKind = "adjustment_covers_sales"
	FindingNoSales          FindingKind = "no_sales"
	FindingUngradedStudents FindingKind = "ungraded_students"
)

type Finding struct {
	Kind        FindingKind
	Line        catalog.Line
	ProductCode string
	Grade       string
	Message     string
}

// Status summarizes a unit briefing by its number of findings.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

type UnitBriefing struct {
	Unit     catalog.Unit
	Name     string
	Status   Status
	Sold     map[catalog.Line]int
	Findings []Finding
}

func statusFor(n int) Status {
	switch {
	case n == 0:
		return StatusOK
	case n <= 3:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// Brief lists the pending issues of every unit. ungraded holds the number of
// technology students per unit whose grade could not be inferred.
func Brief(cat *catalog.Catalog, bs []Balance, ungraded map[catalog.Unit]int) []UnitBriefing {
	out := make([]UnitBriefing, 0, len(cat.Units()))

	for _, u := range cat.Units() {
		ub := UnitBriefing{Unit: u.Code, Name: u.Name, Sold: make(map[catalog.Line]int)}

		for _, b := range bs {
			if b.Unit != u.Code {
				continue
			}

			ub.Sold[b.Line] += b.Sold
			ub.Findings = append(ub.Findings, balanceFindings(b)...)
		}

		if n := ungraded[u.Code]; n > 0 {
			ub.Findings = append(ub.Findings, Finding{
				Kind:    FindingUngradedStudents,
				Line:    catalog.LineTechnology,
				Message: fmt.Sprintf("%d technology student(s) without an identified grade", n),
			})
		}

		ub.Status = statusFor(len(ub.Findings))
		out = append(out, ub)
	}

	return out
}

func balanceFindings(b Balance) []Finding {
	var out []Finding

	add := func(kind FindingKind, format string, args ...any) {
		out = append(out, Finding{
			Kind:        kind,
			Line:        b.Line,
			ProductCode: b.ProductCode,
			Grade:       b.Grade,
			Message:     fmt.Sprintf("%s %s: ", b.Segment, b.Grade) + fmt.Sprintf(format, args...),
		})
	}

	if b.Line == catalog.LineCurriculum {
		switch {
		case b.Balance < 0:
			add(FindingNegativeStock, "negative stock (%d), sold %d, shipped %d", b.Balance, b.Sold, b.Shipped)
		case b.Balance <= CriticalStockLimit && b.Shipped > 0:
			add(FindingCriticalStock, "critical stock (%d left)", b.Balance)
		}
	}

	if b.Line == catalog.LineTechnology {
		return out
	}

	if b.Adjustment > 0 && b.Adjustment >= b.Sold {
		add(FindingAdjustmentCovers, "adjustment (%d) >= sold (%d), net sales zero or negative", b.Adjustment, b.Sold)
	}

	if b.Line == catalog.LineSocioEmotional && b.Sold == 0 {
		add(FindingNoSales, "no sales recorded")
	}

	return out
}
