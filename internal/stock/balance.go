package stock

import (
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/sales"
)

// Band classifies a stock balance.
type Band string

const (
	BandShortage Band = "shortage"
	BandLow      Band = "low"
	BandOK       Band = "ok"
)

// LowStockLimit is the highest balance still reported as low.
const LowStockLimit = 5

// Classify maps a balance to its band: negative is a shortage, 0 through
// LowStockLimit is low, anything above is ok.
func Classify(balance int) Band {
	switch {
	case balance < 0:
		return BandShortage
	case balance <= LowStockLimit:
		return BandLow
	default:
		return BandOK
	}
}

// StockBalance is what should remain on the shelf: shipped minus sold plus add-backs.
func StockBalance(shipped, sold, adjustment int) int {
	return shipped - sold + adjustment
}

// NetSales is the sales figure with add-backs removed, used against publisher orders.
func NetSales(sold, adjustment int) int {
	return sold - adjustment
}

// Balance is the reconciled position of one product at one unit.
type Balance struct {
	ProductCode         string
	ProductName         string
	Line                catalog.Line
	Segment             string
	Grade               string
	Unit                catalog.Unit
	OrderedInitial      int
	OrderedSupplemental int
	OrderedTotal        int
	Shipped             int
	Sold                int
	Adjustment          int
	Balance             int
	NetSold             int
	Band                Band
}

func (b Balance) Key() ledger.StockKey {
	return ledger.StockKey{ProductCode: b.ProductCode, Unit: b.Unit}
}

// Sales holds distinct-student counts per product line.
type Sales struct {
	Curriculum     sales.Counts
	SocioEmotional sales.Counts
	Technology     sales.Counts
}

// Sold returns the number of distinct students who bought entry at unit.
// Technology sales are spread over inferred grades, so the unit total is used.
func (s Sales) Sold(e catalog.Entry, unit catalog.Unit) int {
	switch e.Line {
	case catalog.LineCurriculum:
		return s.Curriculum.Get(e.Segment, e.Grade, unit)
	case catalog.LineSocioEmotional:
		return s.SocioEmotional.Get(e.Segment, e.Grade, unit)
	case catalog.LineTechnology:
		return s.Technology.UnitTotal(unit)
	}

	return 0
}

// Reconcile computes one Balance for every in-scope (product, unit) pair in catalog order.
func Reconcile(cat *catalog.Catalog, l *ledger.Ledger, s Sales) []Balance {
	units := cat.Units()
	out := make([]Balance, 0, len(units)*len(cat.Entries()))

	for _, e := range cat.Entries() {
		order := l.Order(e.Code)

		for _, u := range units {
			if cat.Excluded(e.Code, u.Code) {
				continue
			}

			key := ledger.StockKey{ProductCode: e.Code, Unit: u.Code}
			shipped := l.Shipped(key)
			sold := s.Sold(e, u.Code)
			adj := l.Adjustment(key)
			bal := StockBalance(shipped, sold, adj)

			out = append(out, Balance{
				ProductCode:         e.Code,
				ProductName:         e.Name,
				Line:                e.Line,
				Segment:             e.Segment,
				Grade:               e.Grade,
				Unit:                u.Code,
				OrderedInitial:      order.Initial,
				OrderedSupplemental: order.Supplemental,
				OrderedTotal:        order.Total(),
				Shipped:             shipped,
				Sold:                sold,
				Adjustment:          adj,
				Balance:             bal,
				NetSold:             NetSales(sold, adj),
				Band:                Classify(bal),
			})
		}
	}

	return out
}

// Filter narrows balances; zero-valued fields match everything.
type Filter struct {
	Unit    catalog.Unit
	Segment string
	Line    catalog.Line
	Band    Band
}

func (f Filter) Apply(bs []Balance) []Balance {
	var out []Balance

	for _, b := range bs {
		if f.Unit != "" && b.Unit != f.Unit {
			continue
		}

		if f.Segment != "" && b.Segment != f.Segment {
			continue
		}

		if f.Line != "" && b.Line != f.Line {
			continue
		}

		if f.Band != "" && b.Band != f.Band {
			continue
		}

		out = append(out, b)
	}

	return out
}

// Alerts returns the balances that are not ok, shortages first.
func Alerts(bs []Balance) []Balance {
	var shortages, low []Balance

	for _, b := range bs {
		switch b.Band {
		case BandShortage:
			shortages = append(shortages, b)
		case BandLow:
			low = append(low, b)
		}
	}

	return append(shortages, low...)
}
