package stock

import (
	"slices"
	"strings"

	"github.com/colegioelo/estoque/internal/catalog"
)

// Totals is a sum of balances.
type Totals struct {
	Shipped    int
	Sold       int
	Adjustment int
	NetSold    int
	Balance    int
}

func (t *Totals) add(b Balance) {
	t.Shipped += b.Shipped
	t.Sold += b.Sold
	t.Adjustment += b.Adjustment
	t.NetSold += b.NetSold
	t.Balance += b.Balance
}

func Network(bs []Balance) Totals {
	var t Totals
	for _, b := range bs {
		t.add(b)
	}

	return t
}

func ByUnit(bs []Balance) map[catalog.Unit]Totals {
	out := make(map[catalog.Unit]Totals)

	for _, b := range bs {
		t := out[b.Unit]
		t.add(b)
		out[b.Unit] = t
	}

	return out
}

func BySegment(bs []Balance) map[string]Totals {
	out := make(map[string]Totals)

	for _, b := range bs {
		t := out[b.Segment]
		t.add(b)
		out[b.Segment] = t
	}

	return out
}

// GradeKey groups by segment and grade, since grade labels repeat across segments.
type GradeKey struct {
	Segment string
	Grade   string
}

func ByGrade(bs []Balance) map[GradeKey]Totals {
	out := make(map[GradeKey]Totals)

	for _, b := range bs {
		k := GradeKey{Segment: b.Segment, Grade: b.Grade}
		t := out[k]
		t.add(b)
		out[k] = t
	}

	return out
}

// ProductSummary is the network-wide position of one product.
type ProductSummary struct {
	ProductCode    string
	ProductName    string
	Line           catalog.Line
	Segment        string
	Grade          string
	OrderedTotal   int
	Totals         Totals
	OrderRemaining int // ordered minus net sold
}

// Products sums balances per product, keeping catalog order.
func Products(bs []Balance) []ProductSummary {
	var (
		order []string
		index = make(map[string]*ProductSummary)
	)

	for _, b := range bs {
		p, ok := index[b.ProductCode]
		if !ok {
			p = &ProductSummary{
				ProductCode:  b.ProductCode,
				ProductName:  b.ProductName,
				Line:         b.Line,
				Segment:      b.Segment,
				Grade:        b.Grade,
				OrderedTotal: b.OrderedTotal,
			}
			index[b.ProductCode] = p
			order = append(order, b.ProductCode)
		}

		p.Totals.add(b)
	}

	out := make([]ProductSummary, 0, len(order))

	for _, code := range order {
		p := index[code]
		p.OrderRemaining = p.OrderedTotal - p.Totals.NetSold
		out = append(out, *p)
	}

	return out
}

// SortedUnits returns the keys of a per-unit map in catalog order.
func SortedUnits(cat *catalog.Catalog, m map[catalog.Unit]Totals) []catalog.Unit {
	var out []catalog.Unit

	for _, u := range cat.Units() {
		if _, ok := m[u.Code]; ok {
			out = append(out, u.Code)
		}
	}

	return out
}

// SortedSegments returns the keys of a per-segment map in display order.
func SortedSegments(m map[string]Totals) []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}

	slices.SortFunc(out, func(a, b string) int {
		return catalog.SegmentRank(a) - catalog.SegmentRank(b)
	})

	return out
}

// SortedGrades returns the keys of a per-grade map by segment display order, then grade.
func SortedGrades(m map[GradeKey]Totals) []GradeKey {
	out := make([]GradeKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	slices.SortFunc(out, func(a, b GradeKey) int {
		if d := catalog.SegmentRank(a.Segment) - catalog.SegmentRank(b.Segment); d != 0 {
			return d
		}

		return strings.Compare(a.Grade, b.Grade)
	})

	return out
}
