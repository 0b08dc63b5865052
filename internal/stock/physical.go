package stock

import (
	"time"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
)

// PhysicalDiff compares a manual count with the theoretical stock.
type PhysicalDiff struct {
	ProductCode string
	Segment     string
	Grade       string
	Unit        catalog.Unit
	Shipped     int
	Sold        int
	Theoretical int
	Physical    int
	Difference  int
	ObservedOn  time.Time
}

func (d PhysicalDiff) Mismatch() bool {
	return d.Difference != 0
}

// PhysicalAudit compares the latest count of each balance with shipped minus sold.
// Balances with no count are skipped.
func PhysicalAudit(bs []Balance, l *ledger.Ledger) []PhysicalDiff {
	var out []PhysicalDiff

	for _, b := range bs {
		pc, ok := l.PhysicalCount(b.Key())
		if !ok {
			continue
		}

		theoretical := b.Shipped - b.Sold

		out = append(out, PhysicalDiff{
			ProductCode: b.ProductCode,
			Segment:     b.Segment,
			Grade:       b.Grade,
			Unit:        b.Unit,
			Shipped:     b.Shipped,
			Sold:        b.Sold,
			Theoretical: theoretical,
			Physical:    pc.Quantity,
			Difference:  pc.Quantity - theoretical,
			ObservedOn:  pc.ObservedOn,
		})
	}

	return out
}
