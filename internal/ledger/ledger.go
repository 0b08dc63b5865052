package ledger

import (
	"time"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

// StockKey identifies one product at one unit.
type StockKey struct {
	ProductCode string
	Unit        catalog.Unit
}

// Order is the quantity bought from the publisher for a product, network-wide.
type Order struct {
	ProductCode  string
	Initial      int
	Supplemental int
}

func (o Order) Total() int {
	return o.Initial + o.Supplemental
}

// Shipment is the quantity delivered to a unit.
type Shipment struct {
	StockKey
	Quantity int
}

// Adjustment adds back units bought outside the current cycle (e.g. prior-year purchases).
type Adjustment struct {
	StockKey
	Quantity int
	Note     string
}

// GradeOverride pins a student's grade for grade inference.
type GradeOverride struct {
	record.StudentKey
	Grade string
}

// PhysicalCount is one manual stock count observation.
type PhysicalCount struct {
	StockKey
	ObservedOn time.Time
	Quantity   int
}

// OpenEnrollment is a technology-program student billed but not yet settled.
type OpenEnrollment struct {
	record.StudentKey
	StudentName string
	Grade       string
}

// Ledger is a read-only view of every manual ledger, loaded once per report.
// Missing entries read as zero.
type Ledger struct {
	Orders          map[string]Order
	Shipments       map[StockKey]int
	Adjustments     map[StockKey]int
	Overrides       map[record.StudentKey]string
	PhysicalCounts  map[StockKey]PhysicalCount
	OpenEnrollments []OpenEnrollment
}

func New() *Ledger {
	return &Ledger{
		Orders:         make(map[string]Order),
		Shipments:      make(map[StockKey]int),
		Adjustments:    make(map[StockKey]int),
		Overrides:      make(map[record.StudentKey]string),
		PhysicalCounts: make(map[StockKey]PhysicalCount),
	}
}

func (l *Ledger) Order(code string) Order {
	o, ok := l.Orders[code]
	if !ok {
		return Order{ProductCode: code}
	}

	return o
}

func (l *Ledger) Shipped(k StockKey) int {
	return l.Shipments[k]
}

func (l *Ledger) Adjustment(k StockKey) int {
	return l.Adjustments[k]
}

// PhysicalCount returns the most recent count for k.
func (l *Ledger) PhysicalCount(k StockKey) (PhysicalCount, bool) {
	pc, ok := l.PhysicalCounts[k]
	return pc, ok
}

// AddPhysicalCount keeps pc only when it is at least as recent as the stored count.
func (l *Ledger) AddPhysicalCount(pc PhysicalCount) {
	cur, ok := l.PhysicalCounts[pc.StockKey]
	if ok && pc.ObservedOn.Before(cur.ObservedOn) {
		return
	}

	l.PhysicalCounts[pc.StockKey] = pc
}
