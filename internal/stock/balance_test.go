package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/sales"
	"github.com/colegioelo/estoque/internal/stock"
)

// twoProducts is a small catalog with one unit and two curriculum products.
func twoProducts() *catalog.Catalog {
	return catalog.New(
		[]catalog.Entry{
			{Code: "X", Name: "Product X", Segment: catalog.SegmentFund1, Grade: "5º Ano", Line: catalog.LineCurriculum},
			{Code: "Y", Name: "Product Y", Segment: catalog.SegmentFund2, Grade: "6º Ano", Line: catalog.LineCurriculum},
		},
		[]catalog.UnitInfo{{Code: "A", Name: "Unit A"}},
		nil,
	)
}

func find(t *testing.T, bs []stock.Balance, code string, unit catalog.Unit) stock.Balance {
	t.Helper()

	for _, b := range bs {
		if b.ProductCode == code && b.Unit == unit {
			return b
		}
	}

	require.Failf(t, "balance not found", "%s at %s", code, unit)

	return stock.Balance{}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		balance int
		want    stock.Band
	}{
		{balance: -10, want: stock.BandShortage},
		{balance: -1, want: stock.BandShortage},
		{balance: 0, want: stock.BandLow},
		{balance: 5, want: stock.BandLow},
		{balance: 6, want: stock.BandOK},
		{balance: 500, want: stock.BandOK},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stock.Classify(tt.balance), "balance %d", tt.balance)
	}
}

func TestStockBalance_IsAlgebraicIdentity(t *testing.T) {
	for shipped := -3; shipped <= 3; shipped++ {
		for sold := -3; sold <= 3; sold++ {
			for adj := -3; adj <= 3; adj++ {
				assert.Equal(t, shipped-sold+adj, stock.StockBalance(shipped, sold, adj))
				assert.Equal(t, sold-adj, stock.NetSales(sold, adj))
			}
		}
	}
}

func TestReconcile_EndToEnd(t *testing.T) {
	cat := twoProducts()

	l := ledger.New()
	l.Orders["X"] = ledger.Order{ProductCode: "X", Initial: 100, Supplemental: 30}
	l.Shipments[ledger.StockKey{ProductCode: "X", Unit: "A"}] = 120
	l.Adjustments[ledger.StockKey{ProductCode: "X", Unit: "A"}] = 5
	l.Shipments[ledger.StockKey{ProductCode: "Y", Unit: "A"}] = 10

	var records []record.Record
	for _, student := range []string{"S1", "S2"} {
		for range 2 {
			records = append(records, record.Record{Unit: "A", ProductCode: "X", StudentID: student})
		}
	}

	for i := range 12 {
		records = append(records, record.Record{Unit: "A", ProductCode: "Y", StudentID: string(rune('a' + i))})
	}

	tagged := sales.Scope(cat, records)
	bs := stock.Reconcile(cat, l, stock.Sales{Curriculum: sales.CountUnique(tagged, catalog.LineCurriculum)})
	require.Len(t, bs, 2)

	x := find(t, bs, "X", "A")
	assert.Equal(t, 130, x.OrderedTotal)
	assert.Equal(t, 120, x.Shipped)
	assert.Equal(t, 2, x.Sold)
	assert.Equal(t, 5, x.Adjustment)
	assert.Equal(t, 123, x.Balance)
	assert.Equal(t, -3, x.NetSold)
	assert.Equal(t, stock.BandOK, x.Band)

	y := find(t, bs, "Y", "A")
	assert.Equal(t, 12, y.Sold)
	assert.Equal(t, -2, y.Balance, "negative balances are not clamped")
	assert.Equal(t, stock.BandShortage, y.Band)
}

func TestReconcile_DefaultCatalog(t *testing.T) {
	cat := catalog.Default()
	l := ledger.New()

	tagged := sales.Scope(cat, []record.Record{
		{Unit: catalog.UnitBV, ProductCode: "915", StudentID: "S1"},
		{Unit: catalog.UnitBV, ProductCode: "995", StudentID: "S1", Grade: catalog.GradeUndetermined},
		{Unit: catalog.UnitBV, ProductCode: "995", StudentID: "S2", Grade: catalog.GradeUndetermined},
		{Unit: catalog.UnitBV, ProductCode: "945", StudentID: "S1"},
	})
	_, tech := sales.InferTechnology(tagged, sales.DefaultChain(tagged, nil))

	bs := stock.Reconcile(cat, l, stock.Sales{
		Curriculum:     sales.CountUnique(tagged, catalog.LineCurriculum),
		SocioEmotional: sales.CountUnique(tagged, catalog.LineSocioEmotional),
		Technology:     tech,
	})

	// 25 products at 4 units, minus technology at Cordeiro.
	assert.Len(t, bs, 25*4-1)

	for _, b := range bs {
		assert.False(t, b.ProductCode == "995" && b.Unit == catalog.UnitCDR)
	}

	assert.Equal(t, 1, find(t, bs, "915", catalog.UnitBV).Sold)
	assert.Equal(t, 1, find(t, bs, "945", catalog.UnitBV).Sold)
	assert.Equal(t, 2, find(t, bs, "995", catalog.UnitBV).Sold, "ungraded students still count")
	assert.Equal(t, -1, find(t, bs, "915", catalog.UnitBV).Balance, "missing shipment reads as zero")
}

func TestFilterAndAlerts(t *testing.T) {
	bs := []stock.Balance{
		{ProductCode: "1", Unit: catalog.UnitBV, Segment: catalog.SegmentFund1, Line: catalog.LineCurriculum, Balance: 10, Band: stock.BandOK},
		{ProductCode: "2", Unit: catalog.UnitBV, Segment: catalog.SegmentFund2, Line: catalog.LineCurriculum, Balance: 3, Band: stock.BandLow},
		{ProductCode: "3", Unit: catalog.UnitJG, Segment: catalog.SegmentFund1, Line: catalog.LineSocioEmotional, Balance: -4, Band: stock.BandShortage},
	}

	assert.Len(t, stock.Filter{Unit: catalog.UnitBV}.Apply(bs), 2)
	assert.Len(t, stock.Filter{Segment: catalog.SegmentFund1}.Apply(bs), 2)
	assert.Len(t, stock.Filter{Line: catalog.LineSocioEmotional}.Apply(bs), 1)
	assert.Len(t, stock.Filter{Unit: catalog.UnitJG, Band: stock.BandOK}.Apply(bs), 0)
	assert.Len(t, stock.Filter{}.Apply(bs), 3)

	alerts := stock.Alerts(bs)
	require.Len(t, alerts, 2)
	assert.Equal(t, "3", alerts[0].ProductCode, "shortages come first")
	assert.Equal(t, "2", alerts[1].ProductCode)
}

func TestPhysicalAudit(t *testing.T) {
	l := ledger.New()
	observed := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	l.AddPhysicalCount(ledger.PhysicalCount{StockKey: ledger.StockKey{ProductCode: "X", Unit: "A"}, ObservedOn: observed, Quantity: 110})
	l.AddPhysicalCount(ledger.PhysicalCount{StockKey: ledger.StockKey{ProductCode: "Y", Unit: "A"}, ObservedOn: observed, Quantity: 0})

	bs := []stock.Balance{
		{ProductCode: "X", Unit: "A", Shipped: 120, Sold: 10, Adjustment: 5},
		{ProductCode: "Y", Unit: "A", Shipped: 10, Sold: 12},
		{ProductCode: "Z", Unit: "A", Shipped: 10, Sold: 1},
	}

	diffs := stock.PhysicalAudit(bs, l)
	require.Len(t, diffs, 2, "balances without a count are skipped")

	assert.Equal(t, 110, diffs[0].Theoretical, "adjustment is not part of the theoretical stock")
	assert.Equal(t, 0, diffs[0].Difference)
	assert.False(t, diffs[0].Mismatch())

	assert.Equal(t, -2, diffs[1].Theoretical)
	assert.Equal(t, 2, diffs[1].Difference)
	assert.True(t, diffs[1].Mismatch())
	assert.True(t, observed.Equal(diffs[1].ObservedOn))
}
