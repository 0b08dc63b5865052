package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/colegioelo/estoque/internal/catalog"
	reporthttp "github.com/colegioelo/estoque/internal/http/report"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/report"
)

func snapshot() *record.Snapshot {
	return &record.Snapshot{
		ID:      uuid.New(),
		TakenAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Records: []record.Record{
			{Unit: catalog.UnitBV, ProductCode: "915", StudentID: "1", Grade: "5º Ano"},
			{Unit: catalog.UnitBV, ProductCode: "995", StudentID: "1", Grade: catalog.GradeUndetermined},
			{Unit: catalog.UnitBV, ProductCode: "995", StudentID: "2", StudentName: "Caio", Grade: catalog.GradeUndetermined},
			{Unit: catalog.UnitCD, ProductCode: "913", StudentID: "3", Grade: "3º Ano"},
			{Unit: catalog.UnitJG, ProductCode: "916", StudentID: "4", Grade: "6º Ano"},
			{Unit: catalog.UnitCDR, ProductCode: "921", StudentID: "5", Grade: "1º Ano"},
		},
	}
}

func newRouter(t *testing.T, snap *record.Snapshot, snapErr error) http.Handler {
	ctrl := gomock.NewController(t)
	snapshots := report.NewMockSnapshotSource(ctrl)
	ledgers := report.NewMockLedgerSource(ctrl)

	snapshots.EXPECT().Latest(gomock.Any()).Return(snap, snapErr).AnyTimes()

	l := ledger.New()
	l.Shipments[ledger.StockKey{ProductCode: "915", Unit: catalog.UnitBV}] = 10
	ledgers.EXPECT().Load(gomock.Any()).Return(l, nil).AnyTimes()

	cat := catalog.Default()
	h := reporthttp.NewHandler(report.NewService(cat, snapshots, ledgers), cat)

	r := chi.NewRouter()
	r.Route("/report", h.Routes)

	return r
}

func get(t *testing.T, h http.Handler, target string, dst any) int {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if dst != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
	}

	return rec.Code
}

type balance struct {
	ProductCode string `json:"product_code"`
	Unit        string `json:"unit"`
	Shipped     int    `json:"shipped"`
	Sold        int    `json:"sold"`
	Balance     int    `json:"balance"`
	Band        string `json:"band"`
}

func TestHandler_Stock(t *testing.T) {
	h := newRouter(t, snapshot(), nil)

	var all []balance
	require.Equal(t, http.StatusOK, get(t, h, "/report/stock", &all))
	assert.Len(t, all, 25*4-1)

	var bv []balance
	require.Equal(t, http.StatusOK, get(t, h, "/report/stock?unit=BV&line=curriculum", &bv))
	assert.Len(t, bv, 16)

	for _, b := range bv {
		if b.ProductCode == "915" {
			assert.Equal(t, balance{ProductCode: "915", Unit: "BV", Shipped: 10, Sold: 1, Balance: 9, Band: "ok"}, b)
		}
	}

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/report/stock?unit=XX", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/report/stock?band=red", nil))
}

func TestHandler_Totals(t *testing.T) {
	h := newRouter(t, snapshot(), nil)

	type totals struct {
		Key  string `json:"key"`
		Sold int    `json:"sold"`
	}

	tests := []struct {
		by       string
		wantKeys []string
	}{
		{by: "", wantKeys: []string{"network"}},
		{by: "unit", wantKeys: []string{"BV", "CD", "JG", "CDR"}},
	}

	for _, tt := range tests {
		var got []totals
		require.Equal(t, http.StatusOK, get(t, h, "/report/totals?by="+tt.by, &got))

		keys := make([]string, 0, len(got))
		for _, g := range got {
			keys = append(keys, g.Key)
		}

		assert.Equal(t, tt.wantKeys, keys)
	}

	var segments []totals
	require.Equal(t, http.StatusOK, get(t, h, "/report/totals?by=segment&line=curriculum", &segments))
	assert.Equal(t, catalog.SegmentInfantil, segments[0].Key)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/report/totals?by=product", nil))
}

func TestHandler_Sales(t *testing.T) {
	h := newRouter(t, snapshot(), nil)

	type count struct {
		Segment  string `json:"segment"`
		Grade    string `json:"grade"`
		Unit     string `json:"unit"`
		Students int    `json:"students"`
	}

	var tech []count
	require.Equal(t, http.StatusOK, get(t, h, "/report/sales/technology", &tech))
	assert.Equal(t, []count{
		{Segment: catalog.SegmentFund1, Grade: "5º Ano", Unit: "BV", Students: 1},
		{Segment: catalog.SegmentOther, Grade: catalog.GradeUngraded, Unit: "BV", Students: 1},
	}, tech)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/report/sales/stationery", nil))
}

func TestHandler_Views(t *testing.T) {
	h := newRouter(t, snapshot(), nil)

	var summary struct {
		Records  int  `json:"records"`
		Ungraded int  `json:"ungraded"`
		Passed   bool `json:"passed"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/report/", &summary))
	assert.Equal(t, 6, summary.Records)
	assert.Equal(t, 1, summary.Ungraded)

	var products []map[string]any
	require.Equal(t, http.StatusOK, get(t, h, "/report/products", &products))
	assert.Len(t, products, 25)

	var alerts []balance
	require.Equal(t, http.StatusOK, get(t, h, "/report/alerts?unit=CD", &alerts))
	require.NotEmpty(t, alerts)
	assert.Equal(t, "shortage", alerts[0].Band)

	var briefing []map[string]any
	require.Equal(t, http.StatusOK, get(t, h, "/report/briefing", &briefing))
	assert.Len(t, briefing, 4)

	var ungraded []struct {
		StudentName string `json:"student_name"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/report/ungraded", &ungraded))
	require.Len(t, ungraded, 1)
	assert.Equal(t, "Caio", ungraded[0].StudentName)

	var physical []map[string]any
	require.Equal(t, http.StatusOK, get(t, h, "/report/physical", &physical))
	assert.Empty(t, physical)
}

func TestHandler_NoSnapshot(t *testing.T) {
	h := newRouter(t, nil, record.ErrNotFound)

	for _, target := range []string{"/report/", "/report/stock", "/report/briefing"} {
		assert.Equal(t, http.StatusNotFound, get(t, h, target, nil), target)
	}
}
