package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/export"
	"github.com/colegioelo/estoque/internal/feed"
	estoquehttp "github.com/colegioelo/estoque/internal/http"
	audithttp "github.com/colegioelo/estoque/internal/http/audit"
	exporthttp "github.com/colegioelo/estoque/internal/http/export"
	feedhttp "github.com/colegioelo/estoque/internal/http/feed"
	ledgerhttp "github.com/colegioelo/estoque/internal/http/ledger"
	reporthttp "github.com/colegioelo/estoque/internal/http/report"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/report"
)

func newRouter(t *testing.T) http.Handler {
	ctrl := gomock.NewController(t)
	cat := catalog.Default()

	snapshots := report.NewMockSnapshotSource(ctrl)
	snapshots.EXPECT().Latest(gomock.Any()).Return(nil, record.ErrNotFound).AnyTimes()

	reports := report.NewService(cat, snapshots, report.NewMockLedgerSource(ctrl))

	return estoquehttp.New(
		[]string{"http://localhost:5173"},
		feedhttp.NewHandler(feed.NewService(cat, nil, nil, nil, nil, reports)),
		reporthttp.NewHandler(reports, cat),
		ledgerhttp.NewHandler(ledger.NewService(ledger.NewMockRepository(ctrl), cat), reports),
		exporthttp.NewHandler(export.NewService(cat, reports)),
		audithttp.NewHandler(audit.NewService(audit.NewMockRepository(ctrl)), reports),
	)
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		header     map[string]string
		wantStatus int
	}{
		{name: "report without snapshot", method: http.MethodGet, target: "/api/v1/report/", wantStatus: http.StatusNotFound},
		{name: "export without snapshot", method: http.MethodGet, target: "/api/v1/export/stock.xlsx", wantStatus: http.StatusNotFound},
		{name: "refresh without credentials", method: http.MethodPost, target: "/api/v1/feed/refresh", wantStatus: http.StatusServiceUnavailable},
		{
			name:   "ledger requires json",
			method: http.MethodPut, target: "/api/v1/ledger/orders", body: "product_code=915",
			header:     map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{name: "unknown route", method: http.MethodGet, target: "/api/v2/report", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			newRouter(t).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ledger/shipments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/report/", nil)
	req.Header.Set("Origin", "http://evil.example")

	rec = httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
