package api_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioelo/estoque/internal/feed"
	"github.com/colegioelo/estoque/internal/http/api"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
)

type shipmentRequest struct {
	ProductCode string `json:"product_code" validate:"required,numeric"`
	Unit        string `json:"unit" validate:"required,oneof=BV CD JG CDR"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{name: "valid", body: `{"product_code":"915","unit":"BV","quantity":3}`},
		{name: "missing fields", body: `{"quantity":1}`, wantFields: []string{"product_code", "unit"}},
		{name: "bad values", body: `{"product_code":"X1","unit":"ZZ","quantity":-1}`, wantFields: []string{"product_code", "unit", "quantity"}},
		{name: "unknown field", body: `{"product_code":"915","unit":"BV","qty":1}`, wantFields: []string{"body"}},
		{name: "malformed", body: `{`, wantFields: []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))

			var dst shipmentRequest

			err := api.Decode(req, &dst)
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, shipmentRequest{ProductCode: "915", Unit: "BV", Quantity: 3}, dst)

				return
			}

			var verr *api.ValidationError
			require.ErrorAs(t, err, &verr)

			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}

			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("load snapshot: %w", record.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("replace snapshot: %w", &record.RetentionError{Previous: 100, Incoming: 10}), want: http.StatusConflict},
		{err: record.ErrEmptyFeed, want: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("%w: 999", ledger.ErrUnknownProduct), want: http.StatusBadRequest},
		{err: feed.ErrFetchDisabled, want: http.StatusServiceUnavailable},
		{err: &api.ValidationError{}, want: http.StatusBadRequest},
		{err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, api.Status(tt.err), tt.err.Error())
	}
}

func TestError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/report/stock", nil)

	t.Run("internal errors are hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.Error(rec, req, errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal error\n", rec.Body.String())
	})

	t.Run("validation errors are itemized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.Error(rec, req, &api.ValidationError{Fields: []api.FieldError{{Field: "unit", Message: "is required"}}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Fields []api.FieldError `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, []api.FieldError{{Field: "unit", Message: "is required"}}, body.Fields)
	})

	t.Run("domain errors are echoed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.Error(rec, req, record.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no snapshot stored")
	})
}
