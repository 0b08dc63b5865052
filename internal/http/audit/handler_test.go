package audit_test

import (
	"context"
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

	"github.com/colegioelo/estoque/internal/audit"
	audithttp "github.com/colegioelo/estoque/internal/http/audit"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/report"
)

type reports struct {
	rep *report.Report
	err error
}

func (f reports) Current(context.Context) (*report.Report, error) { return f.rep, f.err }

func newRouter(t *testing.T, rs reports) (http.Handler, *audit.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := audit.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/audit", audithttp.NewHandler(audit.NewService(repo), rs).Routes)

	return r, repo
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func TestHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", target: "/audit/runs", wantLimit: 20, wantStatus: http.StatusOK},
		{name: "explicit limit", target: "/audit/runs?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "limit too large", target: "/audit/runs?limit=500", wantStatus: http.StatusBadRequest},
		{name: "negative limit", target: "/audit/runs?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "not a number", target: "/audit/runs?limit=ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter(t, reports{})

			if tt.wantLimit > 0 {
				repo.EXPECT().RecentRuns(gomock.Any(), tt.wantLimit).Return([]*audit.Run{
					{ID: uuid.New(), Kind: audit.KindRefresh, Passed: true},
				}, nil)
			}

			rec := serve(router, http.MethodGet, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var got []runResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			require.Len(t, got, 1)
			assert.Equal(t, "refresh", got[0].Kind)
		})
	}
}

type runResponse struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Passed bool      `json:"passed"`
}

func TestHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, repo := newRouter(t, reports{})

		id := uuid.New()
		repo.EXPECT().GetRun(gomock.Any(), id).Return(&audit.Run{ID: id, Kind: audit.KindUpload}, nil)

		rec := serve(router, http.MethodGet, "/audit/runs/"+id.String())
		require.Equal(t, http.StatusOK, rec.Code)

		var got runResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, id, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		router, repo := newRouter(t, reports{})

		repo.EXPECT().GetRun(gomock.Any(), gomock.Any()).Return(nil, audit.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/audit/runs/"+uuid.NewString()).Code)
	})

	t.Run("bad id", func(t *testing.T) {
		router, _ := newRouter(t, reports{})

		assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/audit/runs/latest").Code)
	})
}

func TestHandler_Run(t *testing.T) {
	t.Run("records the current checks", func(t *testing.T) {
		snapID := uuid.New()
		rep := &report.Report{
			SnapshotID: snapID,
			BuiltAt:    time.Now(),
			Audit:      []audit.Result{{Name: "sales", Errors: []string{"BV: feed 3, reconciled 2"}}},
		}

		router, repo := newRouter(t, reports{rep: rep})

		repo.EXPECT().SaveRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *audit.Run) error {
			assert.Equal(t, audit.KindManual, run.Kind)
			assert.Equal(t, snapID, *run.SnapshotID)
			assert.False(t, run.Passed)

			return nil
		})

		rec := serve(router, http.MethodPost, "/audit/runs")
		require.Equal(t, http.StatusCreated, rec.Code)

		var got runResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "manual", got.Kind)
		assert.False(t, got.Passed)
	})

	t.Run("no snapshot", func(t *testing.T) {
		router, _ := newRouter(t, reports{err: record.ErrNotFound})

		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/audit/runs").Code)
	})
}
