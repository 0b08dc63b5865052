package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/report"
)

func TestService_Current_Caches(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := report.NewMockSnapshotSource(ctrl)
	ledgers := report.NewMockLedgerSource(ctrl)

	snap, l := fixture()
	snapshots.EXPECT().Latest(gomock.Any()).Return(snap, nil).Times(2)
	ledgers.EXPECT().Load(gomock.Any()).Return(l, nil).Times(2)

	svc := report.NewService(catalog.Default(), snapshots, ledgers)

	first, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, first.BuiltAt.IsZero())

	second, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second, "served from cache")

	svc.Invalidate()

	third, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third, "rebuilt after invalidation")
}

func TestService_Current_InvalidatedDuringBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := report.NewMockSnapshotSource(ctrl)
	ledgers := report.NewMockLedgerSource(ctrl)

	svc := report.NewService(catalog.Default(), snapshots, ledgers)

	snap, l := fixture()
	snapshots.EXPECT().Latest(gomock.Any()).Return(snap, nil).Times(2)

	first := ledgers.EXPECT().Load(gomock.Any()).DoAndReturn(func(context.Context) (*ledger.Ledger, error) {
		svc.Invalidate()
		return l, nil
	})
	ledgers.EXPECT().Load(gomock.Any()).Return(l, nil).After(first)

	stale, err := svc.Current(context.Background())
	require.NoError(t, err)

	fresh, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh, "a report built across an invalidation is not cached")

	again, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, fresh, again)
}

func TestService_Current_Errors(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(s *report.MockSnapshotSource, l *report.MockLedgerSource)
		wantErr   error
	}

	errDB := errors.New("db down")

	tests := []testCase{
		{
			name: "no snapshot yet",
			setupMock: func(s *report.MockSnapshotSource, _ *report.MockLedgerSource) {
				s.EXPECT().Latest(gomock.Any()).Return(nil, record.ErrNotFound)
			},
			wantErr: record.ErrNotFound,
		},
		{
			name: "ledger failure",
			setupMock: func(s *report.MockSnapshotSource, l *report.MockLedgerSource) {
				snap, _ := fixture()
				s.EXPECT().Latest(gomock.Any()).Return(snap, nil)
				l.EXPECT().Load(gomock.Any()).Return(nil, errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			snapshots := report.NewMockSnapshotSource(ctrl)
			ledgers := report.NewMockLedgerSource(ctrl)
			tt.setupMock(snapshots, ledgers)

			_, err := report.NewService(catalog.Default(), snapshots, ledgers).Current(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
