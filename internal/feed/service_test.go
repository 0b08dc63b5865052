package feed_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/feed"
	"github.com/colegioelo/estoque/internal/importer"
	"github.com/colegioelo/estoque/internal/importer/siga"
	"github.com/colegioelo/estoque/internal/record"
)

type mocks struct {
	fetcher   *feed.MockFetcher
	importer  *feed.MockImporter
	snapshots *feed.MockSnapshots
	audits    *feed.MockAuditor
	reports   *feed.MockInvalidator
}

func newService(t *testing.T) (*feed.Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		fetcher:   feed.NewMockFetcher(ctrl),
		importer:  feed.NewMockImporter(ctrl),
		snapshots: feed.NewMockSnapshots(ctrl),
		audits:    feed.NewMockAuditor(ctrl),
		reports:   feed.NewMockInvalidator(ctrl),
	}

	return feed.NewService(catalog.Default(), m.fetcher, m.importer, m.snapshots, m.audits, m.reports), m
}

func allUnits() []record.Record {
	return []record.Record{
		{Unit: catalog.UnitBV, ProductCode: "915", StudentID: "1"},
		{Unit: catalog.UnitCD, ProductCode: "915", StudentID: "2"},
		{Unit: catalog.UnitCD, ProductCode: "915", StudentID: "3"},
		{Unit: catalog.UnitJG, ProductCode: "915", StudentID: "4"},
		{Unit: catalog.UnitJG, ProductCode: "915", StudentID: "5"},
		{Unit: catalog.UnitJG, ProductCode: "915", StudentID: "6"},
		{Unit: catalog.UnitCDR, ProductCode: "913", StudentID: "7"},
		{Unit: catalog.UnitCDR, ProductCode: "913", StudentID: "8"},
		{Unit: catalog.UnitCDR, ProductCode: "913", StudentID: "9"},
		{Unit: catalog.UnitCDR, ProductCode: "913", StudentID: "10"},
	}
}

func resultNames(results []audit.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}

	return out
}

func TestService_Refresh(t *testing.T) {
	svc, m := newService(t)

	records := allUnits()
	snapID := uuid.New()
	jgErr := errors.New("timeout")

	m.fetcher.EXPECT().FetchAll(gomock.Any()).Return(&siga.FetchResult{
		Records: records,
		Units: []siga.UnitResult{
			{Unit: catalog.UnitBV, Records: 1},
			{Unit: catalog.UnitJG, Records: 3, Err: jgErr},
		},
	}, nil)
	m.snapshots.EXPECT().Latest(gomock.Any()).Return(&record.Snapshot{Records: records[:9]}, nil)
	m.snapshots.EXPECT().Replace(gomock.Any(), record.SourceAPI, records).
		Return(&record.ReplaceResult{Snapshot: &record.Snapshot{ID: snapID, Records: records}, Previous: 9}, nil)
	m.reports.EXPECT().Invalidate()
	m.audits.EXPECT().Record(gomock.Any(), audit.KindRefresh, &snapID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ audit.Kind, _ *uuid.UUID, results []audit.Result) (*audit.Run, error) {
			assert.Equal(t, []string{"fetch", "feed", "snapshot"}, resultNames(results))
			assert.Len(t, results[0].Warnings, 1)
			assert.True(t, audit.Passed(results))

			return &audit.Run{Passed: true}, nil
		})

	out, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snapID, out.Snapshot.ID)
	assert.Equal(t, 9, out.Previous)
	require.NotNil(t, out.Run)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, catalog.UnitJG, out.Failed[0].Unit)
}

func TestService_Refresh_Rejected(t *testing.T) {
	svc, m := newService(t)

	records := allUnits()[:2]
	guardErr := &record.RetentionError{Previous: 10, Incoming: 2}

	m.fetcher.EXPECT().FetchAll(gomock.Any()).Return(&siga.FetchResult{Records: records}, nil)
	m.snapshots.EXPECT().Latest(gomock.Any()).Return(nil, record.ErrNotFound)
	m.snapshots.EXPECT().Replace(gomock.Any(), record.SourceAPI, records).Return(nil, guardErr)
	m.audits.EXPECT().Record(gomock.Any(), audit.KindRefresh, nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ audit.Kind, _ *uuid.UUID, results []audit.Result) (*audit.Run, error) {
			assert.Equal(t, []string{"fetch", "feed", "retention"}, resultNames(results))
			assert.False(t, audit.Passed(results))

			return &audit.Run{}, nil
		})

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, record.ErrCorruptedFeed)
}

func TestService_Refresh_FetchFailed(t *testing.T) {
	svc, m := newService(t)

	m.fetcher.EXPECT().FetchAll(gomock.Any()).Return(nil, siga.ErrLogin)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, siga.ErrLogin)
}

func TestService_Refresh_Disabled(t *testing.T) {
	svc := feed.NewService(catalog.Default(), nil, nil, nil, nil, nil)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, feed.ErrFetchDisabled)
}

func TestService_Upload(t *testing.T) {
	svc, m := newService(t)

	bv := []record.Record{{Unit: catalog.UnitBV, ProductCode: "915", StudentID: "1"}}
	jg := []record.Record{{Unit: catalog.UnitJG, ProductCode: "915", StudentID: "2"}}
	snapID := uuid.New()

	gomock.InOrder(
		m.importer.EXPECT().Import(importer.FormatTSV, catalog.UnitBV, gomock.Any()).Return(bv, nil),
		m.importer.EXPECT().Import(importer.FormatTSV, catalog.UnitJG, gomock.Any()).Return(jg, nil),
	)
	m.snapshots.EXPECT().Latest(gomock.Any()).Return(nil, record.ErrNotFound)
	m.snapshots.EXPECT().Replace(gomock.Any(), record.SourceTSV, append(bv, jg...)).
		Return(&record.ReplaceResult{Snapshot: &record.Snapshot{ID: snapID}}, nil)
	m.reports.EXPECT().Invalidate()
	m.audits.EXPECT().Record(gomock.Any(), audit.KindUpload, &snapID, gomock.Any()).Return(nil, errors.New("db down"))

	out, err := svc.Upload(context.Background(), importer.FormatTSV, []feed.File{
		{Name: "bv.tsv", Unit: catalog.UnitBV, Body: strings.NewReader("")},
		{Name: "jg.tsv", Unit: catalog.UnitJG, Body: strings.NewReader("")},
	})
	require.NoError(t, err, "a failed audit write does not undo the replace")
	assert.Nil(t, out.Run)
	assert.Equal(t, snapID, out.Snapshot.ID)
}

func TestService_Upload_Errors(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Upload(context.Background(), importer.FormatJSON, nil)
		assert.ErrorIs(t, err, feed.ErrNoFiles)
	})

	t.Run("parse failure", func(t *testing.T) {
		svc, m := newService(t)

		m.importer.EXPECT().Import(importer.FormatJSON, catalog.Unit(""), gomock.Any()).
			Return(nil, importer.ErrUnknownFormat)

		_, err := svc.Upload(context.Background(), importer.FormatJSON, []feed.File{{Name: "x.json", Body: strings.NewReader("")}})
		assert.ErrorIs(t, err, importer.ErrUnknownFormat)
		assert.ErrorContains(t, err, "x.json")
	})
}
