package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/record/store"
)

var recordColumns = []string{
	"unit", "product_code", "class_section", "student_id", "student_name",
	"document_ref", "installment", "settled_on", "amount", "amount_received", "grade",
}

func TestStore_LatestSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	takenAt := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	settled := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, taken_at, source FROM extractions")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "taken_at", "source"}).AddRow(id.String(), takenAt, "api"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM records")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("BV", "915", "A", "123", "Ana", "77", "1", settled, int64(176500), int64(176500), "5º Ano").
			AddRow("JG", "995", "", "456", "Bia", "78", "TAXA", nil, int64(29900), int64(0), "Todas"))
	mock.ExpectCommit()

	snap, err := store.New(db).LatestSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, id, snap.ID)
	assert.Equal(t, record.SourceAPI, snap.Source)
	require.Len(t, snap.Records, 2)

	assert.Equal(t, catalog.UnitBV, snap.Records[0].Unit)
	require.NotNil(t, snap.Records[0].SettledOn)
	assert.True(t, settled.Equal(*snap.Records[0].SettledOn))
	assert.Equal(t, int64(176500), snap.Records[0].Amount)

	assert.Equal(t, catalog.UnitJG, snap.Records[1].Unit)
	assert.Nil(t, snap.Records[1].SettledOn)
	assert.Equal(t, "TAXA", snap.Records[1].Installment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LatestSnapshot_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, taken_at, source FROM extractions")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "taken_at", "source"}))
	mock.ExpectRollback()

	_, err = store.New(db).LatestSnapshot(context.Background())
	assert.ErrorIs(t, err, record.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LatestSnapshot_RecordsFailRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, taken_at, source FROM extractions")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "taken_at", "source"}).AddRow(id.String(), time.Now(), "api"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM records")).
		WithArgs(id.String()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	snap, err := store.New(db).LatestSnapshot(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	snap := &record.Snapshot{
		ID:      uuid.New(),
		TakenAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Source:  record.SourceTSV,
		Records: []record.Record{
			{Unit: catalog.UnitBV, ProductCode: "915", StudentID: "1", StudentName: "Ana", Amount: 100, Grade: "5º Ano"},
			{Unit: catalog.UnitCD, ProductCode: "942", StudentID: "2", StudentName: "Bia", Amount: 200, Grade: "2º Ano"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM records")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM records")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM extractions")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO extractions")).
		WithArgs(snap.ID.String(), snap.TakenAt, "tsv", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO records"))
	prep.ExpectExec().
		WithArgs(snap.ID.String(), 0, "BV", "915", "", "1", "Ana", "", "", nil, int64(100), int64(0), "5º Ano").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(snap.ID.String(), 1, "CD", "942", "", "2", "Bia", "", "", nil, int64(200), int64(0), "2º Ano").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := store.New(db)

	rtx, err := s.BeginReplace(context.Background())
	require.NoError(t, err)

	n, err := rtx.CurrentCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, rtx.ReplaceSnapshot(context.Background(), snap))
	require.NoError(t, rtx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
