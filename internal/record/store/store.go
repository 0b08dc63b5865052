package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads a record row.
// Expected column order: unit, product_code, class_section, student_id, student_name,
// document_ref, installment, settled_on, amount, amount_received, grade
func scanRecord(s scanner) (record.Record, error) {
	var (
		rec       record.Record
		unit      string
		settledOn sql.NullTime
	)

	if err := s.Scan(
		&unit, &rec.ProductCode, &rec.ClassSection, &rec.StudentID, &rec.StudentName,
		&rec.DocumentRef, &rec.Installment, &settledOn, &rec.Amount, &rec.AmountReceived, &rec.Grade,
	); err != nil {
		return record.Record{}, err
	}

	rec.Unit = catalog.Unit(unit)

	if settledOn.Valid {
		rec.SettledOn = &settledOn.Time
	}

	return rec, nil
}

const selectRecordColumns = `
	unit, product_code, class_section, student_id, student_name,
	document_ref, installment, settled_on, amount, amount_received, grade
`

// LatestSnapshot reads the newest extraction and its records. Both reads share
// one repeatable-read transaction so a concurrent replace is never seen halfway.
func (s *Store) LatestSnapshot(ctx context.Context) (*record.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `SELECT id, taken_at, source FROM extractions ORDER BY taken_at DESC LIMIT 1`

	var (
		snap   record.Snapshot
		source string
	)

	err = tx.QueryRowContext(ctx, query).Scan(&snap.ID, &snap.TakenAt, &source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}

		return nil, fmt.Errorf("getting latest extraction: %w", err)
	}

	snap.Source = record.Source(source)

	rows, err := tx.QueryContext(ctx, `SELECT `+selectRecordColumns+`
		FROM records
		WHERE extraction_id = $1
		ORDER BY seq ASC`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		snap.Records = append(snap.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing record rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot read: %w", err)
	}

	return &snap, nil
}

// replaceLockKey serializes concurrent replacements across processes.
func replaceLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("records:replace"))

	return int64(h.Sum64())
}

type replaceTx struct {
	tx *sql.Tx
}

func (s *Store) BeginReplace(ctx context.Context) (record.ReplaceTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning replace tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", replaceLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring replace lock: %w", err)
	}

	return &replaceTx{tx: dbTx}, nil
}

func (rtx *replaceTx) Commit() error   { return rtx.tx.Commit() }
func (rtx *replaceTx) Rollback() error { return rtx.tx.Rollback() }

func (rtx *replaceTx) CurrentCount(ctx context.Context) (int, error) {
	var n int
	if err := rtx.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}

	return n, nil
}

func (rtx *replaceTx) ReplaceSnapshot(ctx context.Context, snap *record.Snapshot) error {
	if _, err := rtx.tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}

	if _, err := rtx.tx.ExecContext(ctx, `DELETE FROM extractions`); err != nil {
		return fmt.Errorf("deleting extractions: %w", err)
	}

	if _, err := rtx.tx.ExecContext(ctx, `
		INSERT INTO extractions (id, taken_at, source, record_count)
		VALUES ($1, $2, $3, $4)`,
		snap.ID, snap.TakenAt, snap.Source, len(snap.Records),
	); err != nil {
		return fmt.Errorf("creating extraction: %w", err)
	}

	stmt, err := rtx.tx.PrepareContext(ctx, `
		INSERT INTO records (
			extraction_id, seq, unit, product_code, class_section, student_id, student_name,
			document_ref, installment, settled_on, amount, amount_received, grade
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range snap.Records {
		if _, err := stmt.ExecContext(ctx,
			snap.ID, i, string(rec.Unit), rec.ProductCode, rec.ClassSection, rec.StudentID, rec.StudentName,
			rec.DocumentRef, rec.Installment, rec.SettledOn, rec.Amount, rec.AmountReceived, rec.Grade,
		); err != nil {
			return fmt.Errorf("creating record %d: %w", i, err)
		}
	}

	return nil
}
