package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads an audit run row.
// Expected column order: id, kind, ran_at, passed, snapshot_id, results
func scanRun(s scanner) (*audit.Run, error) {
	var (
		run        audit.Run
		kind       string
		snapshotID uuid.NullUUID
		results    []byte
	)

	if err := s.Scan(&run.ID, &kind, &run.RanAt, &run.Passed, &snapshotID, &results); err != nil {
		return nil, err
	}

	run.Kind = audit.Kind(kind)

	if snapshotID.Valid {
		run.SnapshotID = &snapshotID.UUID
	}

	if err := json.Unmarshal(results, &run.Results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	return &run, nil
}

const selectRunColumns = `id, kind, ran_at, passed, snapshot_id, results`

func (s *Store) SaveRun(ctx context.Context, run *audit.Run) error {
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	var snapshotID any
	if run.SnapshotID != nil {
		snapshotID = run.SnapshotID.String()
	}

	query := `
		INSERT INTO audit_runs (id, kind, ran_at, passed, snapshot_id, results)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := s.db.ExecContext(ctx, query,
		run.ID.String(), string(run.Kind), run.RanAt, run.Passed, snapshotID, results,
	); err != nil {
		return fmt.Errorf("inserting audit run: %w", err)
	}

	return nil
}

func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*audit.Run, error) {
	query := `SELECT ` + selectRunColumns + ` FROM audit_runs WHERE id = $1`

	run, err := scanRun(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, audit.ErrNotFound
		}

		return nil, fmt.Errorf("getting audit run: %w", err)
	}

	return run, nil
}

func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*audit.Run, error) {
	query := `SELECT ` + selectRunColumns + ` FROM audit_runs ORDER BY ran_at DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit runs: %w", err)
	}
	defer rows.Close()

	var runs []*audit.Run

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audit run: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit runs: %w", err)
	}

	return runs, nil
}
