package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("audit run not found")

// Kind names what triggered an audit run.
type Kind string

const (
	KindRefresh Kind = "refresh"
	KindUpload  Kind = "upload"
	KindManual  Kind = "manual"
)

// Run is one persisted audit execution.
type Run struct {
	ID         uuid.UUID
	Kind       Kind
	RanAt      time.Time
	Passed     bool
	SnapshotID *uuid.UUID
	Results    []Result
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit
type Repository interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	RecentRuns(ctx context.Context, limit int) ([]*Run, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record stores the results of one audit and returns the persisted run.
func (s *Service) Record(ctx context.Context, kind Kind, snapshotID *uuid.UUID, results []Result) (*Run, error) {
	run := &Run{
		ID:         uuid.New(),
		Kind:       kind,
		RanAt:      s.now(),
		Passed:     Passed(results),
		SnapshotID: snapshotID,
		Results:    results,
	}

	if err := s.repo.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("save audit run: %w", err)
	}

	if !run.Passed {
		slog.Warn("audit failed", "run", run.ID, "kind", kind)
	}

	return run, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	return s.repo.GetRun(ctx, id)
}

// Recent returns up to limit runs, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.repo.RecentRuns(ctx, limit)
}
