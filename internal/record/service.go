package record

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=record
type Repository interface {
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	BeginReplace(ctx context.Context) (ReplaceTx, error)
}

// ReplaceTx holds the replace lock until Commit or Rollback.
type ReplaceTx interface {
	CurrentCount(ctx context.Context) (int, error)
	ReplaceSnapshot(ctx context.Context, snap *Snapshot) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Latest returns the stored snapshot or ErrNotFound.
func (s *Service) Latest(ctx context.Context) (*Snapshot, error) {
	return s.repo.LatestSnapshot(ctx)
}

type ReplaceResult struct {
	Snapshot *Snapshot
	Previous int
}

// Replace swaps the stored snapshot for records when they pass CheckRetention.
// A rejected replacement leaves the stored snapshot untouched.
func (s *Service) Replace(ctx context.Context, source Source, records []Record) (*ReplaceResult, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFeed
	}

	rtx, err := s.repo.BeginReplace(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer rtx.Rollback()

	previous, err := rtx.CurrentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stored records: %w", err)
	}

	if err := CheckRetention(previous, len(records)); err != nil {
		slog.Warn("rejecting snapshot", "previous", previous, "incoming", len(records))
		return nil, err
	}

	snap := &Snapshot{
		ID:      uuid.New(),
		TakenAt: s.now(),
		Source:  source,
		Records: records,
	}

	if err := rtx.ReplaceSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("replace snapshot: %w", err)
	}

	if err := rtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}

	slog.Info("snapshot replaced", "snapshot", snap.ID, "previous", previous, "incoming", len(records))

	return &ReplaceResult{Snapshot: snap, Previous: previous}, nil
}

// CheckRetention rejects an incoming count below 80% of the previous one.
func CheckRetention(previous, incoming int) error {
	if incoming == 0 {
		return ErrEmptyFeed
	}

	if incoming*5 < previous*4 {
		return &RetentionError{Previous: previous, Incoming: incoming}
	}

	return nil
}
