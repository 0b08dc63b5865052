package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type SnapshotSource interface {
	Latest(ctx context.Context) (*record.Snapshot, error)
}

type LedgerSource interface {
	Load(ctx context.Context) (*ledger.Ledger, error)
}

// Service memoizes the report of the stored snapshot. The cached report lives until
// Invalidate is called after a snapshot replace or a ledger edit.
type Service struct {
	cat       *catalog.Catalog
	snapshots SnapshotSource
	ledgers   LedgerSource
	now       func() time.Time

	mu     sync.Mutex
	cached atomic.Pointer[cacheEntry]
}

// cacheEntry is replaced, never mutated. Invalidate stores a fresh empty entry,
// so a build that started before it cannot swap its report in.
type cacheEntry struct {
	report *Report
}

func NewService(cat *catalog.Catalog, snapshots SnapshotSource, ledgers LedgerSource) *Service {
	return &Service{cat: cat, snapshots: snapshots, ledgers: ledgers, now: time.Now}
}

// Current returns the cached report, building it when needed. It returns
// record.ErrNotFound while no snapshot has been stored.
func (s *Service) Current(ctx context.Context) (*Report, error) {
	if e := s.cached.Load(); e != nil && e.report != nil {
		return e.report, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := s.cached.Load()
	if seen != nil && seen.report != nil {
		return seen.report, nil
	}

	start := s.now()

	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	l, err := s.ledgers.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	r := Build(s.cat, snap, l)
	r.BuiltAt = s.now()

	// A report built across an invalidation is served once but not kept.
	s.cached.CompareAndSwap(seen, &cacheEntry{report: r})

	slog.Info("report built",
		"snapshot", r.SnapshotID,
		"records", r.Records,
		"injected", r.Injected,
		"duration", r.BuiltAt.Sub(start),
	)

	return r, nil
}

// Invalidate drops the cached report.
func (s *Service) Invalidate() {
	s.cached.Store(&cacheEntry{})
}
