package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/importer"
	"github.com/colegioelo/estoque/internal/importer/siga"
	"github.com/colegioelo/estoque/internal/record"
)

var (
	ErrNoFiles       = errors.New("no files uploaded")
	ErrFetchDisabled = errors.New("sis fetch not configured")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=feed
type Fetcher interface {
	FetchAll(ctx context.Context) (*siga.FetchResult, error)
}

type Importer interface {
	Import(format importer.Format, unit catalog.Unit, r io.Reader) ([]record.Record, error)
}

type Snapshots interface {
	Latest(ctx context.Context) (*record.Snapshot, error)
	Replace(ctx context.Context, source record.Source, records []record.Record) (*record.ReplaceResult, error)
}

type Auditor interface {
	Record(ctx context.Context, kind audit.Kind, snapshotID *uuid.UUID, results []audit.Result) (*audit.Run, error)
}

type Invalidator interface {
	Invalidate()
}

// File is one uploaded extraction.
type File struct {
	Name string
	Unit catalog.Unit
	Body io.Reader
}

// Outcome describes an accepted snapshot replacement.
type Outcome struct {
	Snapshot *record.Snapshot
	Previous int
	Run      *audit.Run
	Failed   []siga.UnitResult
}

// Service moves a new extraction into the store: fetch or parse, replace behind the
// retention guard, audit, and drop the cached report.
type Service struct {
	cat       *catalog.Catalog
	fetcher   Fetcher
	importer  Importer
	snapshots Snapshots
	audits    Auditor
	reports   Invalidator
}

func NewService(
	cat *catalog.Catalog,
	fetcher Fetcher,
	importer Importer,
	snapshots Snapshots,
	audits Auditor,
	reports Invalidator,
) *Service {
	return &Service{
		cat:       cat,
		fetcher:   fetcher,
		importer:  importer,
		snapshots: snapshots,
		audits:    audits,
		reports:   reports,
	}
}

// Refresh fetches every unit from the SIS. Units that failed are reported in the
// outcome; the replace still goes ahead when the retention guard accepts the rest.
func (s *Service) Refresh(ctx context.Context) (*Outcome, error) {
	if s.fetcher == nil {
		return nil, ErrFetchDisabled
	}

	res, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	warnings := audit.Result{Name: "fetch"}
	for _, u := range res.Failed() {
		warnings.Warn("unit %s fetch failed after %d records: %v", u.Unit, u.Records, u.Err)
	}

	out, err := s.replace(ctx, audit.KindRefresh, record.SourceAPI, res.Records, warnings)
	if err != nil {
		return nil, err
	}

	out.Failed = res.Failed()

	return out, nil
}

// Upload replaces the snapshot with the records of the uploaded files, all in one format.
func (s *Service) Upload(ctx context.Context, format importer.Format, files []File) (*Outcome, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var (
		records []record.Record
		parsed  = audit.Result{Name: "upload"}
	)

	for _, f := range files {
		recs, err := s.importer.Import(format, f.Unit, f.Body)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", f.Name, err)
		}

		parsed.OK("%s: %d records", f.Name, len(recs))
		records = append(records, recs...)
	}

	return s.replace(ctx, audit.KindUpload, format.Source(), records, parsed)
}

func (s *Service) replace(ctx context.Context, kind audit.Kind, source record.Source, records []record.Record, pre audit.Result) (*Outcome, error) {
	previous, err := s.snapshots.Latest(ctx)
	if err != nil && !errors.Is(err, record.ErrNotFound) {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}

	results := []audit.Result{pre, audit.CheckFeed(s.cat, records)}
	if previous != nil {
		results = append(results, audit.CompareSnapshots(s.cat, previous.Records, records))
	}

	replaced, err := s.snapshots.Replace(ctx, source, records)
	if err != nil {
		guard := audit.Result{Name: "retention"}
		guard.Error("%v", err)
		s.recordRun(ctx, kind, nil, append(results, guard))

		return nil, fmt.Errorf("replace snapshot: %w", err)
	}

	s.reports.Invalidate()

	return &Outcome{
		Snapshot: replaced.Snapshot,
		Previous: replaced.Previous,
		Run:      s.recordRun(ctx, kind, &replaced.Snapshot.ID, results),
	}, nil
}

// recordRun persists the audit. A failure here is logged only; the replace it
// describes has already been committed or rejected.
func (s *Service) recordRun(ctx context.Context, kind audit.Kind, snapshotID *uuid.UUID, results []audit.Result) *audit.Run {
	run, err := s.audits.Record(ctx, kind, snapshotID, results)
	if err != nil {
		slog.Error("failed to record audit run", "kind", kind, "error", err)
		return nil
	}

	return run
}
