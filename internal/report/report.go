package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/audit"
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/sales"
	"github.com/colegioelo/estoque/internal/stock"
)

// openEnrollmentInstallment marks records injected from the open enrollment ledger.
const openEnrollmentInstallment = "TAXA"

// Report is everything the dashboard shows for one snapshot and ledger state.
type Report struct {
	SnapshotID uuid.UUID
	TakenAt    time.Time
	BuiltAt    time.Time
	Records    int
	// Injected counts technology records added from open enrollments.
	Injected int

	Sales       map[catalog.Line]sales.Counts
	Resolutions []sales.Resolution
	Ungraded    map[catalog.Unit]int

	Balances []stock.Balance
	Physical []stock.PhysicalDiff
	Briefing []stock.UnitBriefing
	Audit    []audit.Result
}

// Build runs the whole pipeline over one snapshot. It does no I/O.
func Build(cat *catalog.Catalog, snap *record.Snapshot, l *ledger.Ledger) *Report {
	records, injected := injectOpenEnrollments(cat, snap.Records, l.OpenEnrollments)

	tagged := sales.Scope(cat, records)
	resolutions, technology := sales.InferTechnology(tagged, sales.DefaultChain(tagged, l.Overrides))

	counts := map[catalog.Line]sales.Counts{
		catalog.LineCurriculum:     sales.CountUnique(tagged, catalog.LineCurriculum),
		catalog.LineSocioEmotional: sales.CountUnique(tagged, catalog.LineSocioEmotional),
		catalog.LineTechnology:     technology,
	}

	balances := stock.Reconcile(cat, l, stock.Sales{
		Curriculum:     counts[catalog.LineCurriculum],
		SocioEmotional: counts[catalog.LineSocioEmotional],
		Technology:     counts[catalog.LineTechnology],
	})

	ungraded := sales.Ungraded(resolutions)

	return &Report{
		SnapshotID:  snap.ID,
		TakenAt:     snap.TakenAt,
		Records:     len(snap.Records),
		Injected:    injected,
		Sales:       counts,
		Resolutions: resolutions,
		Ungraded:    ungraded,
		Balances:    balances,
		Physical:    stock.PhysicalAudit(balances, l),
		Briefing:    stock.Brief(cat, balances, ungraded),
		Audit:       consistency(cat, records, tagged, balances),
	}
}

// injectOpenEnrollments appends a technology record for every open enrollment whose
// student has no technology record at that unit yet.
func injectOpenEnrollments(cat *catalog.Catalog, records []record.Record, open []ledger.OpenEnrollment) ([]record.Record, int) {
	tech := cat.EntriesFor(catalog.LineTechnology)
	if len(open) == 0 || len(tech) == 0 {
		return records, 0
	}

	code := tech[0].Code

	billed := make(map[record.StudentKey]struct{})
	for _, r := range records {
		if e, ok := cat.Entry(r.ProductCode); ok && e.Line == catalog.LineTechnology {
			billed[r.Key()] = struct{}{}
		}
	}

	out := make([]record.Record, len(records), len(records)+len(open))
	copy(out, records)

	injected := 0

	for _, e := range open {
		key := record.StudentKey{StudentID: record.NormalizeStudentID(e.StudentID), Unit: e.Unit}
		if _, ok := billed[key]; ok || cat.Excluded(code, e.Unit) {
			continue
		}

		billed[key] = struct{}{}

		out = append(out, record.Record{
			Unit:        e.Unit,
			ProductCode: code,
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			Installment: openEnrollmentInstallment,
			Grade:       e.Grade,
		})
		injected++
	}

	return out, injected
}

// consistency cross-checks the feed against the reconciled balances. The feed
// side counts students per unit without grades, so it does not reuse the
// per-grade counts the balances were built from.
func consistency(cat *catalog.Catalog, records []record.Record, tagged []sales.Tagged, bs []stock.Balance) []audit.Result {
	results := []audit.Result{audit.CheckFeed(cat, records)}

	for _, line := range catalog.Lines {
		reconciled := make(map[catalog.Unit]int)

		for _, b := range bs {
			if b.Line == line {
				reconciled[b.Unit] += b.Sold
			}
		}

		r := audit.CompareSales(string(line)+" sold per unit", sales.Students(sales.OfLine(tagged, line)), reconciled)
		r.Name = "reconciliation/" + string(line)
		results = append(results, r)
	}

	return results
}

func (r *Report) Passed() bool {
	return audit.Passed(r.Audit)
}

func (r *Report) Products() []stock.ProductSummary {
	return stock.Products(r.Balances)
}

// Unresolved returns the technology students left in the ungraded bucket.
func (r *Report) Unresolved() []sales.Resolution {
	var out []sales.Resolution

	for _, res := range r.Resolutions {
		if res.Source == sales.SourceFallback {
			out = append(out, res)
		}
	}

	return out
}
