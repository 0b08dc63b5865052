package audit

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/sales"
)

// Result holds the itemized outcome of one check.
type Result struct {
	Name     string   `json:"name"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Info     []string `json:"info,omitempty"`
}

func (r *Result) Error(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) OK(format string, args ...any) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// Passed reports whether the check found no errors. Warnings never fail a check.
func (r Result) Passed() bool {
	return len(r.Errors) == 0
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed() {
			return false
		}
	}

	return true
}

// CompareTotals adds one warning per key whose totals differ between left and right.
// Keys missing on one side compare as zero.
func CompareTotals(r *Result, label, leftName string, left map[string]int, rightName string, right map[string]int) {
	keys := slices.Sorted(maps.Keys(union(left, right)))

	var diverged bool

	for _, k := range keys {
		l, rt := left[k], right[k]
		if l == rt {
			continue
		}

		diverged = true
		r.Warn("%s %s: %s=%d, %s=%d (diff %+d)", label, k, leftName, l, rightName, rt, rt-l)
	}

	if !diverged {
		r.OK("%s: %s and %s agree", label, leftName, rightName)
	}
}

func union(a, b map[string]int) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))

	for k := range a {
		out[k] = struct{}{}
	}

	for k := range b {
		out[k] = struct{}{}
	}

	return out
}

func byUnitName[V any](m map[catalog.Unit]V, f func(V) int) map[string]int {
	out := make(map[string]int, len(m))
	for u, v := range m {
		out[string(u)] = f(v)
	}

	return out
}

func setSize(s map[string]struct{}) int { return len(s) }

// CheckFeed validates a raw feed: every unit must be present, no unit may be
// empty, and no two units may carry the same set of students.
func CheckFeed(cat *catalog.Catalog, records []record.Record) Result {
	r := Result{Name: "feed"}

	tagged := sales.Scope(cat, records)
	students := sales.Students(tagged)

	raw := make(map[catalog.Unit]int)
	for _, rec := range records {
		raw[rec.Unit]++
	}

	counts := make(map[catalog.Unit]int)
	for _, t := range tagged {
		counts[t.Unit]++
	}

	for _, u := range cat.Units() {
		n := counts[u.Code]
		switch {
		case raw[u.Code] == 0:
			r.Error("unit %s missing from feed", u.Code)
		case n == 0:
			r.Error("unit %s has no in-scope records", u.Code)
		default:
			r.OK("unit %s: %d records, %d students", u.Code, n, len(students[u.Code]))
		}
	}

	units := cat.Units()
	for i := range units {
		for j := i + 1; j < len(units); j++ {
			a, b := students[units[i].Code], students[units[j].Code]
			if len(a) > 0 && maps.Equal(a, b) {
				r.Error("units %s and %s carry identical students, feed likely duplicated", units[i].Code, units[j].Code)
			} else if len(a) > 0 && counts[units[i].Code] == counts[units[j].Code] {
				r.Warn("units %s and %s have the same record count (%d)", units[i].Code, units[j].Code, counts[units[i].Code])
			}
		}
	}

	if dropped := len(records) - len(tagged); dropped > 0 {
		r.OK("%d records outside the catalog scope ignored", dropped)
	}

	return r
}

// CompareSnapshots compares per-unit record and student totals of two extractions.
// Divergence is expected between extraction dates and is only reported.
func CompareSnapshots(cat *catalog.Catalog, previous, next []record.Record) Result {
	r := Result{Name: "snapshot"}

	prevTagged, nextTagged := sales.Scope(cat, previous), sales.Scope(cat, next)

	CompareTotals(&r, "records per unit",
		"previous", unitRecordCounts(prevTagged),
		"new", unitRecordCounts(nextTagged))

	CompareTotals(&r, "students per unit",
		"previous", byUnitName(sales.Students(prevTagged), setSize),
		"new", byUnitName(sales.Students(nextTagged), setSize))

	return r
}

func unitRecordCounts(tagged []sales.Tagged) map[string]int {
	out := make(map[string]int)
	for _, t := range tagged {
		out[string(t.Unit)]++
	}

	return out
}

// CompareSales checks the distinct students per unit taken straight from the
// feed against the sum of the reconciled sales. A student counted under more
// than one grade at the same unit shows up as a difference.
func CompareSales(label string, feed map[catalog.Unit]map[string]struct{}, reconciled map[catalog.Unit]int) Result {
	r := Result{Name: "reconciliation"}

	CompareTotals(&r, label,
		"feed", byUnitName(feed, setSize),
		"reconciled", byUnitName(reconciled, func(n int) int { return n }))

	return r
}

// Summary renders results as plain text, one line per item.
func Summary(results []Result) string {
	var b strings.Builder

	status := "APPROVED"
	if !Passed(results) {
		status = "REJECTED"
	}

	fmt.Fprintf(&b, "audit %s\n", status)

	for _, r := range results {
		fmt.Fprintf(&b, "\n[%s] %d errors, %d warnings\n", r.Name, len(r.Errors), len(r.Warnings))

		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  ERROR %s\n", e)
		}

		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  WARN  %s\n", w)
		}

		for _, i := range r.Info {
			fmt.Fprintf(&b, "  OK    %s\n", i)
		}
	}

	return b.String()
}
