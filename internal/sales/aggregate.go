package sales

import (
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

// Tagged is an in-scope record with its catalog entry attached.
type Tagged struct {
	record.Record
	Entry catalog.Entry
}

// Scope drops records whose (product, unit) pair is unknown or excluded and tags the rest.
// Record order is preserved.
func Scope(cat *catalog.Catalog, records []record.Record) []Tagged {
	out := make([]Tagged, 0, len(records))

	for _, r := range records {
		e, ok := cat.Resolve(r.ProductCode, r.Unit)
		if !ok {
			continue
		}

		out = append(out, Tagged{Record: r, Entry: e})
	}

	return out
}

// Key groups sales by segment, grade and unit.
type Key struct {
	Segment string
	Grade   string
	Unit    catalog.Unit
}

// Counts maps a group to its number of distinct students.
type Counts map[Key]int

func (c Counts) Get(segment, grade string, unit catalog.Unit) int {
	return c[Key{Segment: segment, Grade: grade, Unit: unit}]
}

func (c Counts) UnitTotal(unit catalog.Unit) int {
	var n int

	for k, v := range c {
		if k.Unit == unit {
			n += v
		}
	}

	return n
}

func (c Counts) Total() int {
	var n int
	for _, v := range c {
		n += v
	}

	return n
}

// ByUnit sums counts per unit.
func (c Counts) ByUnit() map[catalog.Unit]int {
	out := make(map[catalog.Unit]int)
	for k, v := range c {
		out[k.Unit] += v
	}

	return out
}

// CountUnique counts distinct students per (segment, grade, unit) for one product line.
// A student billed several installments for the same product counts once.
func CountUnique(tagged []Tagged, line catalog.Line) Counts {
	seen := make(map[Key]map[string]struct{})

	for _, t := range tagged {
		if t.Entry.Line != line {
			continue
		}

		k := Key{Segment: t.Entry.Segment, Grade: t.Entry.Grade, Unit: t.Unit}

		students, ok := seen[k]
		if !ok {
			students = make(map[string]struct{})
			seen[k] = students
		}

		students[record.NormalizeStudentID(t.StudentID)] = struct{}{}
	}

	counts := make(Counts, len(seen))
	for k, students := range seen {
		counts[k] = len(students)
	}

	return counts
}

// OfLine keeps the tagged records that belong to one product line.
func OfLine(tagged []Tagged, line catalog.Line) []Tagged {
	out := make([]Tagged, 0, len(tagged))
	for _, t := range tagged {
		if t.Entry.Line == line {
			out = append(out, t)
		}
	}

	return out
}

// Students returns the distinct students per unit across every in-scope record.
func Students(tagged []Tagged) map[catalog.Unit]map[string]struct{} {
	out := make(map[catalog.Unit]map[string]struct{})

	for _, t := range tagged {
		set, ok := out[t.Unit]
		if !ok {
			set = make(map[string]struct{})
			out[t.Unit] = set
		}

		set[record.NormalizeStudentID(t.StudentID)] = struct{}{}
	}

	return out
}
