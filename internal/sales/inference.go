package sales

import (
	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

// Source names the resolver that decided a student's grade.
type Source string

const (
	SourceOverride  Source = "override"
	SourceCrossLine Source = "cross_line"
	SourceRecord    Source = "record"
	SourceFallback  Source = "fallback"
)

// Candidate is a student whose grade must be inferred.
type Candidate struct {
	Key   record.StudentKey
	Grade string // grade carried by the student's own record, if any
}

// Resolver attempts to decide a grade. ok is false when it has no opinion.
type Resolver interface {
	Source() Source
	Resolve(c Candidate) (grade string, ok bool)
}

// Resolution is the decided grade of one student.
type Resolution struct {
	Key          record.StudentKey
	StudentName  string
	ClassSection string
	Grade        string
	Segment      string
	Source       Source
}

// Chain tries resolvers in order; the first with an opinion wins.
// Students no resolver can place land in catalog.GradeUngraded.
type Chain []Resolver

func (ch Chain) Resolve(c Candidate) (string, Source) {
	for _, r := range ch {
		if g, ok := r.Resolve(c); ok {
			return g, r.Source()
		}
	}

	return catalog.GradeUngraded, SourceFallback
}

// OverrideResolver answers from the manual grade override ledger.
type OverrideResolver struct {
	overrides map[record.StudentKey]string
}

func NewOverrideResolver(overrides map[record.StudentKey]string) *OverrideResolver {
	normalized := make(map[record.StudentKey]string, len(overrides))
	for k, g := range overrides {
		k.StudentID = record.NormalizeStudentID(k.StudentID)
		normalized[k] = g
	}

	return &OverrideResolver{overrides: normalized}
}

func (r *OverrideResolver) Source() Source { return SourceOverride }

func (r *OverrideResolver) Resolve(c Candidate) (string, bool) {
	g, ok := r.overrides[c.Key]
	if !ok || g == "" {
		return "", false
	}

	return g, true
}

// CrossLineResolver reads the grade a student was billed under in another product line.
// Sources are consulted in the given line order; within a line the first record in feed
// order wins.
type CrossLineResolver struct {
	grades map[record.StudentKey]string
}

func NewCrossLineResolver(tagged []Tagged, lines ...catalog.Line) *CrossLineResolver {
	grades := make(map[record.StudentKey]string)

	for _, line := range lines {
		for _, t := range tagged {
			if t.Entry.Line != line || t.Entry.Grade == catalog.GradeUndetermined {
				continue
			}

			k := t.Key()
			if _, ok := grades[k]; ok {
				continue
			}

			grades[k] = t.Entry.Grade
		}
	}

	return &CrossLineResolver{grades: grades}
}

func (r *CrossLineResolver) Source() Source { return SourceCrossLine }

func (r *CrossLineResolver) Resolve(c Candidate) (string, bool) {
	g, ok := r.grades[c.Key]
	return g, ok
}

// RecordGradeResolver trusts the grade on the student's own record unless it is the
// undetermined sentinel.
type RecordGradeResolver struct{}

func (RecordGradeResolver) Source() Source { return SourceRecord }

func (RecordGradeResolver) Resolve(c Candidate) (string, bool) {
	if c.Grade == "" || c.Grade == catalog.GradeUndetermined {
		return "", false
	}

	return c.Grade, true
}

// DefaultChain builds the standard precedence: override, cross-line, record grade.
func DefaultChain(tagged []Tagged, overrides map[record.StudentKey]string) Chain {
	return Chain{
		NewOverrideResolver(overrides),
		NewCrossLineResolver(tagged, catalog.LineCurriculum, catalog.LineSocioEmotional),
		RecordGradeResolver{},
	}
}

// InferTechnology resolves a grade for every distinct technology-program student and
// counts them by (inferred segment, grade, unit).
func InferTechnology(tagged []Tagged, chain Chain) ([]Resolution, Counts) {
	type student struct {
		res   Resolution
		grade string
	}

	var order []record.StudentKey

	students := make(map[record.StudentKey]*student)

	for _, t := range tagged {
		if t.Entry.Line != catalog.LineTechnology {
			continue
		}

		k := t.Key()

		s, ok := students[k]
		if !ok {
			s = &student{res: Resolution{Key: k, StudentName: t.StudentName, ClassSection: t.ClassSection}}
			students[k] = s
			order = append(order, k)
		}

		if s.grade == "" || s.grade == catalog.GradeUndetermined {
			s.grade = t.Grade
		}
	}

	resolutions := make([]Resolution, 0, len(order))
	counts := make(Counts)

	for _, k := range order {
		s := students[k]

		grade, src := chain.Resolve(Candidate{Key: k, Grade: s.grade})
		s.res.Grade = grade
		s.res.Segment = catalog.SegmentForGrade(grade)
		s.res.Source = src

		resolutions = append(resolutions, s.res)
		counts[Key{Segment: s.res.Segment, Grade: grade, Unit: k.Unit}]++
	}

	return resolutions, counts
}

// Ungraded counts technology students left in the ungraded bucket per unit.
func Ungraded(resolutions []Resolution) map[catalog.Unit]int {
	out := make(map[catalog.Unit]int)

	for _, r := range resolutions {
		if r.Source == SourceFallback {
			out[r.Key.Unit]++
		}
	}

	return out
}
