package catalog

import (
	"slices"
)

// Unit is the short code of a school branch (e.g. "BV").
type Unit string

const (
	UnitBV  Unit = "BV"
	UnitCD  Unit = "CD"
	UnitJG  Unit = "JG"
	UnitCDR Unit = "CDR"
)

// Line is the product line a catalog entry belongs to.
type Line string

const (
	LineCurriculum     Line = "curriculum"
	LineSocioEmotional Line = "socioemotional"
	LineTechnology     Line = "technology"
)

// Lines lists the product lines in display order.
var Lines = []Line{LineCurriculum, LineSocioEmotional, LineTechnology}

func (l Line) Valid() bool {
	return slices.Contains(Lines, l)
}

const (
	SegmentInfantil = "Infantil"
	SegmentFund1    = "Fund1"
	SegmentFund2    = "Fund2"
	SegmentMedio    = "Médio"
	SegmentGeneral  = "Geral"
	SegmentOther    = "Outros"
)

// Segments lists the segment labels in display order.
var Segments = []string{SegmentInfantil, SegmentFund1, SegmentFund2, SegmentMedio, SegmentGeneral, SegmentOther}

const (
	// GradeUndetermined marks an entry whose grade cannot be read from the product itself.
	GradeUndetermined = "Todas"
	// GradeUngraded is the bucket for students whose grade could not be inferred.
	GradeUngraded = "Sem série"
)

// Entry describes one billable product code.
type Entry struct {
	Code    string
	Name    string
	Segment string
	Grade   string
	Line    Line
}

// UnitInfo describes a school branch and its key on the school management system.
type UnitInfo struct {
	Code   Unit
	Name   string
	SISKey int
}

// Catalog resolves product codes and knows which (code, unit) pairs are out of scope.
// It is immutable after construction and safe for concurrent use.
type Catalog struct {
	entries  map[string]Entry
	order    []string
	units    []UnitInfo
	excluded map[Unit]map[string]struct{}
}

func New(entries []Entry, units []UnitInfo, excluded map[Unit][]string) *Catalog {
	c := &Catalog{
		entries:  make(map[string]Entry, len(entries)),
		order:    make([]string, 0, len(entries)),
		units:    slices.Clone(units),
		excluded: make(map[Unit]map[string]struct{}, len(excluded)),
	}

	for _, e := range entries {
		if _, dup := c.entries[e.Code]; !dup {
			c.order = append(c.order, e.Code)
		}

		c.entries[e.Code] = e
	}

	for unit, codes := range excluded {
		set := make(map[string]struct{}, len(codes))
		for _, code := range codes {
			set[code] = struct{}{}
		}

		c.excluded[unit] = set
	}

	return c
}

// Resolve returns the entry for code when the code is known and the pair is in scope.
func (c *Catalog) Resolve(code string, unit Unit) (Entry, bool) {
	e, ok := c.entries[code]
	if !ok {
		return Entry{}, false
	}

	if c.Excluded(code, unit) {
		return Entry{}, false
	}

	return e, true
}

// Entry looks up a code ignoring unit exclusions.
func (c *Catalog) Entry(code string) (Entry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

func (c *Catalog) Excluded(code string, unit Unit) bool {
	_, ok := c.excluded[unit][code]
	return ok
}

// Entries returns every entry in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.entries[code])
	}

	return out
}

func (c *Catalog) EntriesFor(line Line) []Entry {
	var out []Entry

	for _, code := range c.order {
		if e := c.entries[code]; e.Line == line {
			out = append(out, e)
		}
	}

	return out
}

func (c *Catalog) Units() []UnitInfo {
	return slices.Clone(c.units)
}

func (c *Catalog) Unit(code Unit) (UnitInfo, bool) {
	for _, u := range c.units {
		if u.Code == code {
			return u, true
		}
	}

	return UnitInfo{}, false
}

// HasGrade reports whether any entry uses the grade label, or it is the ungraded bucket.
func (c *Catalog) HasGrade(grade string) bool {
	if grade == GradeUngraded {
		return true
	}

	for _, e := range c.entries {
		if e.Grade == grade && grade != GradeUndetermined {
			return true
		}
	}

	return false
}

var inferredSegments = map[string]string{
	"1º Ano": SegmentFund1,
	"2º Ano": SegmentFund1,
	"3º Ano": SegmentFund1,
	"4º Ano": SegmentFund1,
	"5º Ano": SegmentFund1,
	"6º Ano": SegmentFund2,
	"7º Ano": SegmentFund2,
	"8º Ano": SegmentFund2,
	"9º Ano": SegmentFund2,
}

// SegmentForGrade maps an inferred grade to its segment. Unknown grades fall into SegmentOther.
func SegmentForGrade(grade string) string {
	if s, ok := inferredSegments[grade]; ok {
		return s
	}

	return SegmentOther
}

// SegmentRank orders segments for display; unknown segments sort last.
func SegmentRank(segment string) int {
	if i := slices.Index(Segments, segment); i >= 0 {
		return i
	}

	return len(Segments)
}
