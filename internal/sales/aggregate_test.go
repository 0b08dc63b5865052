package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/sales"
)

func rec(unit catalog.Unit, code, student string) record.Record {
	return record.Record{Unit: unit, ProductCode: code, StudentID: student}
}

func TestScope(t *testing.T) {
	records := []record.Record{
		rec(catalog.UnitBV, "915", "1"),
		rec(catalog.UnitCDR, "995", "2"),
		rec(catalog.UnitBV, "100", "3"),
		rec(catalog.UnitCDR, "942", "4"),
	}

	got := sales.Scope(catalog.Default(), records)
	require.Len(t, got, 2)

	assert.Equal(t, "915", got[0].ProductCode)
	assert.Equal(t, "5º Ano", got[0].Entry.Grade)
	assert.Equal(t, "942", got[1].ProductCode)
	assert.Equal(t, catalog.LineSocioEmotional, got[1].Entry.Line)
}

func TestCountUnique(t *testing.T) {
	tests := []struct {
		name    string
		records []record.Record
		line    catalog.Line
		want    sales.Counts
	}{
		{
			name: "installments of one student count once",
			records: []record.Record{
				rec(catalog.UnitBV, "915", "S1"),
				rec(catalog.UnitBV, "915", "S1"),
				rec(catalog.UnitBV, "915", "S1"),
				rec(catalog.UnitBV, "915", "S2"),
			},
			line: catalog.LineCurriculum,
			want: sales.Counts{
				{Segment: catalog.SegmentFund1, Grade: "5º Ano", Unit: catalog.UnitBV}: 2,
			},
		},
		{
			name: "same student at two units counts at both",
			records: []record.Record{
				rec(catalog.UnitBV, "915", "S1"),
				rec(catalog.UnitJG, "915", "S1"),
			},
			line: catalog.LineCurriculum,
			want: sales.Counts{
				{Segment: catalog.SegmentFund1, Grade: "5º Ano", Unit: catalog.UnitBV}: 1,
				{Segment: catalog.SegmentFund1, Grade: "5º Ano", Unit: catalog.UnitJG}: 1,
			},
		},
		{
			name: "lines are counted separately",
			records: []record.Record{
				rec(catalog.UnitBV, "915", "S1"),
				rec(catalog.UnitBV, "945", "S1"),
			},
			line: catalog.LineSocioEmotional,
			want: sales.Counts{
				{Segment: catalog.SegmentFund1, Grade: "5º Ano", Unit: catalog.UnitBV}: 1,
			},
		},
		{
			name: "ids differing only by whitespace join",
			records: []record.Record{
				rec(catalog.UnitCD, "916", "123"),
				rec(catalog.UnitCD, "916", " 123 "),
			},
			line: catalog.LineCurriculum,
			want: sales.Counts{
				{Segment: catalog.SegmentFund2, Grade: "6º Ano", Unit: catalog.UnitCD}: 1,
			},
		},
		{
			name:    "empty feed",
			records: nil,
			line:    catalog.LineCurriculum,
			want:    sales.Counts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tagged := sales.Scope(catalog.Default(), tt.records)
			got := sales.CountUnique(tagged, tt.line)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountUnique_MonotonicInRecords(t *testing.T) {
	base := []record.Record{
		rec(catalog.UnitBV, "915", "S1"),
		rec(catalog.UnitBV, "916", "S2"),
	}

	before := sales.CountUnique(sales.Scope(catalog.Default(), base), catalog.LineCurriculum)

	grown := append(base, rec(catalog.UnitBV, "915", "S3"), rec(catalog.UnitBV, "916", "S2"))
	after := sales.CountUnique(sales.Scope(catalog.Default(), grown), catalog.LineCurriculum)

	for k, v := range before {
		assert.GreaterOrEqual(t, after[k], v)
	}
}

func TestCounts_Totals(t *testing.T) {
	c := sales.Counts{
		{Segment: catalog.SegmentFund1, Grade: "1º Ano", Unit: catalog.UnitBV}: 3,
		{Segment: catalog.SegmentFund1, Grade: "2º Ano", Unit: catalog.UnitBV}: 4,
		{Segment: catalog.SegmentFund1, Grade: "1º Ano", Unit: catalog.UnitJG}: 5,
	}

	assert.Equal(t, 7, c.UnitTotal(catalog.UnitBV))
	assert.Equal(t, 12, c.Total())
	assert.Equal(t, 3, c.Get(catalog.SegmentFund1, "1º Ano", catalog.UnitBV))
	assert.Equal(t, 0, c.Get(catalog.SegmentFund2, "6º Ano", catalog.UnitBV))
	assert.Equal(t, map[catalog.Unit]int{catalog.UnitBV: 7, catalog.UnitJG: 5}, c.ByUnit())
}

func TestStudents(t *testing.T) {
	tagged := sales.Scope(catalog.Default(), []record.Record{
		rec(catalog.UnitBV, "915", "1"),
		rec(catalog.UnitBV, "945", "1"),
		rec(catalog.UnitBV, "916", "2"),
		rec(catalog.UnitJG, "916", "3"),
	})

	got := sales.Students(tagged)
	assert.Len(t, got[catalog.UnitBV], 2)
	assert.Len(t, got[catalog.UnitJG], 1)
}

func TestOfLine(t *testing.T) {
	tagged := sales.Scope(catalog.Default(), []record.Record{
		rec(catalog.UnitBV, "915", "1"),
		rec(catalog.UnitBV, "945", "1"),
		rec(catalog.UnitBV, "916", "2"),
	})

	got := sales.OfLine(tagged, catalog.LineCurriculum)
	require.Len(t, got, 2)
	assert.Equal(t, "915", got[0].ProductCode)
	assert.Equal(t, "916", got[1].ProductCode)

	assert.Empty(t, sales.OfLine(tagged, catalog.LineTechnology))
}
