package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
	"github.com/colegioelo/estoque/internal/sales"
)

func tech(unit catalog.Unit, student string) record.Record {
	return record.Record{Unit: unit, ProductCode: "995", StudentID: student, Grade: catalog.GradeUndetermined}
}

func key(unit catalog.Unit, student string) record.StudentKey {
	return record.StudentKey{StudentID: student, Unit: unit}
}

func TestInferTechnology(t *testing.T) {
	tests := []struct {
		name        string
		records     []record.Record
		overrides   map[record.StudentKey]string
		wantGrade   string
		wantSegment string
		wantSource  sales.Source
	}{
		{
			name: "curriculum record decides the grade",
			records: []record.Record{
				rec(catalog.UnitBV, "915", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			wantGrade:   "5º Ano",
			wantSegment: catalog.SegmentFund1,
			wantSource:  sales.SourceCrossLine,
		},
		{
			name: "socio-emotional record decides when no curriculum record",
			records: []record.Record{
				rec(catalog.UnitBV, "946", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			wantGrade:   "6º Ano",
			wantSegment: catalog.SegmentFund2,
			wantSource:  sales.SourceCrossLine,
		},
		{
			name: "curriculum beats socio-emotional",
			records: []record.Record{
				rec(catalog.UnitBV, "942", "S1"),
				rec(catalog.UnitBV, "913", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			wantGrade:   "3º Ano",
			wantSegment: catalog.SegmentFund1,
			wantSource:  sales.SourceCrossLine,
		},
		{
			name: "override beats cross-line",
			records: []record.Record{
				rec(catalog.UnitBV, "915", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			overrides:   map[record.StudentKey]string{key(catalog.UnitBV, "S1"): "4º Ano"},
			wantGrade:   "4º Ano",
			wantSegment: catalog.SegmentFund1,
			wantSource:  sales.SourceOverride,
		},
		{
			name: "override for another unit is ignored",
			records: []record.Record{
				tech(catalog.UnitBV, "S1"),
			},
			overrides:   map[record.StudentKey]string{key(catalog.UnitJG, "S1"): "4º Ano"},
			wantGrade:   catalog.GradeUngraded,
			wantSegment: catalog.SegmentOther,
			wantSource:  sales.SourceFallback,
		},
		{
			name: "cross-line record at another unit is ignored",
			records: []record.Record{
				rec(catalog.UnitJG, "915", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			wantGrade:   catalog.GradeUngraded,
			wantSegment: catalog.SegmentOther,
			wantSource:  sales.SourceFallback,
		},
		{
			name: "record grade used when nothing else knows",
			records: []record.Record{
				{Unit: catalog.UnitJG, ProductCode: "995", StudentID: "S1", Grade: "2º Ano"},
			},
			wantGrade:   "2º Ano",
			wantSegment: catalog.SegmentFund1,
			wantSource:  sales.SourceRecord,
		},
		{
			name: "high school grade label goes through the inference table",
			records: []record.Record{
				rec(catalog.UnitBV, "991", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			wantGrade:   "2º Ano",
			wantSegment: catalog.SegmentFund1,
			wantSource:  sales.SourceCrossLine,
		},
		{
			name: "infantil grade maps to other segment",
			records: []record.Record{
				rec(catalog.UnitBV, "904", "S1"),
				tech(catalog.UnitBV, "S1"),
			},
			wantGrade:   "Infantil V",
			wantSegment: catalog.SegmentOther,
			wantSource:  sales.SourceCrossLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tagged := sales.Scope(catalog.Default(), tt.records)
			resolutions, counts := sales.InferTechnology(tagged, sales.DefaultChain(tagged, tt.overrides))

			require.Len(t, resolutions, 1)
			assert.Equal(t, tt.wantGrade, resolutions[0].Grade)
			assert.Equal(t, tt.wantSegment, resolutions[0].Segment)
			assert.Equal(t, tt.wantSource, resolutions[0].Source)
			assert.Equal(t, 1, counts.Total())
		})
	}
}

func TestInferTechnology_CountsDistinctStudents(t *testing.T) {
	tagged := sales.Scope(catalog.Default(), []record.Record{
		rec(catalog.UnitBV, "915", "S1"),
		rec(catalog.UnitBV, "915", "S2"),
		tech(catalog.UnitBV, "S1"),
		tech(catalog.UnitBV, "S1"),
		tech(catalog.UnitBV, "S2"),
		tech(catalog.UnitBV, "S3"),
	})

	resolutions, counts := sales.InferTechnology(tagged, sales.DefaultChain(tagged, nil))

	assert.Len(t, resolutions, 3)
	assert.Equal(t, 2, counts.Get(catalog.SegmentFund1, "5º Ano", catalog.UnitBV))
	assert.Equal(t, 1, counts.Get(catalog.SegmentOther, catalog.GradeUngraded, catalog.UnitBV))
	assert.Equal(t, map[catalog.Unit]int{catalog.UnitBV: 1}, sales.Ungraded(resolutions))
}

func TestInferTechnology_ExcludedPairsNeverSource(t *testing.T) {
	cat := catalog.New(
		[]catalog.Entry{
			{Code: "915", Segment: catalog.SegmentFund1, Grade: "5º Ano", Line: catalog.LineCurriculum},
			{Code: "995", Segment: catalog.SegmentGeneral, Grade: catalog.GradeUndetermined, Line: catalog.LineTechnology},
		},
		[]catalog.UnitInfo{{Code: catalog.UnitJG}},
		map[catalog.Unit][]string{catalog.UnitJG: {"915"}},
	)

	tagged := sales.Scope(cat, []record.Record{
		rec(catalog.UnitJG, "915", "S1"),
		tech(catalog.UnitJG, "S1"),
	})

	resolutions, _ := sales.InferTechnology(tagged, sales.DefaultChain(tagged, nil))
	require.Len(t, resolutions, 1)
	assert.Equal(t, catalog.GradeUngraded, resolutions[0].Grade)
}

func TestInferTechnology_ExcludedTechnologyUnitHasNoStudents(t *testing.T) {
	tagged := sales.Scope(catalog.Default(), []record.Record{
		rec(catalog.UnitCDR, "915", "S1"),
		tech(catalog.UnitCDR, "S1"),
	})

	resolutions, counts := sales.InferTechnology(tagged, sales.DefaultChain(tagged, nil))
	assert.Empty(t, resolutions)
	assert.Zero(t, counts.UnitTotal(catalog.UnitCDR))
}

func TestInferTechnology_Deterministic(t *testing.T) {
	records := []record.Record{
		rec(catalog.UnitBV, "913", "S1"),
		rec(catalog.UnitBV, "914", "S1"),
		tech(catalog.UnitBV, "S1"),
	}

	tagged := sales.Scope(catalog.Default(), records)
	first, _ := sales.InferTechnology(tagged, sales.DefaultChain(tagged, nil))

	for range 20 {
		again, _ := sales.InferTechnology(tagged, sales.DefaultChain(tagged, nil))
		assert.Equal(t, first, again)
	}

	assert.Equal(t, "3º Ano", first[0].Grade, "first record in feed order wins")
}

func TestChain_Order(t *testing.T) {
	chain := sales.Chain{sales.RecordGradeResolver{}}

	grade, src := chain.Resolve(sales.Candidate{Key: key(catalog.UnitBV, "1"), Grade: catalog.GradeUndetermined})
	assert.Equal(t, catalog.GradeUngraded, grade)
	assert.Equal(t, sales.SourceFallback, src)

	grade, src = chain.Resolve(sales.Candidate{Key: key(catalog.UnitBV, "1"), Grade: "7º Ano"})
	assert.Equal(t, "7º Ano", grade)
	assert.Equal(t, sales.SourceRecord, src)
}
