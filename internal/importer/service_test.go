package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/importer"
	"github.com/colegioelo/estoque/internal/record"
)

func TestService_Import(t *testing.T) {
	const tsv = "915 - SISTEM. ELO - 5 ANO (5º Ano - Turma A)\n" +
		"2025001\tAna\t7781\t1\t20/08/2025\t1.765,00\n"

	const snapshot = `{"registros": [{"unidade": "JG", "servico_codigo": "941", "matricula": "1", "valor": "1,00"}]}`

	type testCase struct {
		name    string
		format  importer.Format
		unit    catalog.Unit
		input   string
		wantLen int
		wantErr error
	}

	tests := []testCase{
		{name: "tsv", format: importer.FormatTSV, unit: catalog.UnitBV, input: tsv, wantLen: 1},
		{name: "tsv without unit", format: importer.FormatTSV, input: tsv, wantErr: importer.ErrUnitRequired},
		{name: "json", format: importer.FormatJSON, input: snapshot, wantLen: 1},
		{name: "json filtered to another unit", format: importer.FormatJSON, unit: catalog.UnitBV, input: snapshot, wantLen: 0},
		{name: "unknown unit", format: importer.FormatTSV, unit: "XX", input: tsv, wantErr: importer.ErrUnknownUnit},
		{name: "unknown format", format: "xlsx", unit: catalog.UnitBV, input: tsv, wantErr: importer.ErrUnknownFormat},
	}

	svc := importer.NewService(catalog.Default())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := svc.Import(tt.format, tt.unit, strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, recs, tt.wantLen)
		})
	}
}

func TestFormat_Source(t *testing.T) {
	assert.Equal(t, record.SourceTSV, importer.FormatTSV.Source())
	assert.Equal(t, record.SourceJSON, importer.FormatJSON.Source())
}
