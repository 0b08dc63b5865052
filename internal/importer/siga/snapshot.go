package siga

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

// flexString accepts a JSON string or number, since the SIS is inconsistent
// about enrollment ids and installment numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}

	*f = flexString(n.String())

	return nil
}

type snapshotFile struct {
	Records []snapshotRow `json:"registros"`
}

type snapshotRow struct {
	Unit        string     `json:"unidade"`
	ServiceCode flexString `json:"servico_codigo"`
	Class       string     `json:"turma"`
	StudentID   flexString `json:"matricula"`
	StudentName string     `json:"nome"`
	DocumentRef flexString `json:"titulo"`
	Installment flexString `json:"parcela"`
	SettledOn   string     `json:"dt_baixa"`
	Amount      jsonAmount `json:"valor"`
	Received    jsonAmount `json:"recebido"`
}

// SnapshotParser reads a cached extraction file: {"registros": [...]}.
// Each row names its own unit.
type SnapshotParser struct {
	cat *catalog.Catalog
}

func NewSnapshotParser(cat *catalog.Catalog) *SnapshotParser {
	return &SnapshotParser{cat: cat}
}

// Parse decodes the file. When unit is set, rows of other units are dropped and
// rows without a unit are assigned to it.
func (p *SnapshotParser) Parse(unit catalog.Unit, r io.Reader) ([]record.Record, error) {
	var file snapshotFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	records := make([]record.Record, 0, len(file.Records))

	for i, row := range file.Records {
		rowUnit := catalog.Unit(strings.TrimSpace(row.Unit))

		switch {
		case rowUnit == "" && unit != "":
			rowUnit = unit
		case unit != "" && rowUnit != unit:
			continue
		}

		if _, ok := p.cat.Unit(rowUnit); !ok {
			continue
		}

		rec, ok, err := toRecord(p.cat, billed{
			unit:           rowUnit,
			code:           strings.TrimSpace(string(row.ServiceCode)),
			classSection:   row.Class,
			studentID:      strings.TrimSpace(string(row.StudentID)),
			studentName:    strings.TrimSpace(row.StudentName),
			documentRef:    string(row.DocumentRef),
			installment:    string(row.Installment),
			settledOn:      row.SettledOn,
			amount:         int64(row.Amount),
			amountReceived: int64(row.Received),
		})
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		if ok {
			records = append(records, rec)
		}
	}

	return records, nil
}
