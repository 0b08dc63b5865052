package siga

import (
	"regexp"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

var (
	reServiceCode = regexp.MustCompile(`^(\d{3})\s*-`)
	reClass       = regexp.MustCompile(`Turma\s+(\w+)`)
)

// serviceCode extracts the three-digit product code a SIS service name starts with.
func serviceCode(name string) (string, bool) {
	m := reServiceCode.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// classSection extracts the class letter from text such as "5º Ano - Turma A - Manhã".
func classSection(text string) string {
	m := reClass.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	return m[1]
}

// billed is one settled service line as read from any SIS source.
type billed struct {
	unit           catalog.Unit
	code           string
	classSection   string
	studentID      string
	studentName    string
	documentRef    string
	installment    string
	settledOn      string
	amount         int64
	amountReceived int64
}

// toRecord tags a billed line with its catalog grade. It reports false when the
// product is unknown or excluded at the unit.
func toRecord(cat *catalog.Catalog, b billed) (record.Record, bool, error) {
	entry, ok := cat.Resolve(b.code, b.unit)
	if !ok {
		return record.Record{}, false, nil
	}

	settled, err := parseSettlementDate(b.settledOn)
	if err != nil {
		return record.Record{}, false, err
	}

	return record.Record{
		Unit:           b.unit,
		ProductCode:    b.code,
		ClassSection:   b.classSection,
		StudentID:      b.studentID,
		StudentName:    b.studentName,
		DocumentRef:    b.documentRef,
		Installment:    b.installment,
		SettledOn:      settled,
		Amount:         b.amount,
		AmountReceived: b.amountReceived,
		Grade:          entry.Grade,
	}, true, nil
}
