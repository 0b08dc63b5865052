package siga

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/colegioelo/estoque/internal/catalog"
	enc "github.com/colegioelo/estoque/internal/encoding"
	"github.com/colegioelo/estoque/internal/record"
)

// minTSVFields is the number of columns a student row carries:
// matricula, name, document, installment, settlement date, amount.
const minTSVFields = 6

// TSVParser reads the per-unit "recebimentos por serviço" report exported from the SIS.
//
// The report groups student rows under service header lines such as
// "915 - SISTEM. ELO - 5 ANO (5º Ano - Turma A)". Subtotal and column header
// lines are skipped.
type TSVParser struct {
	cat *catalog.Catalog
}

func NewTSVParser(cat *catalog.Catalog) *TSVParser {
	return &TSVParser{cat: cat}
}

func (p *TSVParser) Parse(unit catalog.Unit, r io.Reader) ([]record.Record, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	slog.Debug("parsing report", "unit", unit, "charset", charset)

	var (
		records []record.Record
		code    string
		class   string
		lineNum int
	)

	scanner := bufio.NewScanner(utf8r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Subtotal") || strings.HasPrefix(line, "Matrícula") {
			continue
		}

		if isServiceHeader(line) {
			if c, ok := serviceCode(line); ok {
				code, class = p.open(unit, c, line)
			}

			continue
		}

		if code == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minTSVFields || !isStudentID(strings.TrimSpace(fields[0])) {
			continue
		}

		rec, ok, err := p.row(unit, code, class, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if ok {
			records = append(records, rec)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	return records, nil
}

func isServiceHeader(line string) bool {
	return strings.Contains(line, " - ") && strings.Contains(line, "(")
}

// open returns the product code and class section a service header starts.
// Products outside the catalog for unit yield an empty code, so their rows are skipped.
func (p *TSVParser) open(unit catalog.Unit, code, line string) (string, string) {
	if _, ok := p.cat.Resolve(code, unit); !ok {
		return "", ""
	}

	return code, classSection(line)
}

func (p *TSVParser) row(unit catalog.Unit, code, class string, fields []string) (record.Record, bool, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	amount, err := parseBRLAmount(fields[5])
	if err != nil {
		return record.Record{}, false, err
	}

	var received int64
	if len(fields) > minTSVFields {
		if received, err = parseBRLAmount(fields[len(fields)-1]); err != nil {
			return record.Record{}, false, err
		}
	}

	return toRecord(p.cat, billed{
		unit:           unit,
		code:           code,
		classSection:   class,
		studentID:      fields[0],
		studentName:    fields[1],
		documentRef:    fields[2],
		installment:    fields[3],
		settledOn:      fields[4],
		amount:         amount,
		amountReceived: received,
	})
}

// isStudentID reports whether s looks like an enrollment id: numeric, or a
// hyphenated code such as "2025-0042".
func isStudentID(s string) bool {
	if s == "" {
		return false
	}

	return unicode.IsDigit(rune(s[0])) || strings.Contains(s, "-")
}
