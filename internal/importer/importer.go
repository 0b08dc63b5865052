package importer

import (
	"errors"
	"io"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

var (
	ErrUnknownFormat = errors.New("unknown import format")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrUnitRequired  = errors.New("tsv import needs a unit")
)

// Format names an uploaded file layout.
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// Source maps the format to the snapshot source recorded on replace.
func (f Format) Source() record.Source {
	if f == FormatJSON {
		return record.SourceJSON
	}

	return record.SourceTSV
}

type Parser interface {
	Parse(unit catalog.Unit, r io.Reader) ([]record.Record, error)
}
