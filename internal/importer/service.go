package importer

import (
	"fmt"
	"io"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/importer/siga"
	"github.com/colegioelo/estoque/internal/record"
)

type Service struct {
	cat     *catalog.Catalog
	parsers map[Format]Parser
}

func NewService(cat *catalog.Catalog) *Service {
	return &Service{
		cat: cat,
		parsers: map[Format]Parser{
			FormatTSV:  siga.NewTSVParser(cat),
			FormatJSON: siga.NewSnapshotParser(cat),
		},
	}
}

// Import parses one uploaded file. The TSV report covers a single unit, so unit is
// required for it; JSON snapshots carry their own units and treat unit as a filter.
func (s *Service) Import(format Format, unit catalog.Unit, r io.Reader) ([]record.Record, error) {
	p, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if unit != "" {
		if _, ok := s.cat.Unit(unit); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
		}
	} else if format == FormatTSV {
		return nil, ErrUnitRequired
	}

	return p.Parse(unit, r)
}
