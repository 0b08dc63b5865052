package api

import (
	"net/http"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/stock"
)

type stockQuery struct {
	Unit    string `json:"unit" validate:"omitempty,oneof=BV CD JG CDR"`
	Segment string `json:"segment"`
	Line    string `json:"line" validate:"omitempty,oneof=curriculum socioemotional technology"`
	Band    string `json:"band" validate:"omitempty,oneof=shortage low ok"`
}

// ParseFilter reads the unit, segment, line and band query parameters.
func ParseFilter(r *http.Request) (stock.Filter, error) {
	q := r.URL.Query()
	sq := stockQuery{
		Unit:    q.Get("unit"),
		Segment: q.Get("segment"),
		Line:    q.Get("line"),
		Band:    q.Get("band"),
	}

	if err := Validate(sq); err != nil {
		return stock.Filter{}, err
	}

	return stock.Filter{
		Unit:    catalog.Unit(sq.Unit),
		Segment: sq.Segment,
		Line:    catalog.Line(sq.Line),
		Band:    stock.Band(sq.Band),
	}, nil
}
