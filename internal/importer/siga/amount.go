package siga

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// parseBRLAmount parses a Brazilian-formatted amount into cents.
// Format examples: "1.765,00" -> 176500, "299,90" -> 29990, "" -> 0.
func parseBRLAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0, nil
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}

// jsonAmount accepts the API's amounts, which arrive as numbers, as plain decimal
// strings ("1765.00") or as null.
type jsonAmount int64

func (a *jsonAmount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = 0
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		raw = string(b)
	}

	if raw == "" {
		*a = 0
		return nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		cents, brErr := parseBRLAmount(raw)
		if brErr != nil {
			return fmt.Errorf("parse amount %s: %w", b, err)
		}

		*a = jsonAmount(cents)

		return nil
	}

	*a = jsonAmount(d.Mul(hundred).Round(0).IntPart())

	return nil
}

// parseSettlementDate accepts the report format (DD/MM/YYYY) and the API format
// (YYYY-MM-DD, optionally followed by a time). Empty input yields nil.
func parseSettlementDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}

	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("parse settlement date %q", s)
}
