package siga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

// UnitResult reports how the fetch of one unit went.
type UnitResult struct {
	Unit    catalog.Unit
	Records int
	Err     error
}

// FetchResult holds every record fetched plus the per-unit outcome, in catalog unit order.
type FetchResult struct {
	Records []record.Record
	Units   []UnitResult
}

// Failed returns the units whose fetch ended in error.
func (r *FetchResult) Failed() []UnitResult {
	var out []UnitResult

	for _, u := range r.Units {
		if u.Err != nil {
			out = append(out, u)
		}
	}

	return out
}

// FetchAll fetches every unit of the catalog concurrently, at most Workers at a time.
// A failing unit does not stop the others; records fetched before its failure are kept.
// It returns an error only when no unit produced any record and at least one failed.
func (c *Client) FetchAll(ctx context.Context) (*FetchResult, error) {
	units := c.cat.Units()

	type outcome struct {
		records []record.Record
		err     error
	}

	outcomes := make([]outcome, len(units))

	var g errgroup.Group
	g.SetLimit(c.cfg.Workers)

	for i, u := range units {
		g.Go(func() error {
			recs, err := c.FetchUnit(ctx, u)
			outcomes[i] = outcome{records: recs, err: err}

			if err != nil {
				slog.Error("failed to fetch unit", "unit", u.Code, "records", len(recs), "error", err)
			} else {
				slog.Info("fetched unit", "unit", u.Code, "records", len(recs))
			}

			return nil
		})
	}

	_ = g.Wait()

	res := &FetchResult{Units: make([]UnitResult, len(units))}

	var errs []error

	for i, o := range outcomes {
		res.Records = append(res.Records, o.records...)
		res.Units[i] = UnitResult{Unit: units[i].Code, Records: len(o.records), Err: o.err}

		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", units[i].Code, o.err))
		}
	}

	if len(res.Records) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return res, nil
}
