package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/ledger"
	"github.com/colegioelo/estoque/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// list runs query and hands every row to scan.
func (s *Store) list(ctx context.Context, what, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("listing %s: %w", what, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scanning %s: %w", what, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s rows: %w", what, err)
	}

	return nil
}

func (s *Store) ListOrders(ctx context.Context) ([]ledger.Order, error) {
	var out []ledger.Order

	err := s.list(ctx, "orders", `
		SELECT product_code, ordered_initial, ordered_supplemental
		FROM product_orders
		ORDER BY product_code`,
		func(rows *sql.Rows) error {
			var o ledger.Order
			if err := rows.Scan(&o.ProductCode, &o.Initial, &o.Supplemental); err != nil {
				return err
			}

			out = append(out, o)

			return nil
		})

	return out, err
}

func (s *Store) ListShipments(ctx context.Context) ([]ledger.Shipment, error) {
	var out []ledger.Shipment

	err := s.list(ctx, "shipments", `
		SELECT product_code, unit, quantity
		FROM shipments
		ORDER BY product_code, unit`,
		func(rows *sql.Rows) error {
			var (
				sh   ledger.Shipment
				unit string
			)

			if err := rows.Scan(&sh.ProductCode, &unit, &sh.Quantity); err != nil {
				return err
			}

			sh.Unit = catalog.Unit(unit)
			out = append(out, sh)

			return nil
		})

	return out, err
}

func (s *Store) ListAdjustments(ctx context.Context) ([]ledger.Adjustment, error) {
	var out []ledger.Adjustment

	err := s.list(ctx, "adjustments", `
		SELECT product_code, unit, quantity, note
		FROM adjustments
		ORDER BY product_code, unit`,
		func(rows *sql.Rows) error {
			var (
				a    ledger.Adjustment
				unit string
			)

			if err := rows.Scan(&a.ProductCode, &unit, &a.Quantity, &a.Note); err != nil {
				return err
			}

			a.Unit = catalog.Unit(unit)
			out = append(out, a)

			return nil
		})

	return out, err
}

func (s *Store) ListOverrides(ctx context.Context) ([]ledger.GradeOverride, error) {
	var out []ledger.GradeOverride

	err := s.list(ctx, "grade overrides", `
		SELECT student_id, unit, grade
		FROM grade_overrides
		ORDER BY unit, student_id`,
		func(rows *sql.Rows) error {
			var (
				o    ledger.GradeOverride
				unit string
			)

			if err := rows.Scan(&o.StudentID, &unit, &o.Grade); err != nil {
				return err
			}

			o.Unit = catalog.Unit(unit)
			out = append(out, o)

			return nil
		})

	return out, err
}

func (s *Store) ListPhysicalCounts(ctx context.Context) ([]ledger.PhysicalCount, error) {
	var out []ledger.PhysicalCount

	err := s.list(ctx, "physical counts", `
		SELECT product_code, unit, observed_on, quantity
		FROM physical_counts
		ORDER BY observed_on`,
		func(rows *sql.Rows) error {
			var (
				pc   ledger.PhysicalCount
				unit string
			)

			if err := rows.Scan(&pc.ProductCode, &unit, &pc.ObservedOn, &pc.Quantity); err != nil {
				return err
			}

			pc.Unit = catalog.Unit(unit)
			out = append(out, pc)

			return nil
		})

	return out, err
}

func (s *Store) ListOpenEnrollments(ctx context.Context) ([]ledger.OpenEnrollment, error) {
	var out []ledger.OpenEnrollment

	err := s.list(ctx, "open enrollments", `
		SELECT student_id, unit, student_name, grade
		FROM open_enrollments
		ORDER BY unit, student_name`,
		func(rows *sql.Rows) error {
			var (
				e    ledger.OpenEnrollment
				unit string
			)

			if err := rows.Scan(&e.StudentID, &unit, &e.StudentName, &e.Grade); err != nil {
				return err
			}

			e.Unit = catalog.Unit(unit)
			out = append(out, e)

			return nil
		})

	return out, err
}

func (s *Store) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}

	return nil
}

func (s *Store) UpsertOrder(ctx context.Context, o ledger.Order) error {
	return s.exec(ctx, "upserting order", `
		INSERT INTO product_orders (product_code, ordered_initial, ordered_supplemental, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_code) DO UPDATE
		SET ordered_initial = EXCLUDED.ordered_initial,
			ordered_supplemental = EXCLUDED.ordered_supplemental,
			updated_at = NOW()`,
		o.ProductCode, o.Initial, o.Supplemental)
}

func (s *Store) UpsertShipment(ctx context.Context, sh ledger.Shipment) error {
	return s.exec(ctx, "upserting shipment", `
		INSERT INTO shipments (product_code, unit, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_code, unit) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
		sh.ProductCode, string(sh.Unit), sh.Quantity)
}

func (s *Store) UpsertAdjustment(ctx context.Context, a ledger.Adjustment) error {
	return s.exec(ctx, "upserting adjustment", `
		INSERT INTO adjustments (product_code, unit, quantity, note, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_code, unit) DO UPDATE
		SET quantity = EXCLUDED.quantity, note = EXCLUDED.note, updated_at = NOW()`,
		a.ProductCode, string(a.Unit), a.Quantity, a.Note)
}

func (s *Store) UpsertOverride(ctx context.Context, o ledger.GradeOverride) error {
	return s.exec(ctx, "upserting grade override", `
		INSERT INTO grade_overrides (student_id, unit, grade, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (student_id, unit) DO UPDATE
		SET grade = EXCLUDED.grade`,
		o.StudentID, string(o.Unit), o.Grade)
}

func (s *Store) DeleteOverride(ctx context.Context, key record.StudentKey) error {
	return s.exec(ctx, "deleting grade override",
		`DELETE FROM grade_overrides WHERE student_id = $1 AND unit = $2`,
		key.StudentID, string(key.Unit))
}

func (s *Store) UpsertPhysicalCount(ctx context.Context, pc ledger.PhysicalCount) error {
	return s.exec(ctx, "upserting physical count", `
		INSERT INTO physical_counts (product_code, unit, observed_on, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_code, unit, observed_on) DO UPDATE
		SET quantity = EXCLUDED.quantity`,
		pc.ProductCode, string(pc.Unit), pc.ObservedOn, pc.Quantity)
}

func (s *Store) UpsertOpenEnrollment(ctx context.Context, e ledger.OpenEnrollment) error {
	return s.exec(ctx, "upserting open enrollment", `
		INSERT INTO open_enrollments (student_id, unit, student_name, grade)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, unit) DO UPDATE
		SET student_name = EXCLUDED.student_name, grade = EXCLUDED.grade`,
		e.StudentID, string(e.Unit), e.StudentName, e.Grade)
}
