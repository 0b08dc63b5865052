package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/colegioelo/estoque/internal/catalog"
	"github.com/colegioelo/estoque/internal/record"
)

var (
	ErrUnknownProduct = errors.New("unknown product code")
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrUnknownGrade   = errors.New("unknown grade")
	ErrNegative       = errors.New("quantity must not be negative")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListOrders(ctx context.Context) ([]Order, error)
	ListShipments(ctx context.Context) ([]Shipment, error)
	ListAdjustments(ctx context.Context) ([]Adjustment, error)
	ListOverrides(ctx context.Context) ([]GradeOverride, error)
	ListPhysicalCounts(ctx context.Context) ([]PhysicalCount, error)
	ListOpenEnrollments(ctx context.Context) ([]OpenEnrollment, error)

	UpsertOrder(ctx context.Context, o Order) error
	UpsertShipment(ctx context.Context, s Shipment) error
	UpsertAdjustment(ctx context.Context, a Adjustment) error
	UpsertOverride(ctx context.Context, o GradeOverride) error
	DeleteOverride(ctx context.Context, key record.StudentKey) error
	UpsertPhysicalCount(ctx context.Context, pc PhysicalCount) error
	UpsertOpenEnrollment(ctx context.Context, e OpenEnrollment) error
}

type Service struct {
	repo    Repository
	catalog *catalog.Catalog
}

func NewService(repo Repository, cat *catalog.Catalog) *Service {
	return &Service{repo: repo, catalog: cat}
}

// Load reads every ledger into one view. Only the latest physical count per
// product and unit is kept.
func (s *Service) Load(ctx context.Context) (*Ledger, error) {
	l := New()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for _, o := range orders {
		l.Orders[o.ProductCode] = o
	}

	shipments, err := s.repo.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	for _, sh := range shipments {
		l.Shipments[sh.StockKey] += sh.Quantity
	}

	adjustments, err := s.repo.ListAdjustments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}

	for _, a := range adjustments {
		l.Adjustments[a.StockKey] += a.Quantity
	}

	overrides, err := s.repo.ListOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	for _, o := range overrides {
		key := record.StudentKey{StudentID: record.NormalizeStudentID(o.StudentID), Unit: o.Unit}
		l.Overrides[key] = o.Grade
	}

	counts, err := s.repo.ListPhysicalCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list physical counts: %w", err)
	}

	for _, pc := range counts {
		l.AddPhysicalCount(pc)
	}

	l.OpenEnrollments, err = s.repo.ListOpenEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open enrollments: %w", err)
	}

	return l, nil
}

func (s *Service) SetOrder(ctx context.Context, o Order) error {
	if _, ok := s.catalog.Entry(o.ProductCode); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, o.ProductCode)
	}

	if o.Initial < 0 || o.Supplemental < 0 {
		return ErrNegative
	}

	return s.repo.UpsertOrder(ctx, o)
}

func (s *Service) SetShipment(ctx context.Context, sh Shipment) error {
	if err := s.validateKey(sh.StockKey); err != nil {
		return err
	}

	if sh.Quantity < 0 {
		return ErrNegative
	}

	return s.repo.UpsertShipment(ctx, sh)
}

// SetAdjustment records an add-back. Negative quantities are allowed for corrections.
func (s *Service) SetAdjustment(ctx context.Context, a Adjustment) error {
	if err := s.validateKey(a.StockKey); err != nil {
		return err
	}

	return s.repo.UpsertAdjustment(ctx, a)
}

func (s *Service) SetOverride(ctx context.Context, o GradeOverride) error {
	if err := s.validateUnit(o.Unit); err != nil {
		return err
	}

	if !s.catalog.HasGrade(o.Grade) {
		return fmt.Errorf("%w: %q", ErrUnknownGrade, o.Grade)
	}

	o.StudentID = record.NormalizeStudentID(o.StudentID)

	return s.repo.UpsertOverride(ctx, o)
}

func (s *Service) RemoveOverride(ctx context.Context, key record.StudentKey) error {
	key.StudentID = record.NormalizeStudentID(key.StudentID)
	return s.repo.DeleteOverride(ctx, key)
}

func (s *Service) RecordPhysicalCount(ctx context.Context, pc PhysicalCount) error {
	if err := s.validateKey(pc.StockKey); err != nil {
		return err
	}

	if pc.Quantity < 0 {
		return ErrNegative
	}

	return s.repo.UpsertPhysicalCount(ctx, pc)
}

func (s *Service) AddOpenEnrollment(ctx context.Context, e OpenEnrollment) error {
	if err := s.validateUnit(e.Unit); err != nil {
		return err
	}

	if e.Grade != "" && !s.catalog.HasGrade(e.Grade) {
		return fmt.Errorf("%w: %q", ErrUnknownGrade, e.Grade)
	}

	e.StudentID = record.NormalizeStudentID(e.StudentID)

	return s.repo.UpsertOpenEnrollment(ctx, e)
}

func (s *Service) validateKey(k StockKey) error {
	if err := s.validateUnit(k.Unit); err != nil {
		return err
	}

	if _, ok := s.catalog.Resolve(k.ProductCode, k.Unit); !ok {
		return fmt.Errorf("%w: %s at %s", ErrUnknownProduct, k.ProductCode, k.Unit)
	}

	return nil
}

func (s *Service) validateUnit(u catalog.Unit) error {
	if _, ok := s.catalog.Unit(u); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUnit, u)
	}

	return nil
}
