package rawmaterial

import (
	"context"
	"fmt"
	"time"

	"caterbase/internal/core/apperror"
	"caterbase/internal/domain"
	"caterbase/internal/domain/catalogs/measurement"
	"caterbase/pkg/numerator"
)

// Service provides business logic for the RawMaterial catalog.
type Service struct {
	*domain.CatalogService[*RawMaterial]
	repo      Repository
	units     measurement.Repository
	numerator *numerator.Service
}

// NewService creates a new RawMaterial service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository, units measurement.Repository, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*RawMaterial]{
		Repo:       repo,
		TxManager:  nil, // obtained from context
		Numerator:  num,
		EntityName: "raw material",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		units:          units,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkUnit)
	base.Hooks().OnBeforeDelete(svc.guardDelete)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, m *RawMaterial) error {
	if m.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("RM"), time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		m.Code = code
	}

	return s.checkUnit(ctx, m)
}

// checkUnit verifies the referenced measurement unit exists.
func (s *Service) checkUnit(ctx context.Context, m *RawMaterial) error {
	if _, err := s.units.GetByID(ctx, m.UnitID); err != nil {
		return apperror.NewUnknownMeasurement(m.UnitID.String())
	}
	return nil
}

// guardDelete blocks deletion of materials already present in the
// allocation ledger.
func (s *Service) guardDelete(ctx context.Context, m *RawMaterial) error {
	allocated, err := s.repo.IsAllocated(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("check material allocations: %w", err)
	}
	if allocated {
		return apperror.NewConflict("raw material has allocation records").
			WithDetail("id", m.ID.String())
	}
	return nil
}

// --- Entity-specific methods ---

// ListByCategory returns active materials of one category.
func (s *Service) ListByCategory(ctx context.Context, category Category) ([]*RawMaterial, error) {
	if !isValidCategory(category) {
		return nil, apperror.NewValidation("invalid raw material category").
			WithDetail("value", string(category))
	}
	return s.repo.ListByCategory(ctx, category)
}
