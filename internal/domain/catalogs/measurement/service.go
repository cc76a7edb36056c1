package measurement

import (
	"context"
	"fmt"
	"time"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain"
	"caterbase/internal/domain/measure"
	"caterbase/pkg/numerator"
)

// Service provides business logic for the Measurement catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Measurement]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Measurement service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Measurement]{
		Repo:       repo,
		TxManager:  nil, // obtained from context
		Numerator:  num,
		EntityName: "measurement unit",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)
	base.Hooks().OnBeforeDelete(svc.guardDelete)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, m *Measurement) error {
	if m.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("MU"), time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		m.Code = code
	}

	if exists, _ := s.checkSymbolExists(ctx, m.Symbol, m.ID); exists {
		return apperror.NewConflict("measurement unit with this symbol already exists").
			WithDetail("symbol", m.Symbol)
	}

	return s.validateReferences(ctx, m)
}

func (s *Service) prepareForUpdate(ctx context.Context, m *Measurement) error {
	if exists, _ := s.checkSymbolExists(ctx, m.Symbol, m.ID); exists {
		return apperror.NewConflict("measurement unit with this symbol already exists").
			WithDetail("symbol", m.Symbol)
	}

	return s.validateReferences(ctx, m)
}

// guardDelete blocks deletion of units still referenced by other units.
func (s *Service) guardDelete(ctx context.Context, m *Measurement) error {
	referenced, err := s.repo.IsReferenced(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("check unit references: %w", err)
	}
	if referenced {
		return apperror.NewConflict("measurement unit is referenced by other units").
			WithDetail("id", m.ID.String())
	}
	return nil
}

// validateReferences checks that base and smaller unit references point
// to existing rows and keep the unit graph flat.
func (s *Service) validateReferences(ctx context.Context, m *Measurement) error {
	if m.BaseUnitID != nil && !id.IsNil(*m.BaseUnitID) {
		base, err := s.repo.GetByID(ctx, *m.BaseUnitID)
		if err != nil {
			return apperror.NewUnknownMeasurement(m.BaseUnitID.String())
		}
		if !base.IsBase {
			return apperror.NewValidation("base unit reference must point to a base unit").
				WithDetail("baseUnitId", m.BaseUnitID.String())
		}
	}

	if m.SmallerUnitID != nil && !id.IsNil(*m.SmallerUnitID) {
		if _, err := s.repo.GetByID(ctx, *m.SmallerUnitID); err != nil {
			return apperror.NewUnknownMeasurement(m.SmallerUnitID.String())
		}
	}

	return nil
}

func (s *Service) checkSymbolExists(ctx context.Context, symbol string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindBySymbol(ctx, symbol)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}

// --- Entity-specific methods ---

// FindBySymbol retrieves unit by symbol.
func (s *Service) FindBySymbol(ctx context.Context, symbol string) (*Measurement, error) {
	return s.repo.FindBySymbol(ctx, symbol)
}

// Snapshot loads all active units into an immutable engine catalog.
// Conversion, aggregation and splitting all run against one snapshot so
// a request sees a consistent unit graph.
func (s *Service) Snapshot(ctx context.Context) (*measure.Catalog, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load measurement snapshot: %w", err)
	}

	units := make([]measure.Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, row.EngineUnit())
	}
	return measure.NewCatalog(units), nil
}
