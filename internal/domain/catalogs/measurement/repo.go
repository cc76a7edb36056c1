package measurement

import (
	"context"

	"caterbase/internal/core/id"
	"caterbase/internal/domain"
)

// Repository defines the interface for Measurement persistence.
type Repository interface {
	domain.CatalogRepository[*Measurement]

	// FindBySymbol retrieves unit by symbol (unique within tenant).
	FindBySymbol(ctx context.Context, symbol string) (*Measurement, error)

	// ListActive returns all units without deletion mark.
	ListActive(ctx context.Context) ([]*Measurement, error)

	// IsReferenced reports whether other units reference the given unit
	// as their base or smaller unit.
	IsReferenced(ctx context.Context, unitID id.ID) (bool, error)
}
