package rawmaterial

import (
	"context"

	"caterbase/internal/core/id"
	"caterbase/internal/domain"
)

// Repository defines the interface for RawMaterial persistence.
type Repository interface {
	domain.CatalogRepository[*RawMaterial]

	// ListByCategory returns active materials of one category.
	ListByCategory(ctx context.Context, category Category) ([]*RawMaterial, error)

	// IsAllocated reports whether the material appears in the
	// allocation ledger.
	IsAllocated(ctx context.Context, materialID id.ID) (bool, error)
}
