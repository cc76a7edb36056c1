package allocation

import (
	"context"

	"caterbase/internal/core/id"
)

// Repository defines persistence operations for the allocation ledger.
// Writes are last-write-wins at the row level; callers wrap each row in
// its own transaction.
type Repository interface {
	// Upsert inserts or replaces the row identified by its composite key.
	Upsert(ctx context.Context, a *Allocation) error

	// Get retrieves one row by composite key.
	// Returns AllocationNotFound if absent.
	Get(ctx context.Context, key Key) (*Allocation, error)

	// FindByOrderID returns all ledger rows of an order.
	FindByOrderID(ctx context.Context, orderID id.ID) ([]*Allocation, error)

	// FindByMenuPreparationMenuItemID returns rows for one menu item line.
	FindByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) ([]*Allocation, error)

	// FindByMenuItemRawMaterial locates the row for a recipe line within
	// an order (used by sync).
	FindByMenuItemRawMaterial(ctx context.Context, orderID, menuPrepMenuItemID, rawMaterialID id.ID) (*Allocation, error)

	// ExistsByGodownID reports whether any row draws from the godown.
	ExistsByGodownID(ctx context.Context, godownID id.ID) (bool, error)

	// DeleteByMenuPreparationMenuItemID removes rows when the owning
	// menu item line is removed from the order.
	DeleteByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) error
}
