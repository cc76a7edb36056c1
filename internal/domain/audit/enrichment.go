// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	"caterbase/internal/core/security"
)

// EnrichUpdatedBy sets the UpdatedBy field from the context user ID.
// If no user is in context, this is a no-op.
func EnrichUpdatedBy(ctx context.Context, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
