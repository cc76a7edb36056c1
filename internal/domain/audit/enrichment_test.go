package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"caterbase/internal/core/security"
)

func TestEnrichUpdatedBy(t *testing.T) {
	ctx := security.WithUserID(context.Background(), "user-42")

	updatedBy := "previous"
	EnrichUpdatedBy(ctx, &updatedBy)
	assert.Equal(t, "user-42", updatedBy)
}

func TestEnrichUpdatedBy_NoUserInContext(t *testing.T) {
	updatedBy := "previous"
	EnrichUpdatedBy(context.Background(), &updatedBy)
	assert.Equal(t, "previous", updatedBy)
}
