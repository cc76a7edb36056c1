package entity

import (
	"context"

	"caterbase/internal/core/apperror"
)

// Catalog is the base type for reference data: measurement units,
// raw materials, godowns, agencies.
type Catalog struct {
	BaseCatalog

	// Code is a human-readable identifier (unique within tenant database)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
// In Database-per-Tenant architecture, tenantID is not required.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Code:        code,
		Name:        name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code can be auto-generated, so it's optional at creation

	return nil
}
