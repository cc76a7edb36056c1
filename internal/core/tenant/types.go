// Package tenant provides multi-tenant database management for Database-per-Tenant architecture.
// Each catering agency runs against its own isolated PostgreSQL database.
package tenant

import (
	"fmt"
	"strings"
	"time"
)

// Status represents tenant lifecycle state.
type Status string

const (
	// StatusActive - tenant can accept requests
	StatusActive Status = "active"

	// StatusSuspended - tenant is temporarily disabled (e.g., payment issues)
	StatusSuspended Status = "suspended"

	// StatusDeleted - tenant is marked for deletion
	StatusDeleted Status = "deleted"
)

// Plan represents tenant subscription plan.
type Plan string

const (
	PlanStandard   Plan = "standard"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Tenant represents an agency record from the meta-database.
type Tenant struct {
	ID          string         `db:"id"`
	Slug        string         `db:"slug"`         // URL-safe identifier
	DisplayName string         `db:"display_name"` // Agency name
	DBName      string         `db:"db_name"`
	DBHost      string         `db:"db_host"`
	DBPort      int            `db:"db_port"`
	Status      Status         `db:"status"`
	Plan        Plan           `db:"plan"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	Settings    map[string]any `db:"settings"` // Additional settings (JSONB)
}

// IsActive returns true if tenant can accept requests.
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// DSN builds PostgreSQL connection string for this tenant's database.
func (t *Tenant) DSN(user, password string) string {
	return t.DSNWithSSL(user, password, "disable")
}

// DSNWithSSL builds PostgreSQL connection string with the given SSL mode.
func (t *Tenant) DSNWithSSL(user, password, sslMode string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		user, password, t.DBHost, t.DBPort, t.DBName, sslMode,
	)
}

// CreateTenantInput contains data for onboarding a new agency.
type CreateTenantInput struct {
	Slug        string
	DisplayName string
	Plan        Plan
	DBHost      string // Optional, defaults to localhost
	DBPort      int    // Optional, defaults to 5432
}

// Validate checks if input is valid.
func (i *CreateTenantInput) Validate() error {
	if i.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	i.Slug = strings.ToLower(i.Slug)
	if len(i.Slug) > 63 {
		return fmt.Errorf("slug must be 63 characters or less")
	}
	if i.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	return nil
}

// GenerateDBName creates database name from slug.
// Format: cb_<slug>
func (i *CreateTenantInput) GenerateDBName() string {
	return "cb_" + i.Slug
}
