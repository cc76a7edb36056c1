// Package numerator provides auto-numbering for catalog codes and document numbers.
// In Database-per-Tenant architecture, uses the tenant pool from context.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"caterbase/internal/core/tenant"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service provides sequential numbering backed by sys_sequences.
// Numbers are allocated with UPSERT ... RETURNING, so they are gapless
// and safe under concurrent requests.
type Service struct {
	// staticQuerier is used for single-tenant mode and tests
	staticQuerier Querier
	// useContext indicates whether to get querier from context
	useContext bool
}

// New creates a numerator service with a static querier.
// Use for single-tenant or testing scenarios.
func New(querier Querier) *Service {
	return &Service{staticQuerier: querier}
}

// NewFromContext creates a numerator service that gets the querier from context.
// Use for Database-per-Tenant architecture.
func NewFromContext() *Service {
	return &Service{useContext: true}
}

func (s *Service) getQuerier(ctx context.Context) Querier {
	if s.useContext {
		// Numbering runs outside of business transactions, so the
		// tenant pool is used directly.
		return tenant.MustGetPool(ctx)
	}
	return s.staticQuerier
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "MU", "RM", "ALLOC")
	Prefix string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// GetNextNumber generates the next number.
// Pattern: PREFIX-YEAR-XXXXX (e.g., MU-2026-00001)
func (s *Service) GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := s.buildKey(cfg, period)
	querier := s.getQuerier(ctx)

	var num int64
	err := querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return s.formatNumber(cfg, period, num), nil
}

// SetNextNumber sets the current sequence value (for migration purposes).
func (s *Service) SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error {
	key := s.buildKey(cfg, period)
	querier := s.getQuerier(ctx)

	var result int64
	err := querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, key, value).Scan(&result)
	return err
}

// Next generates the next number using default config with prefix.
func (s *Service) Next(ctx context.Context, prefix string) (string, error) {
	return s.GetNextNumber(ctx, DefaultConfig(prefix), time.Now())
}

// buildKey creates the sequence key based on config and period.
func (s *Service) buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

// formatNumber creates the final number string.
func (s *Service) formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted number.
// The counter is always the last dash-separated segment, regardless of
// whether the format includes a year. Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndexByte(formatted, '-')
	if i < 0 || i == len(formatted)-1 {
		return -1
	}

	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
