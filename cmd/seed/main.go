// Package main provides a CLI tool for seeding a tenant database with
// initial catalog data: the standard measurement units and, optionally,
// a set of demo raw materials.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"caterbase/internal/core/id"
	"caterbase/internal/infrastructure/storage/postgres"
	"caterbase/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// DATABASE_URL points at one tenant database, not the meta database.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to tenant database")

	unitIDs, err := seedMeasurementUnits(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed measurement units", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedRawMaterials(ctx, pool, log, unitIDs); err != nil {
			log.Fatalw("failed to seed raw materials", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

type unitSeed struct {
	code      string
	name      string
	symbol    string
	localName string

	// baseSymbol is empty for base units; otherwise the symbol of the
	// unit this one is derived from
	baseSymbol string
	equivalent decimal.Decimal

	decimalLimit    int
	fractionalAware bool

	// smallerSymbol names the finer unit compound rendering breaks
	// remainders into
	smallerSymbol string
}

// seedMeasurementUnits inserts the standard unit graph: weight
// (Kg/Gm), volume (Ltr/Ml) and count (Nos), plus a packaged unit
// derived with a non-decimal ratio. Existing symbols are left alone.
func seedMeasurementUnits(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (map[string]id.ID, error) {
	seeds := []unitSeed{
		{code: "UNIT-001", name: "Kilogram", symbol: "Kg", localName: "Kilo",
			equivalent: decimal.NewFromInt(1), decimalLimit: -1, fractionalAware: true, smallerSymbol: "Gm"},
		{code: "UNIT-002", name: "Gram", symbol: "Gm",
			baseSymbol: "Kg", equivalent: decimal.RequireFromString("0.001"), decimalLimit: 0},
		{code: "UNIT-003", name: "Litre", symbol: "Ltr",
			equivalent: decimal.NewFromInt(1), decimalLimit: -1, fractionalAware: true, smallerSymbol: "Ml"},
		{code: "UNIT-004", name: "Millilitre", symbol: "Ml",
			baseSymbol: "Ltr", equivalent: decimal.RequireFromString("0.001"), decimalLimit: 0},
		{code: "UNIT-005", name: "Numbers", symbol: "Nos",
			equivalent: decimal.NewFromInt(1), decimalLimit: 0},
		{code: "UNIT-006", name: "Dozen", symbol: "Dz",
			baseSymbol: "Nos", equivalent: decimal.NewFromInt(12), decimalLimit: 0},
	}

	unitIDs := make(map[string]id.ID)

	// First pass: insert rows without cross-references.
	for _, s := range seeds {
		uid, err := upsertUnit(ctx, pool, s, unitIDs)
		if err != nil {
			return nil, fmt.Errorf("seed unit %s: %w", s.symbol, err)
		}
		unitIDs[s.symbol] = uid
	}

	// Second pass: wire smaller-unit references now that all ids exist.
	for _, s := range seeds {
		if s.smallerSymbol == "" {
			continue
		}
		_, err := pool.Pool.Exec(ctx, `
			UPDATE cat_measurement_units SET smaller_unit_id = $1 WHERE id = $2
		`, unitIDs[s.smallerSymbol], unitIDs[s.symbol])
		if err != nil {
			return nil, fmt.Errorf("link smaller unit for %s: %w", s.symbol, err)
		}
	}

	log.Infow("measurement units seeded", "count", len(seeds))
	return unitIDs, nil
}

func upsertUnit(ctx context.Context, pool *postgres.Pool, s unitSeed, unitIDs map[string]id.ID) (id.ID, error) {
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM cat_measurement_units WHERE symbol = $1 AND NOT deletion_mark`,
		s.symbol,
	).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check unit exists: %w", err)
	}

	uid := id.New()
	isBase := s.baseSymbol == ""

	var baseUnitID *id.ID
	if !isBase {
		base, ok := unitIDs[s.baseSymbol]
		if !ok {
			return id.Nil(), fmt.Errorf("base unit %s not seeded yet", s.baseSymbol)
		}
		baseUnitID = &base
	}

	var localName *string
	if s.localName != "" {
		localName = &s.localName
	}

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO cat_measurement_units (
			id, code, name, symbol, local_name, is_base, base_unit_id,
			base_unit_equivalent, decimal_limit_for_qty, fractional_aware,
			version, deletion_mark, attributes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, false, '{}')
	`, uid, s.code, s.name, s.symbol, localName, isBase, baseUnitID,
		s.equivalent, s.decimalLimit, s.fractionalAware)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert unit: %w", err)
	}

	return uid, nil
}

func seedRawMaterials(ctx context.Context, pool *postgres.Pool, log *logger.Logger, unitIDs map[string]id.ID) error {
	log.Info("seeding demo raw materials...")

	materials := []struct {
		code         string
		name         string
		category     string
		unitSymbol   string
		purchaseRate string
		supplierRate bool
		adjustQty    bool
	}{
		{"RM-001", "Onion", "vegetable", "Kg", "32.50", false, true},
		{"RM-002", "Paneer", "dairy", "Kg", "410.00", false, true},
		{"RM-003", "Sunflower Oil", "grocery", "Ltr", "145.00", false, true},
		{"RM-004", "Basmati Rice", "grocery", "Kg", "96.00", false, true},
		{"RM-005", "Paper Plates", "other", "Nos", "2.10", true, false},
	}

	for _, m := range materials {
		unitID, ok := unitIDs[m.unitSymbol]
		if !ok {
			return fmt.Errorf("unit %s not seeded", m.unitSymbol)
		}

		rate, err := decimal.NewFromString(m.purchaseRate)
		if err != nil {
			return fmt.Errorf("parse rate for %s: %w", m.code, err)
		}

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_raw_materials (
				id, code, name, category, unit_id, purchase_rate,
				supplier_rate, adjust_quantity, version, deletion_mark, attributes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), m.code, m.name, m.category, unitID, rate, m.supplierRate, m.adjustQty)
		if err != nil {
			return fmt.Errorf("insert raw material %s: %w", m.code, err)
		}
	}

	log.Infow("raw materials seeded", "count", len(materials))
	return nil
}
