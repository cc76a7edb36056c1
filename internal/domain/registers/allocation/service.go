package allocation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/core/tenant"
	"caterbase/internal/domain/audit"
	"caterbase/internal/domain/measure"
	"caterbase/pkg/logger"
)

// SnapshotProvider supplies the immutable unit catalog snapshot the
// conversion engine runs against. Implemented by the measurement service.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*measure.Catalog, error)
}

// Service provides business operations for the allocation ledger.
// Batch operations treat every record as an independent unit of work:
// one failing record is collected and reported, the rest proceed.
type Service struct {
	repo  Repository
	units SnapshotProvider
}

// NewService creates a new allocation ledger service.
func NewService(repo Repository, units SnapshotProvider) *Service {
	return &Service{
		repo:  repo,
		units: units,
	}
}

// BatchError aggregates per-record failures of a batch operation.
// Operation-level failures (catalog snapshot, missing transaction
// manager) are returned as plain errors instead.
type BatchError struct {
	err error
}

func (e *BatchError) Error() string { return e.err.Error() }

func (e *BatchError) Unwrap() error { return e.err }

// Errors returns the individual record failures.
func (e *BatchError) Errors() []error { return multierr.Errors(e.err) }

func asBatchError(errs error) error {
	if errs == nil {
		return nil
	}
	return &BatchError{err: errs}
}

// Update applies a batch of allocation edits for one order.
// Each change runs in its own transaction; per-record failures are
// aggregated into the returned error while successful records persist.
func (s *Service) Update(ctx context.Context, orderID id.ID, changes []Change) ([]ChangeResult, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	snapshot, err := s.units.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var (
		results []ChangeResult
		errs    error
	)
	for i, ch := range changes {
		result, err := s.applyChange(ctx, txm.RunInTransaction, snapshot, orderID, ch)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("allocation %d (raw material %s): %w", i, ch.RawMaterialID, err))
			continue
		}
		results = append(results, result)
	}

	logger.Info(ctx, "updated allocations",
		"order_id", orderID,
		"applied", len(results),
		"failed", len(changes)-len(results),
	)

	return results, asBatchError(errs)
}

type runInTx func(ctx context.Context, fn func(ctx context.Context) error) error

func (s *Service) applyChange(ctx context.Context, run runInTx, snapshot *measure.Catalog, orderID id.ID, ch Change) (ChangeResult, error) {
	split, err := snapshot.SplitAdjusted(ch.Quantity, ch.UnitID, ch.AdjustQuantity, ch.SupplierRate)
	if err != nil {
		return ChangeResult{}, err
	}

	key := Key{
		OrderID:                   orderID,
		OrderFunctionID:           ch.OrderFunctionID,
		MenuPreparationMenuItemID: ch.MenuPreparationMenuItemID,
		RawMaterialID:             ch.RawMaterialID,
	}

	err = run(ctx, func(ctx context.Context) error {
		row, err := s.repo.Get(ctx, key)
		if err != nil {
			return err
		}

		row.ActualQuantity = split.AdjustedQuantity
		row.ActualUnitID = split.AdjustedUnitID
		if ch.GodownID != nil {
			row.GodownID = ch.GodownID
		}
		row.Touch()
		audit.EnrichUpdatedBy(ctx, &row.UpdatedBy)

		return s.repo.Upsert(ctx, row)
	})
	if err != nil {
		return ChangeResult{}, err
	}

	return ChangeResult{
		Key:           key,
		AdjustedExtra: split.Encode(),
	}, nil
}

// SyncRawMaterial re-derives one ledger row from the current recipe
// definition, converting the recipe quantity into the row's current
// unit so already-allocated records stay self-consistent.
func (s *Service) SyncRawMaterial(ctx context.Context, in SyncInput) error {
	snapshot, err := s.units.Snapshot(ctx)
	if err != nil {
		return err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		row, err := s.repo.FindByMenuItemRawMaterial(ctx, in.OrderID, in.MenuPreparationMenuItemID, in.RawMaterialID)
		if err != nil {
			return err
		}

		qty := in.ActualQuantity
		if in.ActualMeasurementID != row.ActualUnitID {
			qty, err = snapshot.Convert(in.ActualQuantity, in.ActualMeasurementID, row.ActualUnitID)
			if err != nil {
				return err
			}
		}

		row.PlannedQuantity = in.ActualQuantity
		row.PlannedUnitID = in.ActualMeasurementID
		row.ActualQuantity = qty
		row.RawMaterialCategoryID = in.RawMaterialCategoryID
		row.OrderTime = in.OrderTime
		row.Touch()
		audit.EnrichUpdatedBy(ctx, &row.UpdatedBy)

		return s.repo.Upsert(ctx, row)
	})
}

// AgencyAllocation distributes allocated quantities across agency
// lines. Each line's quantity is converted into the ledger row's unit
// before summing so per-agency totals stay comparable. Line failures
// are collected; the remaining lines proceed.
func (s *Service) AgencyAllocation(ctx context.Context, orderID id.ID, lines []AgencyLine) error {
	if len(lines) == 0 {
		return nil
	}

	snapshot, err := s.units.Snapshot(ctx)
	if err != nil {
		return err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	// Sum converted quantities per ledger row first, then persist each
	// row in its own transaction.
	totals := make(map[Key]*Allocation)
	var errs error
	for i, line := range lines {
		key := Key{
			OrderID:                   orderID,
			OrderFunctionID:           line.OrderFunctionID,
			MenuPreparationMenuItemID: line.MenuPreparationMenuItemID,
			RawMaterialID:             line.RawMaterialID,
		}

		row, ok := totals[key]
		if !ok {
			loaded, err := s.repo.Get(ctx, key)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("agency line %d (agency %s): %w", i, line.AgencyID, err))
				continue
			}
			loaded.ActualQuantity = decimal.Zero // totals replace the previous allocation
			totals[key] = loaded
			row = loaded
		}

		qty, err := snapshot.Convert(line.Quantity, line.UnitID, row.ActualUnitID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("agency line %d (agency %s): %w", i, line.AgencyID, err))
			continue
		}
		row.ActualQuantity = row.ActualQuantity.Add(qty)
	}

	for key, row := range totals {
		row.Touch()
		audit.EnrichUpdatedBy(ctx, &row.UpdatedBy)
		err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
			return s.repo.Upsert(ctx, row)
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("persist allocation for raw material %s: %w", key.RawMaterialID, err))
		}
	}

	logger.Info(ctx, "applied agency allocation",
		"order_id", orderID,
		"lines", len(lines),
		"rows", len(totals),
	)

	return asBatchError(errs)
}

// FindByMenuPreparationMenuItemID returns ledger rows for one menu item line.
func (s *Service) FindByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) ([]*Allocation, error) {
	return s.repo.FindByMenuPreparationMenuItemID(ctx, menuPrepMenuItemID)
}

// FindByOrderID returns all ledger rows of an order.
func (s *Service) FindByOrderID(ctx context.Context, orderID id.ID) ([]*Allocation, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

// ExistsByGodownID reports whether any allocation draws from the godown.
func (s *Service) ExistsByGodownID(ctx context.Context, godownID id.ID) (bool, error) {
	return s.repo.ExistsByGodownID(ctx, godownID)
}
