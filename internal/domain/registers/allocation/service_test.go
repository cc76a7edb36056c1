package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/core/tenant"
	"caterbase/internal/domain/measure"
)

var (
	kgID = id.MustParse("11111111-1111-1111-1111-111111111111")
	gmID = id.MustParse("22222222-2222-2222-2222-222222222222")

	orderID    = id.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	functionID = id.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	menuItemID = id.MustParse("aaaaaaaa-0000-0000-0000-000000000003")
	onionID    = id.MustParse("aaaaaaaa-0000-0000-0000-000000000004")
	paneerID   = id.MustParse("aaaaaaaa-0000-0000-0000-000000000005")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testUnits() *measure.Catalog {
	return measure.NewCatalog([]measure.Unit{
		{
			ID: kgID, Name: "Kilogram", Symbol: "Kg",
			BaseUnitID: gmID, BaseUnitEquivalent: dec("1000"),
			DecimalLimit: -1, FractionalAware: true, SmallerUnitID: gmID,
		},
		{
			ID: gmID, Name: "Gram", Symbol: "Gm",
			IsBase: true, BaseUnitEquivalent: dec("1"),
			DecimalLimit: -1, FractionalAware: true,
		},
	})
}

type snapshotStub struct {
	cat *measure.Catalog
}

func (s snapshotStub) Snapshot(ctx context.Context) (*measure.Catalog, error) {
	return s.cat, nil
}

// passthroughTx satisfies tx.Manager without a database.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	rows map[Key]*Allocation
}

func newMemRepo(rows ...*Allocation) *memRepo {
	r := &memRepo{rows: make(map[Key]*Allocation)}
	for _, row := range rows {
		r.rows[row.Key()] = row
	}
	return r
}

func (r *memRepo) Upsert(ctx context.Context, a *Allocation) error {
	r.rows[a.Key()] = a
	return nil
}

func (r *memRepo) Get(ctx context.Context, key Key) (*Allocation, error) {
	row, ok := r.rows[key]
	if !ok {
		return nil, apperror.NewAllocationNotFound(key)
	}
	cp := *row
	return &cp, nil
}

func (r *memRepo) FindByOrderID(ctx context.Context, orderID id.ID) ([]*Allocation, error) {
	var out []*Allocation
	for _, row := range r.rows {
		if row.OrderID == orderID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memRepo) FindByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) ([]*Allocation, error) {
	var out []*Allocation
	for _, row := range r.rows {
		if row.MenuPreparationMenuItemID == menuPrepMenuItemID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memRepo) FindByMenuItemRawMaterial(ctx context.Context, orderID, menuPrepMenuItemID, rawMaterialID id.ID) (*Allocation, error) {
	for _, row := range r.rows {
		if row.OrderID == orderID &&
			row.MenuPreparationMenuItemID == menuPrepMenuItemID &&
			row.RawMaterialID == rawMaterialID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, apperror.NewAllocationNotFound(rawMaterialID.String())
}

func (r *memRepo) ExistsByGodownID(ctx context.Context, godownID id.ID) (bool, error) {
	for _, row := range r.rows {
		if row.GodownID != nil && *row.GodownID == godownID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) DeleteByMenuPreparationMenuItemID(ctx context.Context, menuPrepMenuItemID id.ID) error {
	for key, row := range r.rows {
		if row.MenuPreparationMenuItemID == menuPrepMenuItemID {
			delete(r.rows, key)
		}
	}
	return nil
}

func testCtx() context.Context {
	return tenant.WithTxManager(context.Background(), passthroughTx{})
}

func seedRow(rawMaterialID id.ID) *Allocation {
	return NewAllocation(Key{
		OrderID:                   orderID,
		OrderFunctionID:           functionID,
		MenuPreparationMenuItemID: menuItemID,
		RawMaterialID:             rawMaterialID,
	}, dec("1"), kgID)
}

func TestUpdate_SplitsAndPersists(t *testing.T) {
	repo := newMemRepo(seedRow(onionID))
	svc := NewService(repo, snapshotStub{testUnits()})

	results, err := svc.Update(testCtx(), orderID, []Change{
		{
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             onionID,
			Quantity:                  dec("2.0005"),
			UnitID:                    kgID,
			AdjustQuantity:            true,
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	parsed, err := measure.ParseAdjustedExtra(results[0].AdjustedExtra)
	require.NoError(t, err)
	assert.True(t, parsed.AdjustedQuantity.Equal(dec("2000")))
	assert.Equal(t, gmID, parsed.AdjustedUnitID)
	assert.True(t, parsed.ExtraQuantity.Equal(dec("0.5")))

	row, err := repo.Get(testCtx(), results[0].Key)
	require.NoError(t, err)
	assert.True(t, row.ActualQuantity.Equal(dec("2000")))
	assert.Equal(t, gmID, row.ActualUnitID)
	assert.Equal(t, 2, row.Version)
}

func TestUpdate_CollectsPerRecordErrors(t *testing.T) {
	repo := newMemRepo(seedRow(onionID), seedRow(paneerID))
	svc := NewService(repo, snapshotStub{testUnits()})

	unknownUnit := id.MustParse("99999999-9999-9999-9999-999999999999")
	results, err := svc.Update(testCtx(), orderID, []Change{
		{
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             onionID,
			Quantity:                  dec("2"),
			UnitID:                    unknownUnit,
			AdjustQuantity:            true,
		},
		{
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             paneerID,
			Quantity:                  dec("500"),
			UnitID:                    gmID,
		},
	})

	// The bad record is reported, the good one still persists.
	require.Error(t, err)
	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Len(t, batchErr.Errors(), 1)
	require.Len(t, results, 1)
	assert.Equal(t, paneerID, results[0].Key.RawMaterialID)

	row, getErr := repo.Get(testCtx(), results[0].Key)
	require.NoError(t, getErr)
	assert.True(t, row.ActualQuantity.Equal(dec("500")))
}

func TestUpdate_MissingRow(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, snapshotStub{testUnits()})

	results, err := svc.Update(testCtx(), orderID, []Change{
		{
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             onionID,
			Quantity:                  dec("1"),
			UnitID:                    kgID,
		},
	})
	require.Error(t, err)
	assert.Empty(t, results)
	assert.True(t, apperror.HasCode(err, apperror.CodeAllocationNotFound))
}

type failingSnapshot struct{}

func (failingSnapshot) Snapshot(ctx context.Context) (*measure.Catalog, error) {
	return nil, apperror.NewInternal(errors.New("unit catalog unavailable"))
}

func TestUpdate_SnapshotFailureIsNotBatchError(t *testing.T) {
	svc := NewService(newMemRepo(seedRow(onionID)), failingSnapshot{})

	results, err := svc.Update(testCtx(), orderID, []Change{
		{
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             onionID,
			Quantity:                  dec("1"),
			UnitID:                    kgID,
		},
	})
	require.Error(t, err)
	assert.Empty(t, results)

	// No record was attempted, so the whole batch fails plainly.
	var batchErr *BatchError
	assert.False(t, errors.As(err, &batchErr))
	assert.True(t, apperror.HasCode(err, apperror.CodeInternal))
}

func TestSyncRawMaterial(t *testing.T) {
	row := seedRow(onionID)
	row.ActualUnitID = gmID
	row.ActualQuantity = dec("900")
	repo := newMemRepo(row)
	svc := NewService(repo, snapshotStub{testUnits()})

	err := svc.SyncRawMaterial(testCtx(), SyncInput{
		OrderID:                   orderID,
		MenuPreparationMenuItemID: menuItemID,
		RawMaterialID:             onionID,
		ActualQuantity:            dec("1.5"),
		ActualMeasurementID:       kgID,
	})
	require.NoError(t, err)

	updated, err := repo.Get(testCtx(), row.Key())
	require.NoError(t, err)
	assert.True(t, updated.PlannedQuantity.Equal(dec("1.5")))
	assert.Equal(t, kgID, updated.PlannedUnitID)
	assert.True(t, updated.ActualQuantity.Equal(dec("1500")), "got %s", updated.ActualQuantity)
	assert.Equal(t, gmID, updated.ActualUnitID)
}

func TestAgencyAllocation_SumsConvertedQuantities(t *testing.T) {
	row := seedRow(onionID)
	row.ActualUnitID = gmID
	repo := newMemRepo(row)
	svc := NewService(repo, snapshotStub{testUnits()})

	agencyA := id.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	agencyB := id.MustParse("bbbbbbbb-0000-0000-0000-000000000002")

	err := svc.AgencyAllocation(testCtx(), orderID, []AgencyLine{
		{
			AgencyID:                  agencyA,
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             onionID,
			Quantity:                  dec("0.5"),
			UnitID:                    kgID,
		},
		{
			AgencyID:                  agencyB,
			OrderFunctionID:           functionID,
			MenuPreparationMenuItemID: menuItemID,
			RawMaterialID:             onionID,
			Quantity:                  dec("300"),
			UnitID:                    gmID,
		},
	})
	require.NoError(t, err)

	updated, err := repo.Get(testCtx(), row.Key())
	require.NoError(t, err)
	assert.True(t, updated.ActualQuantity.Equal(dec("800")), "got %s", updated.ActualQuantity)
	assert.Equal(t, gmID, updated.ActualUnitID)
}

func TestExistsByGodownID(t *testing.T) {
	godown := id.MustParse("cccccccc-0000-0000-0000-000000000001")
	row := seedRow(onionID)
	row.GodownID = &godown
	repo := newMemRepo(row)
	svc := NewService(repo, snapshotStub{testUnits()})

	exists, err := svc.ExistsByGodownID(testCtx(), godown)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.ExistsByGodownID(testCtx(), id.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
