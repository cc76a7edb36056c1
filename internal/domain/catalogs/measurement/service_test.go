package measurement

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/core/tenant"
	"caterbase/internal/domain"
	"caterbase/pkg/numerator"
)

// memRepo satisfies Repository for service tests.
type memRepo struct {
	rows       map[id.ID]*Measurement
	referenced map[id.ID]bool
}

func newMemRepo(rows ...*Measurement) *memRepo {
	r := &memRepo{
		rows:       make(map[id.ID]*Measurement),
		referenced: make(map[id.ID]bool),
	}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, m *Measurement) error {
	r.rows[m.ID] = m
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, entityID id.ID) (*Measurement, error) {
	row, ok := r.rows[entityID]
	if !ok {
		return nil, apperror.NewNotFound("measurement unit", entityID.String())
	}
	return row, nil
}

func (r *memRepo) GetByCode(ctx context.Context, code string) (*Measurement, error) {
	for _, row := range r.rows {
		if row.Code == code {
			return row, nil
		}
	}
	return nil, apperror.NewNotFound("measurement unit", code)
}

func (r *memRepo) Update(ctx context.Context, m *Measurement) error {
	r.rows[m.ID] = m
	return nil
}

func (r *memRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	row, ok := r.rows[entityID]
	if !ok {
		return apperror.NewNotFound("measurement unit", entityID.String())
	}
	row.DeletionMark = marked
	return nil
}

func (r *memRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Measurement], error) {
	var items []*Measurement
	for _, row := range r.rows {
		items = append(items, row)
	}
	return domain.ListResult[*Measurement]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := r.rows[entityID]
	return ok, nil
}

func (r *memRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func (r *memRepo) FindBySymbol(ctx context.Context, symbol string) (*Measurement, error) {
	for _, row := range r.rows {
		if row.Symbol == symbol && !row.DeletionMark {
			return row, nil
		}
	}
	return nil, apperror.NewNotFound("measurement unit", symbol)
}

func (r *memRepo) ListActive(ctx context.Context) ([]*Measurement, error) {
	var items []*Measurement
	for _, row := range r.rows {
		if !row.DeletionMark {
			items = append(items, row)
		}
	}
	return items, nil
}

func (r *memRepo) IsReferenced(ctx context.Context, unitID id.ID) (bool, error) {
	return r.referenced[unitID], nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testCtx() context.Context {
	return tenant.WithTxManager(context.Background(), passthroughTx{})
}

func newTestService(repo *memRepo) *Service {
	return NewService(repo, numerator.New(nil))
}

func TestCreate_BaseUnit(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	m := NewMeasurement("UNIT-001", "Kilogram", "Kg")
	require.NoError(t, svc.Create(testCtx(), m))

	stored, err := repo.FindBySymbol(testCtx(), "Kg")
	require.NoError(t, err)
	assert.True(t, stored.IsBase)
	assert.Equal(t, AutoDecimalLimit, stored.DecimalLimitForQty)
}

func TestCreate_DuplicateSymbol(t *testing.T) {
	existing := NewMeasurement("UNIT-001", "Kilogram", "Kg")
	repo := newMemRepo(existing)
	svc := newTestService(repo)

	dup := NewMeasurement("UNIT-002", "Kilo", "Kg")
	err := svc.Create(testCtx(), dup)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
}

func TestCreate_DerivedUnit(t *testing.T) {
	kg := NewMeasurement("UNIT-001", "Kilogram", "Kg")
	repo := newMemRepo(kg)
	svc := newTestService(repo)

	gm := NewDerivedMeasurement("UNIT-002", "Gram", "Gm", kg.ID, decimal.RequireFromString("0.001"))
	require.NoError(t, svc.Create(testCtx(), gm))
}

func TestCreate_DerivedUnit_UnknownBase(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	gm := NewDerivedMeasurement("UNIT-002", "Gram", "Gm", id.New(), decimal.RequireFromString("0.001"))
	err := svc.Create(testCtx(), gm)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUnknownMeasurement))
}

func TestCreate_DerivedUnit_BaseMustBeBase(t *testing.T) {
	kg := NewMeasurement("UNIT-001", "Kilogram", "Kg")
	gm := NewDerivedMeasurement("UNIT-002", "Gram", "Gm", kg.ID, decimal.RequireFromString("0.001"))
	repo := newMemRepo(kg, gm)
	svc := newTestService(repo)

	// The unit graph stays flat: deriving from a derived unit is rejected.
	mg := NewDerivedMeasurement("UNIT-003", "Milligram", "Mg", gm.ID, decimal.RequireFromString("0.001"))
	err := svc.Create(testCtx(), mg)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestDelete_ReferencedUnitRefused(t *testing.T) {
	kg := NewMeasurement("UNIT-001", "Kilogram", "Kg")
	repo := newMemRepo(kg)
	repo.referenced[kg.ID] = true
	svc := newTestService(repo)

	err := svc.Delete(testCtx(), kg.ID)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
	assert.False(t, kg.DeletionMark)
}

func TestSnapshot(t *testing.T) {
	kg := NewMeasurement("UNIT-001", "Kilogram", "Kg")
	kg.FractionalAware = true
	gm := NewDerivedMeasurement("UNIT-002", "Gram", "Gm", kg.ID, decimal.RequireFromString("0.001"))
	gone := NewMeasurement("UNIT-003", "Old", "Old")
	gone.DeletionMark = true

	repo := newMemRepo(kg, gm, gone)
	svc := newTestService(repo)

	cat, err := svc.Snapshot(testCtx())
	require.NoError(t, err)

	unit, err := cat.Unit(kg.ID)
	require.NoError(t, err)
	assert.True(t, unit.FractionalAware)

	_, err = cat.Unit(gone.ID)
	require.Error(t, err)
}
