package rawmaterial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/core/tenant"
	"caterbase/internal/domain"
	"caterbase/internal/domain/catalogs/measurement"
	"caterbase/pkg/numerator"
)

type memRepo struct {
	rows      map[id.ID]*RawMaterial
	allocated map[id.ID]bool
}

func newMemRepo(rows ...*RawMaterial) *memRepo {
	r := &memRepo{
		rows:      make(map[id.ID]*RawMaterial),
		allocated: make(map[id.ID]bool),
	}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, m *RawMaterial) error {
	r.rows[m.ID] = m
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, entityID id.ID) (*RawMaterial, error) {
	row, ok := r.rows[entityID]
	if !ok {
		return nil, apperror.NewNotFound("raw material", entityID.String())
	}
	return row, nil
}

func (r *memRepo) GetByCode(ctx context.Context, code string) (*RawMaterial, error) {
	for _, row := range r.rows {
		if row.Code == code {
			return row, nil
		}
	}
	return nil, apperror.NewNotFound("raw material", code)
}

func (r *memRepo) Update(ctx context.Context, m *RawMaterial) error {
	r.rows[m.ID] = m
	return nil
}

func (r *memRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	row, ok := r.rows[entityID]
	if !ok {
		return apperror.NewNotFound("raw material", entityID.String())
	}
	row.DeletionMark = marked
	return nil
}

func (r *memRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*RawMaterial], error) {
	var items []*RawMaterial
	for _, row := range r.rows {
		items = append(items, row)
	}
	return domain.ListResult[*RawMaterial]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := r.rows[entityID]
	return ok, nil
}

func (r *memRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func (r *memRepo) ListByCategory(ctx context.Context, category Category) ([]*RawMaterial, error) {
	var items []*RawMaterial
	for _, row := range r.rows {
		if row.Category == category && !row.DeletionMark {
			items = append(items, row)
		}
	}
	return items, nil
}

func (r *memRepo) IsAllocated(ctx context.Context, materialID id.ID) (bool, error) {
	return r.allocated[materialID], nil
}

// unitStub satisfies measurement.Repository with a fixed set of units.
type unitStub struct {
	measurement.Repository
	units map[id.ID]*measurement.Measurement
}

func (s unitStub) GetByID(ctx context.Context, entityID id.ID) (*measurement.Measurement, error) {
	unit, ok := s.units[entityID]
	if !ok {
		return nil, apperror.NewNotFound("measurement unit", entityID.String())
	}
	return unit, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testCtx() context.Context {
	return tenant.WithTxManager(context.Background(), passthroughTx{})
}

func newTestService(repo *memRepo, kg *measurement.Measurement) *Service {
	units := unitStub{units: map[id.ID]*measurement.Measurement{kg.ID: kg}}
	return NewService(repo, units, numerator.New(nil))
}

func TestCreate(t *testing.T) {
	kg := measurement.NewMeasurement("UNIT-001", "Kilogram", "Kg")
	repo := newMemRepo()
	svc := newTestService(repo, kg)

	m := NewRawMaterial("RM-001", "Onion", CategoryVegetable, kg.ID)
	require.NoError(t, svc.Create(testCtx(), m))

	stored, err := repo.GetByCode(testCtx(), "RM-001")
	require.NoError(t, err)
	assert.True(t, stored.AdjustQuantity)
}

func TestCreate_UnknownUnit(t *testing.T) {
	kg := measurement.NewMeasurement("UNIT-001", "Kilogram", "Kg")
	repo := newMemRepo()
	svc := newTestService(repo, kg)

	m := NewRawMaterial("RM-001", "Onion", CategoryVegetable, id.New())
	err := svc.Create(testCtx(), m)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeUnknownMeasurement))
}

func TestCreate_InvalidCategory(t *testing.T) {
	kg := measurement.NewMeasurement("UNIT-001", "Kilogram", "Kg")
	repo := newMemRepo()
	svc := newTestService(repo, kg)

	m := NewRawMaterial("RM-001", "Onion", Category("furniture"), kg.ID)
	err := svc.Create(testCtx(), m)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestDelete_AllocatedMaterialRefused(t *testing.T) {
	kg := measurement.NewMeasurement("UNIT-001", "Kilogram", "Kg")
	m := NewRawMaterial("RM-001", "Onion", CategoryVegetable, kg.ID)
	repo := newMemRepo(m)
	repo.allocated[m.ID] = true
	svc := newTestService(repo, kg)

	err := svc.Delete(testCtx(), m.ID)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
	assert.False(t, m.DeletionMark)
}

func TestListByCategory_InvalidCategory(t *testing.T) {
	kg := measurement.NewMeasurement("UNIT-001", "Kilogram", "Kg")
	svc := newTestService(newMemRepo(), kg)

	_, err := svc.ListByCategory(testCtx(), Category("furniture"))
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}
