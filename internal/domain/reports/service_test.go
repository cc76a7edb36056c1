package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caterbase/internal/core/apperror"
	"caterbase/internal/core/id"
	"caterbase/internal/domain/measure"
)

var (
	kgID = id.MustParse("11111111-1111-1111-1111-111111111111")
	gmID = id.MustParse("22222222-2222-2222-2222-222222222222")

	onionID  = id.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	paneerID = id.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func timeMustParse(t *testing.T, s string) time.Time {
	tm, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return tm
}

type snapshotStub struct{}

func (snapshotStub) Snapshot(ctx context.Context) (*measure.Catalog, error) {
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
	}), nil
}

type repoStub struct {
	rows []RequirementRow
	err  error
}

func (r repoStub) GetRequirementRows(ctx context.Context, filter RequirementReportFilter) ([]RequirementRow, error) {
	return r.rows, r.err
}

func TestGetRequirementReport(t *testing.T) {
	repo := repoStub{rows: []RequirementRow{
		{RawMaterialID: onionID, RawMaterialName: "Onion", Category: "vegetable", Quantity: dec("2"), UnitID: kgID},
		{RawMaterialID: onionID, RawMaterialName: "Onion", Category: "vegetable", Quantity: dec("500"), UnitID: gmID},
		{RawMaterialID: paneerID, RawMaterialName: "Paneer", Category: "dairy", Quantity: dec("0.5"), UnitID: kgID},
	}}
	svc := NewService(repo, snapshotStub{})

	report, err := svc.GetRequirementReport(context.Background(), RequirementReportFilter{})
	require.NoError(t, err)
	require.Len(t, report.Items, 2)
	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, 0, report.SkippedItems)

	assert.Equal(t, "Onion", report.Items[0].RawMaterialName)
	assert.Equal(t, "2 Kg, 500 Gm", report.Items[0].TotalQuantity)
	assert.Equal(t, 2, report.Items[0].RowCount)

	// Small coarse total upgrades to the finer unit.
	assert.Equal(t, "Paneer", report.Items[1].RawMaterialName)
	assert.Equal(t, "500 Gm", report.Items[1].TotalQuantity)
}

func TestGetRequirementReport_BlankOnBadRow(t *testing.T) {
	unknownUnit := id.MustParse("99999999-9999-9999-9999-999999999999")
	repo := repoStub{rows: []RequirementRow{
		{RawMaterialID: onionID, RawMaterialName: "Onion", Category: "vegetable", Quantity: dec("2"), UnitID: unknownUnit},
		{RawMaterialID: paneerID, RawMaterialName: "Paneer", Category: "dairy", Quantity: dec("750"), UnitID: gmID},
	}}
	svc := NewService(repo, snapshotStub{})

	report, err := svc.GetRequirementReport(context.Background(), RequirementReportFilter{})
	require.NoError(t, err)
	require.Len(t, report.Items, 2)

	// The failed line renders blank; the report itself succeeds.
	assert.Equal(t, "", report.Items[0].TotalQuantity)
	assert.Equal(t, 1, report.SkippedItems)
	assert.Equal(t, "750 Gm", report.Items[1].TotalQuantity)
}

func TestGetRequirementReport_InvalidPeriod(t *testing.T) {
	svc := NewService(repoStub{}, snapshotStub{})

	from := timeMustParse(t, "2026-02-01")
	to := timeMustParse(t, "2026-01-01")
	_, err := svc.GetRequirementReport(context.Background(), RequirementReportFilter{
		FromDate: &from,
		ToDate:   &to,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestExportRequirementXLSX(t *testing.T) {
	report := &RequirementReport{
		Items: []RequirementReportItem{
			{RawMaterialID: onionID, RawMaterialName: "Onion", Category: "vegetable", TotalQuantity: "2 Kg, 500 Gm", RowCount: 2},
		},
		TotalItems: 1,
	}

	data, err := ExportRequirementXLSX(report)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
