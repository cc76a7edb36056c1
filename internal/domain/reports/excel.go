package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportRequirementXLSX renders the requirement report as an XLSX
// workbook and returns the file bytes.
func ExportRequirementXLSX(report *RequirementReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"raw_material_id",
		"raw_material_name",
		"category",
		"total_quantity",
		"row_count",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, item := range report.Items {
		excelRow := []interface{}{
			item.RawMaterialID.String(),
			item.RawMaterialName,
			item.Category,
			item.TotalQuantity,
			item.RowCount,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
