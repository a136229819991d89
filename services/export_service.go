package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/helpsoluciones/crm-api/models"
)

// ExportQuotesXLSX builds a spreadsheet of the given quotes, one row per
// quote with a totals row at the bottom.
func ExportQuotesXLSX(quotes []models.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cotizaciones"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Consecutivo", "Fecha", "Cliente", "Ejecutivo", "Estado", "Subtotal", "IVA", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	var grandTotal float64
	for row, q := range quotes {
		values := []interface{}{q.Consecutivo, q.Fecha, q.ClienteNombre, q.Ejecutivo, q.Estado, q.Subtotal, q.IVA, q.Total}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
		grandTotal += q.Total
	}

	totalLabelCell, _ := excelize.CoordinatesToCellName(7, len(quotes)+2)
	totalValueCell, _ := excelize.CoordinatesToCellName(8, len(quotes)+2)
	f.SetCellValue(sheet, totalLabelCell, "TOTAL")
	f.SetCellValue(sheet, totalValueCell, grandTotal)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
