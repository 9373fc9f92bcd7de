// Package xlsx exporta el reporte de saldos como libro de Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockmaster/internal/application/analytics"
	"github.com/jhoicas/stockmaster/internal/application/dto"
)

const (
	SheetBalances = "Saldos"
	SheetProducts = "Productos"
)

var _ analytics.BalanceReportSheetGenerator = (*ExcelizeGenerator)(nil)

// ExcelizeGenerator implementa analytics.BalanceReportSheetGenerator.
type ExcelizeGenerator struct{}

func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// GenerateBalanceReportXLSX arma dos hojas: "Saldos" (producto, ubicación, cantidad) y
// "Productos" (total por producto sobre las líneas del reporte).
func (g *ExcelizeGenerator) GenerateBalanceReportXLSX(ctx context.Context, report *dto.BalanceReportResponse) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBalances); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetProducts); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	rows := [][]any{{"Producto", "Ubicación", "Cantidad"}}
	totals := map[string]int{}
	var order []string
	for _, l := range report.Lines {
		rows = append(rows, []any{l.ProductID, l.LocationID, l.Quantity})
		if _, seen := totals[l.ProductID]; !seen {
			order = append(order, l.ProductID)
		}
		totals[l.ProductID] += l.Quantity
	}
	if err := writeTable(f, SheetBalances, rows, header); err != nil {
		return nil, err
	}

	productRows := [][]any{{"Producto", "Stock total"}}
	for _, p := range order {
		productRows = append(productRows, []any{p, totals[p]})
	}
	if err := writeTable(f, SheetProducts, productRows, header); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SheetProducts, "D1", "Generado"); err != nil {
		return nil, fmt.Errorf("xlsx: fecha de generación: %w", err)
	}
	if err := f.SetCellValue(SheetProducts, "E1", report.GeneratedAt.Format("2006-01-02 15:04:05")); err != nil {
		return nil, fmt.Errorf("xlsx: fecha de generación: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable escribe rows desde A1; la primera fila es el encabezado.
func writeTable(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("xlsx: ancho de columnas de %s: %w", sheet, err)
	}
	return nil
}
