package analytics

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/application/dto"
)

// BalanceReportPDFGenerator puerto para renderizar el reporte de saldos en PDF.
type BalanceReportPDFGenerator interface {
	GenerateBalanceReportPDF(ctx context.Context, report *dto.BalanceReportResponse) ([]byte, error)
}

// BalanceReportSheetGenerator puerto para renderizar el reporte de saldos como hoja de cálculo.
type BalanceReportSheetGenerator interface {
	GenerateBalanceReportXLSX(ctx context.Context, report *dto.BalanceReportResponse) ([]byte, error)
}

// ExportUseCase exporta el reporte de saldos en formatos descargables.
type ExportUseCase struct {
	reports *ReportUseCase
	pdf     BalanceReportPDFGenerator
	sheet   BalanceReportSheetGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(reports *ReportUseCase, pdf BalanceReportPDFGenerator, sheet BalanceReportSheetGenerator) *ExportUseCase {
	return &ExportUseCase{reports: reports, pdf: pdf, sheet: sheet}
}

// BalanceReportPDF calcula el reporte y lo devuelve como PDF.
func (uc *ExportUseCase) BalanceReportPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.reports.BalanceReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateBalanceReportPDF(ctx, report)
}

// BalanceReportXLSX calcula el reporte y lo devuelve como libro .xlsx.
func (uc *ExportUseCase) BalanceReportXLSX(ctx context.Context) ([]byte, error) {
	report, err := uc.reports.BalanceReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.sheet.GenerateBalanceReportXLSX(ctx, report)
}
