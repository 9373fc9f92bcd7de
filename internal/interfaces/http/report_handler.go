package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster/internal/application/analytics"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reporte de saldos en JSON, PDF y XLSX.
type ReportHandler struct {
	reports *analytics.ReportUseCase
	export  *analytics.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *analytics.ReportUseCase, export *analytics.ExportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, export: export}
}

// Balance godoc
// @Summary      Reporte de saldos
// @Description  Saldo por producto y ubicación; omite los saldos en cero.
// @Tags         report
// @Produce      json
// @Success      200  {object}  dto.BalanceReportResponse
// @Router       /api/report/balance [get]
func (h *ReportHandler) Balance(c *fiber.Ctx) error {
	out, err := h.reports.BalanceReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BalancePDF godoc
// @Summary      Reporte de saldos (PDF)
// @Tags         report
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/report/balance.pdf [get]
func (h *ReportHandler) BalancePDF(c *fiber.Ctx) error {
	b, err := h.export.BalanceReportPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balance_report.pdf"`)
	return c.Send(b)
}

// BalanceXLSX godoc
// @Summary      Reporte de saldos (Excel)
// @Tags         report
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/report/balance.xlsx [get]
func (h *ReportHandler) BalanceXLSX(c *fiber.Ctx) error {
	b, err := h.export.BalanceReportXLSX(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="balance_report.xlsx"`)
	return c.Send(b)
}
