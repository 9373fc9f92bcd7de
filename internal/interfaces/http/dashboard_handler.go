package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	reports *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, reports *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, reports: reports}
}

// GetSummary devuelve conteos, productos en bajo stock, los 5 movimientos más recientes y la
// serie de stock por producto.
// GET /api/dashboard/summary
//
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetLocationDistribution stock por ubicación para el gráfico de torta.
// GET /api/dashboard/locations
//
// @Summary      Distribución por ubicación
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.LocationDistributionResponse
// @Router       /api/dashboard/locations [get]
func (h *DashboardHandler) GetLocationDistribution(c *fiber.Ctx) error {
	out, err := h.reports.LocationDistribution(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
