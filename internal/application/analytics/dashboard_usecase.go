// Package analytics contiene los casos de uso de lectura: dashboard, reporte de saldos,
// distribución por ubicación y exportaciones. Todo se recalcula desde el libro en cada
// consulta; no hay caché.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/inventory"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos en el widget "recientes"

// DashboardUseCase genera el resumen del dashboard: conteos, bajo stock, movimientos
// recientes y la serie de stock por producto.
type DashboardUseCase struct {
	snapshots ledger.SnapshotRunner
	threshold int
}

// NewDashboardUseCase construye el caso de uso. threshold <= 0 usa inventory.LowStockThreshold.
func NewDashboardUseCase(snapshots ledger.SnapshotRunner, threshold int) *DashboardUseCase {
	if threshold <= 0 {
		threshold = inventory.LowStockThreshold
	}
	return &DashboardUseCase{snapshots: snapshots, threshold: threshold}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las tres lecturas (productos, conteo de ubicaciones y libro completo por movement_id)
// se hacen sobre la misma foto: un renombre confirmado entre ellas no puede dejar
// productos sin sus movimientos. Son secuenciales porque una transacción de pgx usa
// una sola conexión.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		products      []*entity.Product
		locationCount int
		movements     []*entity.Movement
	)
	err := uc.snapshots.View(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		if products, err = productRepo.List(ctx); err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		if locationCount, err = locationRepo.Count(ctx); err != nil {
			return fmt.Errorf("dashboard: ubicaciones: %w", err)
		}
		if movements, err = movRepo.List(ctx, repository.MovementListOptions{OrderBy: repository.OrderByID}); err != nil {
			return fmt.Errorf("dashboard: movimientos: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	labels := productIDs(products)
	stock := inventory.StockByProduct(movements)

	return &dto.DashboardSummaryDTO{
		ProductCount:      len(products),
		LocationCount:     locationCount,
		MovementCount:     len(movements),
		LowStockCount:     inventory.CountLowStock(labels, stock, uc.threshold),
		RecentMovements:   dto.ToMovementResponses(latest(movements, dashboardRecentMovements)),
		ProductLabels:     labels,
		StockLevels:       inventory.StockSeries(labels, stock),
		LowStockThreshold: uc.threshold,
	}, nil
}

// latest devuelve los n últimos de una lista ascendente por movement_id, del más nuevo al más viejo.
func latest(asc []*entity.Movement, n int) []*entity.Movement {
	out := make([]*entity.Movement, 0, n)
	for i := len(asc) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, asc[i])
	}
	return out
}

func productIDs(list []*entity.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ProductID)
	}
	return out
}

func locationIDs(list []*entity.Location) []string {
	out := make([]string, 0, len(list))
	for _, l := range list {
		out = append(out, l.LocationID)
	}
	return out
}
