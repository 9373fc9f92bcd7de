package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/inventory"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// ReportUseCase reporte de saldos por producto+ubicación, distribución por ubicación
// y detalle de stock de un producto. Cada consulta lee de una sola foto del almacenamiento.
type ReportUseCase struct {
	snapshots ledger.SnapshotRunner
	threshold int
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. threshold <= 0 usa inventory.LowStockThreshold.
func NewReportUseCase(snapshots ledger.SnapshotRunner, threshold int) *ReportUseCase {
	if threshold <= 0 {
		threshold = inventory.LowStockThreshold
	}
	return &ReportUseCase{snapshots: snapshots, threshold: threshold, now: time.Now}
}

// BalanceReport devuelve los saldos distintos de cero, por producto y luego por ubicación.
func (uc *ReportUseCase) BalanceReport(ctx context.Context) (*dto.BalanceReportResponse, error) {
	var (
		products  []*entity.Product
		locations []*entity.Location
		movements []*entity.Movement
	)
	err := uc.snapshots.View(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		if products, err = productRepo.List(ctx); err != nil {
			return fmt.Errorf("reporte: productos: %w", err)
		}
		if locations, err = locationRepo.List(ctx); err != nil {
			return fmt.Errorf("reporte: ubicaciones: %w", err)
		}
		if movements, err = movRepo.List(ctx, repository.MovementListOptions{OrderBy: repository.OrderByID}); err != nil {
			return fmt.Errorf("reporte: movimientos: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	balances := inventory.Balances(productIDs(products), locationIDs(locations), movements)
	return &dto.BalanceReportResponse{
		Lines:       toBalanceLines(balances),
		GeneratedAt: uc.now(),
	}, nil
}

// LocationDistribution stock total por ubicación (todas, incluso en cero) con su participación.
func (uc *ReportUseCase) LocationDistribution(ctx context.Context) (*dto.LocationDistributionResponse, error) {
	var (
		locations []*entity.Location
		movements []*entity.Movement
	)
	err := uc.snapshots.View(ctx, func(
		_ repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		if locations, err = locationRepo.List(ctx); err != nil {
			return fmt.Errorf("distribución: ubicaciones: %w", err)
		}
		if movements, err = movRepo.List(ctx, repository.MovementListOptions{OrderBy: repository.OrderByID}); err != nil {
			return fmt.Errorf("distribución: movimientos: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	totals := inventory.LocationTotals(locationIDs(locations), movements)
	out := &dto.LocationDistributionResponse{
		LocationLabels: make([]string, 0, len(totals)),
		LocationData:   make([]int, 0, len(totals)),
		Locations:      make([]dto.LocationTotalDTO, 0, len(totals)),
	}
	for _, t := range totals {
		out.LocationLabels = append(out.LocationLabels, t.LocationID)
		out.LocationData = append(out.LocationData, t.Quantity)
		out.Locations = append(out.Locations, dto.LocationTotalDTO{
			LocationID: t.LocationID,
			Quantity:   t.Quantity,
			Share:      t.Share,
		})
	}
	return out, nil
}

// ProductStock stock total, indicador de bajo stock y saldos no nulos de un producto.
func (uc *ReportUseCase) ProductStock(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	var (
		locations []*entity.Location
		movements []*entity.Movement
	)
	err := uc.snapshots.View(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		p, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, productID)
		}
		if locations, err = locationRepo.List(ctx); err != nil {
			return err
		}
		movements, err = movRepo.ListByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	total := inventory.TotalStock(movements, productID)
	return &dto.ProductStockResponse{
		ProductID:  productID,
		TotalStock: total,
		LowStock:   inventory.IsLowStock(total, uc.threshold),
		Balances:   toBalanceLines(inventory.Balances([]string{productID}, locationIDs(locations), movements)),
	}, nil
}

func toBalanceLines(balances []inventory.Balance) []dto.BalanceLineDTO {
	out := make([]dto.BalanceLineDTO, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.BalanceLineDTO{
			ProductID:  b.ProductID,
			LocationID: b.LocationID,
			Quantity:   b.Quantity,
		})
	}
	return out
}
