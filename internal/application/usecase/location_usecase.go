package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	txRunner ledger.TxRunner
	repo     repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(txRunner ledger.TxRunner, repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, repo: repo}
}

// Create crea una ubicación; domain.ErrConflict si el identificador ya existe.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	id, err := entity.NormalizeID("location_id", in.LocationID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		locationRepo repository.LocationRepository,
		_ repository.MovementRepository,
	) error {
		existing, err := locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ubicación %q", domain.ErrConflict, id)
		}
		return locationRepo.Create(ctx, &entity.Location{LocationID: id})
	})
	if err != nil {
		return nil, err
	}
	return &dto.LocationResponse{LocationID: id}, nil
}

// GetByID obtiene una ubicación; domain.ErrNotFound si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: ubicación %q", domain.ErrNotFound, id)
	}
	return &dto.LocationResponse{LocationID: l.LocationID}, nil
}

// Rename cambia el identificador en sitio (origen y destino de los movimientos lo siguen).
func (uc *LocationUseCase) Rename(ctx context.Context, id string, in dto.RenameLocationRequest) (*dto.LocationResponse, error) {
	newID, err := entity.NormalizeID("location_id", in.LocationID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		locationRepo repository.LocationRepository,
		_ repository.MovementRepository,
	) error {
		current, err := locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: ubicación %q", domain.ErrNotFound, id)
		}
		if newID == id {
			return nil
		}
		taken, err := locationRepo.GetByID(ctx, newID)
		if err != nil {
			return err
		}
		if taken != nil {
			return fmt.Errorf("%w: ubicación %q", domain.ErrConflict, newID)
		}
		return locationRepo.Rename(ctx, id, newID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.LocationResponse{LocationID: newID}, nil
}

// Delete elimina una ubicación que no sea origen ni destino de ningún movimiento.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		current, err := locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: ubicación %q", domain.ErrNotFound, id)
		}
		used, err := movRepo.ExistsByLocation(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: ubicación %q", domain.ErrReferentialIntegrity, id)
		}
		return locationRepo.Delete(ctx, id)
	})
}

// List lista todas las ubicaciones.
func (uc *LocationUseCase) List(ctx context.Context) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.LocationResponse{LocationID: l.LocationID})
	}
	return &dto.LocationListResponse{Items: items, Total: len(items)}, nil
}
