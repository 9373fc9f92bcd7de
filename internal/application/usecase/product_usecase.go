package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock nunca se guarda en el
// producto: se deriva de los movimientos.
type ProductUseCase struct {
	txRunner ledger.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ledger.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto; domain.ErrConflict si el identificador ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	id, err := entity.NormalizeID("product_id", in.ProductID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LocationRepository,
		_ repository.MovementRepository,
	) error {
		existing, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: producto %q", domain.ErrConflict, id)
		}
		return productRepo.Create(ctx, &entity.Product{ProductID: id})
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{ProductID: id}, nil
}

// GetByID obtiene un producto; domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %q", domain.ErrNotFound, id)
	}
	return &dto.ProductResponse{ProductID: p.ProductID}, nil
}

// Rename cambia el identificador en sitio. Los movimientos que referenciaban el
// identificador anterior pasan a resolver al nuevo; los saldos no cambian.
func (uc *ProductUseCase) Rename(ctx context.Context, id string, in dto.RenameProductRequest) (*dto.ProductResponse, error) {
	newID, err := entity.NormalizeID("product_id", in.ProductID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LocationRepository,
		_ repository.MovementRepository,
	) error {
		current, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, id)
		}
		if newID == id {
			return nil
		}
		taken, err := productRepo.GetByID(ctx, newID)
		if err != nil {
			return err
		}
		if taken != nil {
			return fmt.Errorf("%w: producto %q", domain.ErrConflict, newID)
		}
		return productRepo.Rename(ctx, id, newID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{ProductID: newID}, nil
}

// Delete elimina un producto sin movimientos; domain.ErrReferentialIntegrity si alguno lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		current, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, id)
		}
		used, err := movRepo.ExistsByProduct(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: producto %q", domain.ErrReferentialIntegrity, id)
		}
		return productRepo.Delete(ctx, id)
	})
}

// List lista todos los productos en el orden del repositorio.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	return uc.Search(ctx, "")
}

// Search filtra productos cuyo identificador contiene query, sin distinguir mayúsculas.
// query vacío equivale a List.
func (uc *ProductUseCase) Search(ctx context.Context, query string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	// Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	needle := fold.String(query)

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if query != "" && !strings.Contains(fold.String(p.ProductID), needle) {
			continue
		}
		items = append(items, dto.ProductResponse{ProductID: p.ProductID})
	}
	return &dto.ProductListResponse{Items: items, Total: len(items), Query: query}, nil
}
