package repository

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Rename cambia el identificador en sitio; los movimientos que lo referencian siguen resolviendo.
	Rename(ctx context.Context, oldID, newID string) error
	List(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
