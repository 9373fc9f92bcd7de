package repository

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
// GetByID devuelve (nil, nil) si la ubicación no existe.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Rename(ctx context.Context, oldID, newID string) error
	List(ctx context.Context) ([]*entity.Location, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
