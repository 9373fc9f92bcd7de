package repository

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
)

// Criterios de orden para listar movimientos.
const (
	OrderByTimestamp = "timestamp"
	OrderByID        = "id"
)

// Rol de una ubicación dentro de un movimiento.
const (
	RoleSource      = "source"
	RoleDestination = "destination"
	RoleEither      = "either"
)

// MovementListOptions orden y límite para List. Limit <= 0 = sin límite.
// Los empates se resuelven por movement_id en la misma dirección.
type MovementListOptions struct {
	OrderBy    string
	Descending bool
	Limit      int
}

// Validate verifica OrderBy.
func (o MovementListOptions) Validate() error {
	switch o.OrderBy {
	case OrderByTimestamp, OrderByID:
		return nil
	}
	return fmt.Errorf("%w: order_by debe ser %q o %q", domain.ErrValidation, OrderByTimestamp, OrderByID)
}

// ValidateRole verifica que role sea source, destination o either.
func ValidateRole(role string) error {
	switch role {
	case RoleSource, RoleDestination, RoleEither:
		return nil
	}
	return fmt.Errorf("%w: role debe ser source, destination o either", domain.ErrValidation)
}

// MovementRepository define el puerto del libro de movimientos (ledger).
// Es el único dueño de los registros Movement.
type MovementRepository interface {
	// Create asigna MovementID (creciente) y persiste el movimiento.
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si el movimiento no existe.
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// Update reemplaza los campos de un movimiento existente; domain.ErrNotFound si no existe.
	Update(ctx context.Context, movement *entity.Movement) error
	// Delete elimina el movimiento; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, opts MovementListOptions) ([]*entity.Movement, error)
	// ListByProduct y ListByLocation devuelven en orden de movement_id ascendente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	ListByLocation(ctx context.Context, locationID, role string) ([]*entity.Movement, error)
	Count(ctx context.Context) (int, error)
	ExistsByProduct(ctx context.Context, productID string) (bool, error)
	ExistsByLocation(ctx context.Context, locationID string) (bool, error)
}
