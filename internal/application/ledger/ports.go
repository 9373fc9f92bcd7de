package ledger

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza que un lector concurrente
// nunca observe una escritura a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// SnapshotRunner ejecuta lecturas sobre una foto consistente del almacenamiento: todas las
// consultas de fn ven el mismo estado confirmado aunque otra escritura termine en medio.
// Los repositorios entregados son de solo lectura.
type SnapshotRunner interface {
	View(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error) error
}
