// Package ledger implementa el libro de movimientos: registro, edición y borrado de
// movimientos con validación referencial, y las consultas filtradas que alimentan al
// motor de saldos.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// LedgerUseCase registra movimientos de forma transaccional y expone las consultas del libro.
type LedgerUseCase struct {
	txRunner     TxRunner
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso. Los repositorios sin tx se usan para lecturas.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		movRepo:      movRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		log:          log,
		now:          time.Now,
	}
}

// MovementInput entrada para registrar o editar un movimiento.
// FromLocation / ToLocation vacíos = ausentes. Timestamp nil = ahora (en Record)
// o se conserva el existente (en Update).
type MovementInput struct {
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int
	Timestamp    *time.Time
}

// Record valida y agrega un movimiento al libro. Producto y ubicaciones se verifican
// dentro de la misma transacción que la inserción: si algo falla el libro no cambia.
func (uc *LedgerUseCase) Record(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	mov, err := uc.buildMovement(in)
	if err != nil {
		return nil, err
	}
	if in.Timestamp == nil {
		mov.Timestamp = uc.now()
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		if err := checkReferences(ctx, productRepo, locationRepo, mov); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		uc.logFailure(err, "registrar movimiento")
		return nil, err
	}
	uc.log.Debug().Int64("movement_id", mov.MovementID).Str("kind", mov.Kind()).Msg("movimiento registrado")
	return mov, nil
}

// Update reemplaza producto, ubicaciones y cantidad de un movimiento existente
// con las mismas reglas de Record.
func (uc *LedgerUseCase) Update(ctx context.Context, id int64, in MovementInput) (*entity.Movement, error) {
	mov, err := uc.buildMovement(in)
	if err != nil {
		return nil, err
	}
	mov.MovementID = id

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		current, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, id)
		}
		if in.Timestamp == nil {
			mov.Timestamp = current.Timestamp
		}
		if err := checkReferences(ctx, productRepo, locationRepo, mov); err != nil {
			return err
		}
		return movRepo.Update(ctx, mov)
	})
	if err != nil {
		uc.logFailure(err, "actualizar movimiento")
		return nil, err
	}
	return mov, nil
}

// Delete elimina un movimiento. Nada referencia a un movimiento, así que no hay guarda.
func (uc *LedgerUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error {
		return movRepo.Delete(ctx, id)
	})
	if err != nil {
		uc.logFailure(err, "eliminar movimiento")
	}
	return err
}

// Get obtiene un movimiento por ID.
func (uc *LedgerUseCase) Get(ctx context.Context, id int64) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, id)
	}
	return mov, nil
}

// List devuelve todos los movimientos ordenados por timestamp o id (sin paginación).
func (uc *LedgerUseCase) List(ctx context.Context, orderBy string, descending bool) ([]*entity.Movement, error) {
	opts := repository.MovementListOptions{OrderBy: orderBy, Descending: descending}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return uc.movRepo.List(ctx, opts)
}

// Recent devuelve los n movimientos más recientes por movement_id.
func (uc *LedgerUseCase) Recent(ctx context.Context, n int) ([]*entity.Movement, error) {
	return uc.movRepo.List(ctx, repository.MovementListOptions{OrderBy: repository.OrderByID, Descending: true, Limit: n})
}

// QueryByProduct devuelve los movimientos de un producto existente.
func (uc *LedgerUseCase) QueryByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %q", domain.ErrNotFound, productID)
	}
	return uc.movRepo.ListByProduct(ctx, productID)
}

// QueryByLocation devuelve los movimientos donde la ubicación actúa con el rol indicado
// (source, destination o either).
func (uc *LedgerUseCase) QueryByLocation(ctx context.Context, locationID, role string) ([]*entity.Movement, error) {
	if err := repository.ValidateRole(role); err != nil {
		return nil, err
	}
	l, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: ubicación %q", domain.ErrNotFound, locationID)
	}
	return uc.movRepo.ListByLocation(ctx, locationID, role)
}

func (uc *LedgerUseCase) buildMovement(in MovementInput) (*entity.Movement, error) {
	mov := &entity.Movement{
		ProductID:    strings.TrimSpace(in.ProductID),
		FromLocation: strings.TrimSpace(in.FromLocation),
		ToLocation:   strings.TrimSpace(in.ToLocation),
		Qty:          in.Qty,
	}
	if in.Timestamp != nil {
		mov.Timestamp = *in.Timestamp
	}
	if err := mov.Validate(); err != nil {
		return nil, err
	}
	return mov, nil
}

// checkReferences verifica que producto y ubicaciones existan. Una referencia colgante
// es una entrada inválida, no un recurso inexistente.
func checkReferences(
	ctx context.Context,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	mov *entity.Movement,
) error {
	p, err := productRepo.GetByID(ctx, mov.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: el producto %q no existe", domain.ErrValidation, mov.ProductID)
	}
	for _, locID := range []string{mov.FromLocation, mov.ToLocation} {
		if locID == "" {
			continue
		}
		l, err := locationRepo.GetByID(ctx, locID)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("%w: la ubicación %q no existe", domain.ErrValidation, locID)
		}
	}
	return nil
}

func (uc *LedgerUseCase) logFailure(err error, op string) {
	if domain.IsDomainError(err) {
		uc.log.Debug().Err(err).Msg(op)
		return
	}
	uc.log.Error().Err(err).Msg(op)
}
