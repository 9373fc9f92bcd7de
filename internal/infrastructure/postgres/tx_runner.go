package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var (
	_ ledger.TxRunner       = (*TxRunner)(nil)
	_ ledger.SnapshotRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	return r.run(ctx, nil, fn)
}

// RunFresh como Run, pero vacía las tablas (TRUNCATE ... RESTART IDENTITY) dentro de la
// misma transacción antes de fn. Si fn falla, el Rollback restaura los datos anteriores.
func (r *TxRunner) RunFresh(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error { return Truncate(ctx, tx) }, fn)
}

func (r *TxRunner) run(ctx context.Context, prepare func(pgx.Tx) error, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if prepare != nil {
		if err := prepare(tx); err != nil {
			return err
		}
	}
	if err := fn(NewProductRepository(tx), NewLocationRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrStorage, err)
	}
	return nil
}

// View abre una transacción REPEATABLE READ de solo lectura: todas las consultas de fn
// comparten la misma foto de la base.
func (r *TxRunner) View(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("%w: begin snapshot: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewLocationRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit snapshot: %w", domain.ErrStorage, err)
	}
	return nil
}
