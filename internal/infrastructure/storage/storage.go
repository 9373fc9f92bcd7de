// Package storage arma el backend de persistencia según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
	"github.com/jhoicas/stockmaster/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster/pkg/config"
)

// Backend repositorios sin transacción (lecturas puntuales), el TxRunner para escrituras
// atómicas, Snapshots para lecturas consistentes entre tablas y operaciones de mantenimiento.
type Backend struct {
	Driver    string
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Movements repository.MovementRepository
	Tx        ledger.TxRunner
	Snapshots ledger.SnapshotRunner

	fresh func(ctx context.Context, fn func(repository.ProductRepository, repository.LocationRepository, repository.MovementRepository) error) error
	close func()
}

// RunFresh vacía productos, ubicaciones y movimientos y ejecuta fn en la misma transacción
// (lo usa el seeder).
func (b *Backend) RunFresh(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	return b.fresh(ctx, fn)
}

// Close libera conexiones; no-op en memoria.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open construye el backend. Con postgres abre el pool y asegura el esquema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return NewMemory(memory.NewStore()), nil

	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("storage: %w", err)
		}
		log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("conectado a PostgreSQL")
		runner := postgres.NewTxRunner(pool)
		return &Backend{
			Driver:    config.StorageDriverPostgres,
			Products:  postgres.NewProductRepository(pool),
			Locations: postgres.NewLocationRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Tx:        runner,
			Snapshots: runner,
			fresh:     runner.RunFresh,
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}

// NewMemory envuelve un memory.Store; útil en tests del borde HTTP.
func NewMemory(s *memory.Store) *Backend {
	return &Backend{
		Driver:    config.StorageDriverMemory,
		Products:  s.Products(),
		Locations: s.Locations(),
		Movements: s.Movements(),
		Tx:        s,
		Snapshots: s,
		fresh:     s.RunFresh,
	}
}
