// Package memory implementa los puertos de persistencia en memoria. Sirve como backend
// de pruebas y para STORAGE_DRIVER=memory. Emula las reglas que en PostgreSQL dan las
// llaves foráneas: renombrar en cascada y borrar con restricción.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var (
	_ ledger.TxRunner       = (*Store)(nil)
	_ ledger.SnapshotRunner = (*Store)(nil)
)

type state struct {
	products  map[string]struct{}
	locations map[string]struct{}
	movements map[int64]entity.Movement
	nextID    int64
}

func newState() *state {
	return &state{
		products:  map[string]struct{}{},
		locations: map[string]struct{}{},
		movements: map[int64]entity.Movement{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]struct{}, len(s.products)),
		locations: make(map[string]struct{}, len(s.locations)),
		movements: make(map[int64]entity.Movement, len(s.movements)),
		nextID:    s.nextID,
	}
	for k := range s.products {
		c.products[k] = struct{}{}
	}
	for k := range s.locations {
		c.locations[k] = struct{}{}
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	return c
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// view abstrae el acceso al estado: el Store toma locks, la tx opera sobre su copia.
type view interface {
	read(ctx context.Context, fn func(*state) error) error
	write(ctx context.Context, fn func(*state) error) error
}

// Store almacenamiento en memoria seguro para uso concurrente.
// Cada escritura trabaja sobre una copia del estado y la publica solo si termina bien.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, fn func(*state) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(*state) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Run ejecuta fn con repositorios atados a una copia privada del estado.
// Commit = publicar la copia; Rollback = descartarla.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.runOn(ctx, func() *state { return s.st.clone() }, fn)
}

// RunFresh como Run, pero la transacción parte de un almacenamiento vacío con la secuencia
// de movimientos reiniciada. Si fn falla se conserva el estado anterior.
func (s *Store) RunFresh(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.runOn(ctx, newState, fn)
}

func (s *Store) runOn(ctx context.Context, base func() *state, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txView{st: base()}
	if err := fn(&ProductRepo{v: tx}, &LocationRepo{v: tx}, &MovementRepo{v: tx}); err != nil {
		return err
	}
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// View ejecuta fn sobre el estado publicado al momento de llamar. Las escrituras nunca
// modifican un estado ya publicado (copian y reemplazan), así que fn no necesita el lock.
func (s *Store) View(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	snap := &snapshotView{st: s.st}
	s.mu.RUnlock()
	return fn(&ProductRepo{v: snap}, &LocationRepo{v: snap}, &MovementRepo{v: snap})
}

// Products, Locations y Movements devuelven repositorios fuera de transacción.
func (s *Store) Products() *ProductRepo   { return &ProductRepo{v: s} }
func (s *Store) Locations() *LocationRepo { return &LocationRepo{v: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{v: s} }

type txView struct {
	st *state
}

func (t *txView) read(ctx context.Context, fn func(*state) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return fn(t.st)
}

func (t *txView) write(ctx context.Context, fn func(*state) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return fn(t.st)
}

// snapshotView estado inmutable para lecturas; cualquier escritura falla.
type snapshotView struct {
	st *state
}

func (v *snapshotView) read(ctx context.Context, fn func(*state) error) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return fn(v.st)
}

func (v *snapshotView) write(context.Context, func(*state) error) error {
	return fmt.Errorf("%w: escritura en una lectura consistente", domain.ErrStorage)
}
