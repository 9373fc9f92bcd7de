package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del libro de movimientos.
type MovementRepo struct {
	v view
}

// checkForeignKeys emula las llaves foráneas de product_movements.
func checkForeignKeys(s *state, m *entity.Movement) error {
	if !productCatalog.exists(s, m.ProductID) {
		return fmt.Errorf("%w: el producto %q no existe", domain.ErrValidation, m.ProductID)
	}
	for _, loc := range []string{m.FromLocation, m.ToLocation} {
		if loc != "" && !locationCatalog.exists(s, loc) {
			return fmt.Errorf("%w: la ubicación %q no existe", domain.ErrValidation, loc)
		}
	}
	return nil
}

func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	return r.v.write(ctx, func(s *state) error {
		if err := checkForeignKeys(s, movement); err != nil {
			return err
		}
		s.nextID++
		movement.MovementID = s.nextID
		s.movements[movement.MovementID] = *movement
		return nil
	})
}

func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.v.read(ctx, func(s *state) error {
		if m, ok := s.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) Update(ctx context.Context, movement *entity.Movement) error {
	return r.v.write(ctx, func(s *state) error {
		if _, ok := s.movements[movement.MovementID]; !ok {
			return fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, movement.MovementID)
		}
		if err := checkForeignKeys(s, movement); err != nil {
			return err
		}
		s.movements[movement.MovementID] = *movement
		return nil
	})
}

func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	return r.v.write(ctx, func(s *state) error {
		if _, ok := s.movements[id]; !ok {
			return fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, id)
		}
		delete(s.movements, id)
		return nil
	})
}

func (r *MovementRepo) List(ctx context.Context, opts repository.MovementListOptions) ([]*entity.Movement, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	out, err := r.filter(ctx, func(*entity.Movement) bool { return true })
	if err != nil {
		return nil, err
	}
	less := func(a, b *entity.Movement) bool {
		if opts.OrderBy == repository.OrderByTimestamp && !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.MovementID < b.MovementID
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.ProductID == productID })
}

func (r *MovementRepo) ListByLocation(ctx context.Context, locationID, role string) ([]*entity.Movement, error) {
	if err := repository.ValidateRole(role); err != nil {
		return nil, err
	}
	return r.filter(ctx, func(m *entity.Movement) bool {
		switch role {
		case repository.RoleSource:
			return m.FromLocation == locationID
		case repository.RoleDestination:
			return m.ToLocation == locationID
		}
		return m.References(locationID)
	})
}

func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.v.read(ctx, func(s *state) error {
		n = len(s.movements)
		return nil
	})
	return n, err
}

func (r *MovementRepo) ExistsByProduct(ctx context.Context, productID string) (bool, error) {
	found := false
	err := r.v.read(ctx, func(s *state) error {
		found = productCatalog.referenced(s, productID)
		return nil
	})
	return found, err
}

func (r *MovementRepo) ExistsByLocation(ctx context.Context, locationID string) (bool, error) {
	found := false
	err := r.v.read(ctx, func(s *state) error {
		found = locationCatalog.referenced(s, locationID)
		return nil
	})
	return found, err
}

// filter devuelve copias de los movimientos que cumplen keep, por movement_id ascendente.
func (r *MovementRepo) filter(ctx context.Context, keep func(*entity.Movement) bool) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.v.read(ctx, func(s *state) error {
		for _, m := range s.movements {
			if keep(&m) {
				c := m
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovementID < out[j].MovementID })
	return out, nil
}
